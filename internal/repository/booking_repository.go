package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tutorhub/tutorhub-api/internal/models"
	apperrors "github.com/tutorhub/tutorhub-api/pkg/errors"
	"github.com/tutorhub/tutorhub-api/pkg/metrics"
)

// BookingRepositoryInterface defines the interface for booking ledger access
// operations.
type BookingRepositoryInterface interface {
	List(ctx context.Context) ([]*models.Booking, error)
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	Create(ctx context.Context, b *models.Booking) (*models.Booking, error)
	Transition(ctx context.Context, bookingID string, to models.BookingStatus, allowedFrom ...models.BookingStatus) (*models.Booking, error)
}

// BookingRepository handles booking ledger access. A single mutex serializes
// mutations so the duplicate check, id assignment, and append cannot
// interleave.
type BookingRepository struct {
	ds BookingDataSource
	mu sync.Mutex
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(ds BookingDataSource) BookingRepositoryInterface {
	return &BookingRepository{ds: ds}
}

// List retrieves the full booking ledger
func (r *BookingRepository) List(ctx context.Context) ([]*models.Booking, error) {
	return r.ds.ListBookings(ctx)
}

// GetByID retrieves a single booking
func (r *BookingRepository) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	return r.ds.GetBooking(ctx, bookingID)
}

// Create assigns a booking id and appends the record. A student may not hold
// two active bookings for the same slot.
func (r *BookingRepository) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookings, err := r.ds.ListBookings(ctx)
	if err != nil {
		metrics.RecordBookingTransition("create", "error")
		return nil, err
	}

	for _, existing := range bookings {
		if existing.StudentID == b.StudentID && existing.SlotID == b.SlotID && existing.IsActive() {
			metrics.RecordBookingTransition("create", "conflict")
			return nil, apperrors.ConflictError("you already have an active booking for this slot")
		}
	}

	b.BookingID = nextBookingID(bookings)
	b.Status = models.BookingPending
	b.CreatedAt = time.Now().UTC()

	if err := r.ds.InsertBooking(ctx, b); err != nil {
		metrics.RecordBookingTransition("create", "error")
		return nil, err
	}

	metrics.RecordBookingTransition("create", "success")
	return b, nil
}

// Transition moves a booking to a new status. The current status must be one
// of allowedFrom, otherwise the transition is rejected without a write.
func (r *BookingRepository) Transition(ctx context.Context, bookingID string, to models.BookingStatus, allowedFrom ...models.BookingStatus) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := r.ds.GetBooking(ctx, bookingID)
	if err != nil {
		metrics.RecordBookingTransition(string(to), "not_found")
		return nil, err
	}

	allowed := false
	for _, from := range allowedFrom {
		if b.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		metrics.RecordBookingTransition(string(to), "invalid_state")
		return nil, apperrors.InvalidStateError(string(b.Status), string(to))
	}

	b.Status = to
	if err := r.ds.UpdateBooking(ctx, b); err != nil {
		metrics.RecordBookingTransition(string(to), "error")
		return nil, err
	}

	metrics.RecordBookingTransition(string(to), "success")
	return b, nil
}

// nextBookingID produces sequential ids of the form BK001, BK002, ...
func nextBookingID(bookings []*models.Booking) string {
	max := 0
	for _, b := range bookings {
		var n int
		if _, err := fmt.Sscanf(b.BookingID, "BK%d", &n); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("BK%03d", max+1)
}
