package repository

import (
	"context"
	"sync"

	"github.com/tutorhub/tutorhub-api/internal/models"
	apperrors "github.com/tutorhub/tutorhub-api/pkg/errors"
	"github.com/tutorhub/tutorhub-api/pkg/metrics"
	"github.com/tutorhub/tutorhub-api/pkg/timerange"
)

// ScheduleRepositoryInterface defines the interface for schedule data access
// operations.
type ScheduleRepositoryInterface interface {
	GetSchedule(ctx context.Context, tutorID string) ([]*models.Slot, bool, error)
	CreateSlot(ctx context.Context, tutorID string, r timerange.Range) (*models.Slot, error)
	UpdateSlot(ctx context.Context, tutorID string, slotID int, r timerange.Range) (*models.Slot, error)
	DeleteSlot(ctx context.Context, tutorID string, slotID int) (*models.Slot, error)
	QuerySlots(ctx context.Context, tutorID string, r timerange.Range) ([]*models.Slot, error)
	FindSlotByRange(ctx context.Context, tutorID string, r timerange.Range) (*models.Slot, error)
}

// ScheduleRepository handles schedule data access. All mutations run under a
// single mutex: the overlap check, id assignment, and write must not
// interleave, and the flat-file backend rewrites the whole document on every
// change.
type ScheduleRepository struct {
	ds ScheduleDataSource
	mu sync.Mutex
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(ds ScheduleDataSource) ScheduleRepositoryInterface {
	return &ScheduleRepository{ds: ds}
}

// GetSchedule retrieves a tutor's slots. The bool reports whether the tutor
// has a schedule record.
func (r *ScheduleRepository) GetSchedule(ctx context.Context, tutorID string) ([]*models.Slot, bool, error) {
	return r.ds.GetTutorSlots(ctx, tutorID)
}

// CreateSlot validates the new range against the tutor's existing slots,
// assigns the next id and persists the slot.
func (r *ScheduleRepository) CreateSlot(ctx context.Context, tutorID string, rng timerange.Range) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slots, _, err := r.ds.GetTutorSlots(ctx, tutorID)
	if err != nil {
		metrics.RecordSlotMutation("create", "error")
		return nil, err
	}

	if conflict := findOverlap(slots, rng, 0); conflict != nil {
		metrics.RecordSlotMutation("create", "conflict")
		return nil, &apperrors.OverlapError{ConflictingSlotID: conflict.ID}
	}

	id, err := r.ds.NextSlotID(ctx)
	if err != nil {
		metrics.RecordSlotMutation("create", "error")
		return nil, err
	}

	slot := &models.Slot{
		ID:      id,
		TutorID: tutorID,
		Start:   rng.Start,
		End:     rng.End,
	}
	if err := r.ds.InsertSlot(ctx, slot); err != nil {
		metrics.RecordSlotMutation("create", "error")
		return nil, err
	}

	metrics.RecordSlotMutation("create", "success")
	return slot, nil
}

// UpdateSlot replaces a slot's time range after re-validating overlap against
// every other slot of the same tutor.
func (r *ScheduleRepository) UpdateSlot(ctx context.Context, tutorID string, slotID int, rng timerange.Range) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slots, exists, err := r.ds.GetTutorSlots(ctx, tutorID)
	if err != nil {
		metrics.RecordSlotMutation("update", "error")
		return nil, err
	}
	if !exists || findSlot(slots, slotID) == nil {
		metrics.RecordSlotMutation("update", "not_found")
		return nil, apperrors.NotFoundError("slot")
	}

	if conflict := findOverlap(slots, rng, slotID); conflict != nil {
		metrics.RecordSlotMutation("update", "conflict")
		return nil, &apperrors.OverlapError{ConflictingSlotID: conflict.ID}
	}

	slot := &models.Slot{
		ID:      slotID,
		TutorID: tutorID,
		Start:   rng.Start,
		End:     rng.End,
	}
	if err := r.ds.UpdateSlot(ctx, slot); err != nil {
		metrics.RecordSlotMutation("update", "error")
		return nil, err
	}

	metrics.RecordSlotMutation("update", "success")
	return slot, nil
}

// DeleteSlot removes a slot and returns the removed record so callers can
// notify affected students.
func (r *ScheduleRepository) DeleteSlot(ctx context.Context, tutorID string, slotID int) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slots, exists, err := r.ds.GetTutorSlots(ctx, tutorID)
	if err != nil {
		metrics.RecordSlotMutation("delete", "error")
		return nil, err
	}
	var slot *models.Slot
	if exists {
		slot = findSlot(slots, slotID)
	}
	if slot == nil {
		metrics.RecordSlotMutation("delete", "not_found")
		return nil, apperrors.NotFoundError("slot")
	}

	if err := r.ds.DeleteSlot(ctx, tutorID, slotID); err != nil {
		metrics.RecordSlotMutation("delete", "error")
		return nil, err
	}

	metrics.RecordSlotMutation("delete", "success")
	return slot, nil
}

// QuerySlots returns the tutor's slots fully contained in the given range,
// boundaries inclusive.
func (r *ScheduleRepository) QuerySlots(ctx context.Context, tutorID string, rng timerange.Range) ([]*models.Slot, error) {
	slots, _, err := r.ds.GetTutorSlots(ctx, tutorID)
	if err != nil {
		return nil, err
	}

	matched := []*models.Slot{}
	for _, slot := range slots {
		if rng.Contains(slot.Range()) {
			matched = append(matched, slot)
		}
	}
	return matched, nil
}

// FindSlotByRange resolves a slot by its exact start and end instants. Used
// when bookings reference slots by declared time range.
func (r *ScheduleRepository) FindSlotByRange(ctx context.Context, tutorID string, rng timerange.Range) (*models.Slot, error) {
	slots, _, err := r.ds.GetTutorSlots(ctx, tutorID)
	if err != nil {
		return nil, err
	}

	for _, slot := range slots {
		if slot.Start.Equal(rng.Start) && slot.End.Equal(rng.End) {
			return slot, nil
		}
	}
	return nil, apperrors.NotFoundError("slot")
}

// findSlot returns the slot with the given id, or nil
func findSlot(slots []*models.Slot, id int) *models.Slot {
	for _, slot := range slots {
		if slot.ID == id {
			return slot
		}
	}
	return nil
}

// findOverlap returns the first slot whose range overlaps rng, skipping the
// slot with excludeID (0 means exclude nothing). Touching endpoints do not
// overlap.
func findOverlap(slots []*models.Slot, rng timerange.Range, excludeID int) *models.Slot {
	for _, slot := range slots {
		if slot.ID == excludeID {
			continue
		}
		if slot.Range().Overlaps(rng) {
			return slot
		}
	}
	return nil
}
