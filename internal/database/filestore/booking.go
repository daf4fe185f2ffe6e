package filestore

import (
	"github.com/tutorhub/tutorhub-api/internal/models"
)

type bookingDocument struct {
	Bookings []*models.Booking `json:"bookings"`
}

// ReadBookings loads the booking ledger as a flat list.
func (s *Store) ReadBookings() ([]*models.Booking, error) {
	doc := bookingDocument{}
	if err := s.load(bookingsFile, &doc); err != nil {
		return nil, err
	}
	return doc.Bookings, nil
}

// WriteBookings persists the full booking ledger.
func (s *Store) WriteBookings(bookings []*models.Booking) error {
	if bookings == nil {
		bookings = []*models.Booking{}
	}
	return s.save(bookingsFile, bookingDocument{Bookings: bookings})
}
