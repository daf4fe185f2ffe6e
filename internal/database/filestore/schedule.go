package filestore

import (
	"github.com/tutorhub/tutorhub-api/internal/models"
)

// scheduleDocument is the on-disk shape: a map of tutor id to that tutor's
// slot collection.
type scheduleDocument map[string]*models.TutorSchedule

// ReadSchedules loads every tutor's schedule. Tutors with no schedule yet are
// simply absent from the map.
func (s *Store) ReadSchedules() (map[string]*models.TutorSchedule, error) {
	doc := scheduleDocument{}
	if err := s.load(scheduleFile, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// WriteSchedules persists the full schedule document.
func (s *Store) WriteSchedules(schedules map[string]*models.TutorSchedule) error {
	return s.save(scheduleFile, scheduleDocument(schedules))
}
