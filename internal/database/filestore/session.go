package filestore

import (
	"github.com/tutorhub/tutorhub-api/internal/models"
)

type sessionDocument struct {
	Sessions []*models.TutorSession `json:"sessions"`
}

// ReadSessions loads all tutor sessions as a flat list.
func (s *Store) ReadSessions() ([]*models.TutorSession, error) {
	doc := sessionDocument{}
	if err := s.load(sessionsFile, &doc); err != nil {
		return nil, err
	}
	return doc.Sessions, nil
}

// WriteSessions persists the full session list.
func (s *Store) WriteSessions(sessions []*models.TutorSession) error {
	if sessions == nil {
		sessions = []*models.TutorSession{}
	}
	return s.save(sessionsFile, sessionDocument{Sessions: sessions})
}
