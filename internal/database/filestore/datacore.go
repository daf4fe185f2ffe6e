package filestore

import (
	"github.com/tutorhub/tutorhub-api/internal/models"
)

// The datacore and SSO documents are seed data maintained outside the
// application; this backend only ever reads them.

type datacoreDocument struct {
	Users []*models.Profile `json:"users"`
}

type ssoDocument struct {
	Accounts []*models.Credential `json:"accounts"`
}

// ReadProfiles loads every user profile from the datacore document.
func (s *Store) ReadProfiles() ([]*models.Profile, error) {
	doc := datacoreDocument{}
	if err := s.load(datacoreFile, &doc); err != nil {
		return nil, err
	}
	return doc.Users, nil
}

// ReadCredentials loads the mock SSO account records.
func (s *Store) ReadCredentials() ([]*models.Credential, error) {
	doc := ssoDocument{}
	if err := s.load(ssoFile, &doc); err != nil {
		return nil, err
	}
	return doc.Accounts, nil
}
