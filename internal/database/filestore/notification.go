package filestore

import (
	"github.com/tutorhub/tutorhub-api/internal/models"
)

type notificationDocument struct {
	Notifications []*models.Notification `json:"notifications"`
}

// ReadNotifications loads all notification records as a flat list.
func (s *Store) ReadNotifications() ([]*models.Notification, error) {
	doc := notificationDocument{}
	if err := s.load(notificationFile, &doc); err != nil {
		return nil, err
	}
	return doc.Notifications, nil
}

// WriteNotifications persists the full notification list.
func (s *Store) WriteNotifications(notifications []*models.Notification) error {
	if notifications == nil {
		notifications = []*models.Notification{}
	}
	return s.save(notificationFile, notificationDocument{Notifications: notifications})
}
