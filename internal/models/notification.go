package models

import "time"

// NotificationType distinguishes user-to-user messages from system events
type NotificationType string

const (
	NotificationManual NotificationType = "manual"
	NotificationEvent  NotificationType = "event"
)

// RecipientType identifies which role a notification targets
type RecipientType string

const (
	RecipientTutor   RecipientType = "tutor"
	RecipientStudent RecipientType = "student"
)

// EventType classifies the mutation that produced an event notification
type EventType string

const (
	EventScheduleCreate  EventType = "schedule_create"
	EventScheduleUpdate  EventType = "schedule_update"
	EventScheduleDelete  EventType = "schedule_delete"
	EventCourseRequest   EventType = "course_request"
	EventBookingApproved EventType = "booking_approved"
	EventBookingRejected EventType = "booking_rejected"
)

// Notification is a single delivery record. Created by fan-out or a manual
// send; mutated only to flip IsRead; deleted only by its recipient.
type Notification struct {
	ID            string           `json:"id"`
	RecipientID   string           `json:"recipient_id"`
	RecipientType RecipientType    `json:"recipient_type"`
	SenderID      string           `json:"sender_id"`
	Title         string           `json:"title"`
	Message       string           `json:"message"`
	Type          NotificationType `json:"type"`
	EventType     EventType        `json:"event_type,omitempty"`
	RelatedData   map[string]any   `json:"related_data"`
	IsRead        bool             `json:"is_read"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// SendManualNotificationRequest is the payload for a direct user-to-user
// send. The sender is taken from the authenticated session, not the payload.
type SendManualNotificationRequest struct {
	RecipientID   string `json:"recipient_id" binding:"required"`
	RecipientType string `json:"recipient_type" binding:"required,oneof=tutor student"`
	Title         string `json:"title" binding:"required"`
	Message       string `json:"message" binding:"required"`
	SenderID      string `json:"-"`
}
