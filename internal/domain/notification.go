package domain

import "time"

// Notification is an in-app message shown to a user, created as a side
// effect of booking lifecycle events.
type Notification struct {
	ID         int32             `json:"id"`
	UserID     int32             `json:"user_id"`
	Subject    string            `json:"subject"`
	Body       string            `json:"body"`
	Attributes map[string]string `json:"attributes,omitempty"`
	IsRead     bool              `json:"is_read"`
	CreatedOn  time.Time         `json:"created_on"`
}

// User is the minimal projection of an account the core needs for
// notifications; authentication lives outside this service.
type User struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
