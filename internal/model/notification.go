package model

import "time"

// Notification is an in-app message surfaced to a user, e.g. when a
// deadline change leaves tasks overdue.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Message   string    `json:"message"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
