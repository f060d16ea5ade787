package model

import "time"

// MeetingType enumerates what kind of gathering a meeting is.
type MeetingType string

const (
	MeetingEducation MeetingType = "education"
	MeetingProject   MeetingType = "project"
	MeetingRevision  MeetingType = "revision"
	MeetingOther     MeetingType = "other"
)

// Meeting is a scheduled gathering with an optional email reminder.
type Meeting struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"index" json:"user_id"` // organizer
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Type        MeetingType `gorm:"default:other" json:"type"`
	Subject     string      `json:"subject"`
	StartsAt    time.Time   `json:"starts_at"`
	EndsAt      time.Time   `json:"ends_at"`

	ReminderEnabled     bool       `json:"reminder_enabled"`
	ReminderLeadMinutes int        `gorm:"default:30" json:"reminder_lead_minutes"`
	ReminderSent        bool       `gorm:"default:false" json:"reminder_sent"`
	ReminderSentAt      *time.Time `json:"reminder_sent_at,omitempty"`

	ReminderLogs []ReminderLog `gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReminderAt returns when the reminder becomes due.
func (m Meeting) ReminderAt() time.Time {
	return m.StartsAt.Add(-time.Duration(m.ReminderLeadMinutes) * time.Minute)
}

// IsUpcoming reports whether the meeting has not started yet.
func (m Meeting) IsUpcoming(now time.Time) bool {
	return m.StartsAt.After(now)
}

// NeedsReminder reports whether the reminder threshold has been crossed
// for an enabled, unsent meeting that has not started more than grace ago.
func (m Meeting) NeedsReminder(now time.Time, grace time.Duration) bool {
	if !m.ReminderEnabled || m.ReminderSent {
		return false
	}
	if m.ReminderAt().After(now) {
		return false
	}
	return !now.After(m.StartsAt.Add(grace))
}

// ReminderLog records one reminder dispatch attempt for audit purposes.
type ReminderLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	MeetingID    uint      `gorm:"index" json:"meeting_id"`
	SentAt       time.Time `json:"sent_at"`
	ReminderType string    `gorm:"default:scheduled" json:"reminder_type"`
	SentVia      string    `gorm:"default:email" json:"sent_via"`
	Status       string    `gorm:"default:sent" json:"status"` // "sent" or "failed"
	Reference    string    `json:"reference"`                  // correlation token for the dispatch attempt
	Notes        string    `json:"notes"`
}
