package model

import "time"

// ProjectStatus enumerates the lifecycle states of a project.
type ProjectStatus string

const (
	StatusNotStarted ProjectStatus = "not_started"
	StatusInProgress ProjectStatus = "in_progress"
	StatusCompleted  ProjectStatus = "completed"
	StatusOnHold     ProjectStatus = "on_hold"
)

// Project groups tasks under a single deadline.
type Project struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	UserID      uint          `gorm:"index" json:"user_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Deadline    time.Time     `json:"deadline"`
	Status      ProjectStatus `gorm:"default:not_started" json:"status"`
	Progress    float64       `gorm:"default:0" json:"progress"`
	Tasks       []Task        `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// IsOverdue reports whether the deadline has passed without completion.
func (p Project) IsOverdue(now time.Time) bool {
	return p.Deadline.Before(DateOf(now)) && p.Status != StatusCompleted
}

// DaysRemaining returns whole days until the deadline, negative when past.
func (p Project) DaysRemaining(now time.Time) int {
	return DaysBetween(DateOf(now), DateOf(p.Deadline))
}

// DateOf truncates a timestamp to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from a to b.
// Both arguments are expected to be midnight-normalized.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
