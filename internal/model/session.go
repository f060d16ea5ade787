package model

import "time"

// StudySession is one timed stretch of focused work.
type StudySession struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	UserID         uint   `gorm:"index" json:"user_id"`
	Title          string `json:"title"`
	PlannedMinutes int    `gorm:"default:50" json:"planned_minutes"`
	BreakMinutes   int    `gorm:"default:10" json:"break_minutes"`

	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	DurationSeconds int        `gorm:"default:0" json:"duration_seconds"`
	IsRunning       bool       `json:"is_running"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Stop closes a running session and records its duration.
func (s *StudySession) Stop(now time.Time) {
	if !s.IsRunning {
		return
	}
	s.EndedAt = &now
	s.DurationSeconds = int(now.Sub(s.StartedAt).Seconds())
	if s.DurationSeconds < 0 {
		s.DurationSeconds = 0
	}
	s.IsRunning = false
}

// DurationMinutes reports the recorded duration rounded to one decimal.
func (s StudySession) DurationMinutes() float64 {
	return float64(s.DurationSeconds*10/60) / 10
}
