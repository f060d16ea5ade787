package web

import (
	"fmt"
	"time"
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type projectRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Deadline    string  `json:"deadline"` // 2006-01-02
	Status      string  `json:"status"`
	Progress    float64 `json:"progress"`
}

type taskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"` // 2006-01-02
	Priority    string `json:"priority"`
}

type meetingRequest struct {
	Title               string `json:"title"`
	Description         string `json:"description"`
	Type                string `json:"type"`
	Subject             string `json:"subject"`
	StartsAt            string `json:"starts_at"` // RFC 3339
	EndsAt              string `json:"ends_at"`
	ReminderEnabled     bool   `json:"reminder_enabled"`
	ReminderLeadMinutes int    `json:"reminder_lead_minutes"`
}

type noteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type startSessionRequest struct {
	Title          string `json:"title"`
	PlannedMinutes int    `json:"planned_minutes"`
	BreakMinutes   int    `json:"break_minutes"`
}

// parseDate accepts a bare date or a full RFC 3339 timestamp.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected 2006-01-02", raw)
	}
	return t, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("timestamp is required")
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q, expected RFC 3339", raw)
	}
	return t, nil
}
