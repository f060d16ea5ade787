package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"personal-tracker/internal/model"
	"personal-tracker/internal/repository"
)

const (
	defaultPlannedMinutes = 50
	defaultBreakMinutes   = 10
)

// SessionStats summarizes recent study activity.
type SessionStats struct {
	TodayMinutes int
	WeekMinutes  int
	WeekSeries   [7]int // minutes per day, index 0 = Monday
	Streak       int
	Suggestion   int
}

// SessionService wraps study session business logic: the timer itself
// plus the streak and suggested-duration heuristics.
type SessionService struct {
	sessions *repository.SessionRepository
}

func NewSessionService(sessions *repository.SessionRepository) *SessionService {
	return &SessionService{sessions: sessions}
}

// StartSession begins a new timed session. Only one session may run per
// user at a time.
func (s *SessionService) StartSession(ctx context.Context, user *model.User, title string, plannedMinutes, breakMinutes int, now time.Time) (*model.StudySession, error) {
	if _, err := s.sessions.FindRunning(ctx, user.ID); err == nil {
		return nil, fmt.Errorf("a session is already running")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if plannedMinutes <= 0 {
		plannedMinutes = defaultPlannedMinutes
	}
	if breakMinutes <= 0 {
		breakMinutes = defaultBreakMinutes
	}

	session := model.StudySession{
		UserID:         user.ID,
		Title:          title,
		PlannedMinutes: plannedMinutes,
		BreakMinutes:   breakMinutes,
		StartedAt:      now,
		IsRunning:      true,
	}
	if err := s.sessions.Create(ctx, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// StopRunning closes the user's running session and records its duration.
func (s *SessionService) StopRunning(ctx context.Context, user *model.User, now time.Time) (*model.StudySession, error) {
	session, err := s.sessions.FindRunning(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	session.Stop(now)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) ListSessions(ctx context.Context, user *model.User, limit int) ([]model.StudySession, error) {
	return s.sessions.ListByUser(ctx, user.ID, limit)
}

func (s *SessionService) DeleteSession(ctx context.Context, user *model.User, sessionID uint) error {
	return s.sessions.Delete(ctx, user.ID, sessionID)
}

// Streak counts consecutive days with at least one session, ending today.
func (s *SessionService) Streak(ctx context.Context, user *model.User, now time.Time) (int, error) {
	sessions, err := s.sessions.ListByUser(ctx, user.ID, 0)
	if err != nil {
		return 0, err
	}

	days := make(map[time.Time]bool, len(sessions))
	for _, session := range sessions {
		days[model.DateOf(session.StartedAt)] = true
	}

	streak := 0
	for cur := model.DateOf(now); days[cur]; cur = cur.AddDate(0, 0, -1) {
		streak++
	}
	return streak, nil
}

// SuggestDuration proposes a session length from the last five finished
// sessions: two short ones in a row suggest scaling down, a high recent
// average suggests scaling up.
func (s *SessionService) SuggestDuration(ctx context.Context, user *model.User) (int, error) {
	last, err := s.sessions.ListRecentFinished(ctx, user.ID, 5)
	if err != nil {
		return 0, err
	}

	if len(last) >= 2 && last[0].DurationSeconds < 45*60 && last[1].DurationSeconds < 45*60 {
		return 40, nil
	}
	if len(last) > 0 {
		total := 0
		for _, session := range last {
			total += session.DurationSeconds
		}
		avgMinutes := float64(total) / float64(len(last)) / 60
		if avgMinutes >= 55 {
			return 60, nil
		}
	}
	return defaultPlannedMinutes, nil
}

// Stats aggregates today's and this week's study minutes.
func (s *SessionService) Stats(ctx context.Context, user *model.User, now time.Time) (SessionStats, error) {
	today := model.DateOf(now)
	weekStart := today.AddDate(0, 0, -6)

	finished, err := s.sessions.ListFinishedSince(ctx, user.ID, weekStart)
	if err != nil {
		return SessionStats{}, err
	}

	var stats SessionStats
	for _, session := range finished {
		day := model.DateOf(session.StartedAt)
		minutes := session.DurationSeconds / 60
		if day.Equal(today) {
			stats.TodayMinutes += minutes
		}
		stats.WeekMinutes += minutes
		// time.Weekday starts on Sunday, the series starts on Monday.
		idx := (int(session.StartedAt.Weekday()) + 6) % 7
		stats.WeekSeries[idx] += minutes
	}

	if stats.Streak, err = s.Streak(ctx, user, now); err != nil {
		return SessionStats{}, err
	}
	if stats.Suggestion, err = s.SuggestDuration(ctx, user); err != nil {
		return SessionStats{}, err
	}
	return stats, nil
}
