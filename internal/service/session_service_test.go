package service

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"personal-tracker/internal/model"
	"personal-tracker/internal/repository"
)

type sessionFixture struct {
	repo *repository.SessionRepository
	svc  *SessionService
	user *model.User
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	db := newTestDB(t)
	repo := repository.NewSessionRepository(db)
	return &sessionFixture{
		repo: repo,
		svc:  NewSessionService(repo),
		user: createTestUser(t, db, "student@example.com"),
	}
}

// createFinished seeds a closed session of the given length.
func (f *sessionFixture) createFinished(t *testing.T, startedAt time.Time, minutes int) {
	t.Helper()
	endedAt := startedAt.Add(time.Duration(minutes) * time.Minute)
	session := model.StudySession{
		UserID:          f.user.ID,
		Title:           "seeded",
		PlannedMinutes:  50,
		BreakMinutes:    10,
		StartedAt:       startedAt,
		EndedAt:         &endedAt,
		DurationSeconds: minutes * 60,
		IsRunning:       false,
	}
	if err := f.repo.Create(context.Background(), &session); err != nil {
		t.Fatalf("seed session: %v", err)
	}
}

func TestStartSessionDefaults(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, f.user, "algebra", 0, 0, time.Now())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if session.PlannedMinutes != 50 || session.BreakMinutes != 10 {
		t.Errorf("defaults = %d/%d, want 50/10", session.PlannedMinutes, session.BreakMinutes)
	}
	if !session.IsRunning {
		t.Error("new session not running")
	}
}

func TestStartSessionRejectsSecondRunning(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	if _, err := f.svc.StartSession(ctx, f.user, "first", 25, 5, time.Now()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := f.svc.StartSession(ctx, f.user, "second", 25, 5, time.Now()); err == nil {
		t.Fatal("second concurrent session was allowed")
	}
}

func TestStopRunningRecordsDuration(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	start := time.Now().Add(-30 * time.Minute)

	if _, err := f.svc.StartSession(ctx, f.user, "focus", 50, 10, start); err != nil {
		t.Fatalf("start: %v", err)
	}
	session, err := f.svc.StopRunning(ctx, f.user, start.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if session.IsRunning {
		t.Error("session still running after stop")
	}
	if session.DurationSeconds != 30*60 {
		t.Errorf("duration = %ds, want %ds", session.DurationSeconds, 30*60)
	}

	if _, err := f.svc.StopRunning(ctx, f.user, time.Now()); !errorsIsNotFound(err) {
		t.Errorf("stop without running session: err = %v, want record not found", err)
	}
}

func errorsIsNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}

func TestStreakCountsConsecutiveDays(t *testing.T) {
	f := newSessionFixture(t)
	now := model.DateOf(time.Now()).Add(12 * time.Hour) // anchor mid-day to dodge midnight edges

	f.createFinished(t, now.Add(-1*time.Hour), 30)                 // today
	f.createFinished(t, now.AddDate(0, 0, -1), 30)                 // yesterday
	f.createFinished(t, now.AddDate(0, 0, -4), 30)                 // gap before this one
	streak, err := f.svc.Streak(context.Background(), f.user, now) // today + yesterday
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if streak != 2 {
		t.Errorf("streak = %d, want 2", streak)
	}
}

func TestSuggestDuration(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		minutes []int // newest first
		want    int
	}{
		{name: "no history falls back to default", minutes: nil, want: 50},
		{name: "two short sessions scale down", minutes: []int{30, 35, 60}, want: 40},
		{name: "long average scales up", minutes: []int{60, 58, 62}, want: 60},
		{name: "mixed history keeps default", minutes: []int{50, 30, 50}, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSessionFixture(t)
			for i, m := range tt.minutes {
				f.createFinished(t, now.Add(-time.Duration(i+1)*24*time.Hour), m)
			}

			got, err := f.svc.SuggestDuration(context.Background(), f.user)
			if err != nil {
				t.Fatalf("suggest: %v", err)
			}
			if got != tt.want {
				t.Errorf("suggestion = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStatsAggregatesWeek(t *testing.T) {
	f := newSessionFixture(t)
	now := model.DateOf(time.Now()).Add(12 * time.Hour)

	f.createFinished(t, now.Add(-2*time.Hour), 30)
	f.createFinished(t, now.AddDate(0, 0, -1), 60)
	f.createFinished(t, now.AddDate(0, 0, -10), 90) // outside the window

	stats, err := f.svc.Stats(context.Background(), f.user, now)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TodayMinutes != 30 {
		t.Errorf("today = %d minutes, want 30", stats.TodayMinutes)
	}
	if stats.WeekMinutes != 90 {
		t.Errorf("week = %d minutes, want 90", stats.WeekMinutes)
	}
	if stats.Streak != 2 {
		t.Errorf("streak = %d, want 2", stats.Streak)
	}

	total := 0
	for _, v := range stats.WeekSeries {
		total += v
	}
	if total != stats.WeekMinutes {
		t.Errorf("series sums to %d, week total is %d", total, stats.WeekMinutes)
	}
}
