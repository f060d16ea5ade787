package service

import (
	"context"
	"testing"
	"time"

	"personal-tracker/internal/model"
	"personal-tracker/internal/repository"
)

func TestCreateMeetingValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewMeetingService(repository.NewMeetingRepository(db), nil)
	user := createTestUser(t, db, "host@example.com")
	ctx := context.Background()
	now := time.Now()

	tests := []struct {
		name  string
		input MeetingInput
	}{
		{
			name:  "missing title",
			input: MeetingInput{StartsAt: now.Add(time.Hour), EndsAt: now.Add(2 * time.Hour)},
		},
		{
			name:  "missing times",
			input: MeetingInput{Title: "Sync"},
		},
		{
			name:  "start after end",
			input: MeetingInput{Title: "Sync", StartsAt: now.Add(2 * time.Hour), EndsAt: now.Add(time.Hour)},
		},
		{
			name:  "start in the past",
			input: MeetingInput{Title: "Sync", StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateMeeting(ctx, user, tt.input); err == nil {
				t.Error("invalid input was accepted")
			}
		})
	}
}

func TestCreateMeetingAppliesDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewMeetingService(repository.NewMeetingRepository(db), nil)
	user := createTestUser(t, db, "host@example.com")
	now := time.Now()

	meeting, err := svc.CreateMeeting(context.Background(), user, MeetingInput{
		Title:           "Sync",
		StartsAt:        now.Add(time.Hour),
		EndsAt:          now.Add(2 * time.Hour),
		ReminderEnabled: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if meeting.Type != model.MeetingOther {
		t.Errorf("type = %q, want %q", meeting.Type, model.MeetingOther)
	}
	if meeting.ReminderLeadMinutes != 30 {
		t.Errorf("lead = %d minutes, want 30", meeting.ReminderLeadMinutes)
	}
}

func TestUpdateMeetingKeepsOwnerScope(t *testing.T) {
	db := newTestDB(t)
	svc := NewMeetingService(repository.NewMeetingRepository(db), nil)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	ctx := context.Background()
	now := time.Now()

	meeting, err := svc.CreateMeeting(ctx, alice, MeetingInput{
		Title:    "Private sync",
		StartsAt: now.Add(time.Hour),
		EndsAt:   now.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.UpdateMeeting(ctx, bob, meeting.ID, MeetingInput{
		Title:    "Hijacked",
		StartsAt: now.Add(time.Hour),
		EndsAt:   now.Add(2 * time.Hour),
	})
	if err == nil {
		t.Error("another user could update the meeting")
	}
	if err := svc.DeleteMeeting(ctx, bob, meeting.ID); err == nil {
		t.Error("another user could delete the meeting")
	}
}
