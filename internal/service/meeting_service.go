package service

import (
	"context"
	"fmt"
	"time"

	"personal-tracker/internal/model"
	"personal-tracker/internal/repository"
)

const defaultReminderLeadMinutes = 30

// MeetingInput represents data required to create or update a meeting.
type MeetingInput struct {
	Title               string
	Description         string
	Type                model.MeetingType
	Subject             string
	StartsAt            time.Time
	EndsAt              time.Time
	ReminderEnabled     bool
	ReminderLeadMinutes int
}

// MeetingService wraps meeting CRUD with scheduling validation.
type MeetingService struct {
	meetings  *repository.MeetingRepository
	reminders *ReminderService
}

func NewMeetingService(meetings *repository.MeetingRepository, reminders *ReminderService) *MeetingService {
	return &MeetingService{meetings: meetings, reminders: reminders}
}

func (s *MeetingService) CreateMeeting(ctx context.Context, user *model.User, input MeetingInput) (*model.Meeting, error) {
	if err := validateMeetingInput(input); err != nil {
		return nil, err
	}
	if input.StartsAt.Before(time.Now()) {
		return nil, fmt.Errorf("meeting cannot start in the past")
	}

	meeting := model.Meeting{
		UserID:              user.ID,
		Title:               input.Title,
		Description:         input.Description,
		Type:                input.Type,
		Subject:             input.Subject,
		StartsAt:            input.StartsAt,
		EndsAt:              input.EndsAt,
		ReminderEnabled:     input.ReminderEnabled,
		ReminderLeadMinutes: input.ReminderLeadMinutes,
	}
	if meeting.Type == "" {
		meeting.Type = model.MeetingOther
	}
	if meeting.ReminderLeadMinutes <= 0 {
		meeting.ReminderLeadMinutes = defaultReminderLeadMinutes
	}

	if err := s.meetings.Create(ctx, &meeting); err != nil {
		return nil, err
	}
	if s.reminders != nil {
		s.reminders.AnnounceCreated(ctx, &meeting)
	}
	return &meeting, nil
}

func (s *MeetingService) ListMeetings(ctx context.Context, user *model.User, filter repository.MeetingFilter) ([]model.Meeting, error) {
	return s.meetings.ListByUser(ctx, user.ID, filter, time.Now())
}

func (s *MeetingService) GetMeeting(ctx context.Context, user *model.User, meetingID uint) (*model.Meeting, error) {
	return s.meetings.FindByID(ctx, user.ID, meetingID)
}

func (s *MeetingService) UpdateMeeting(ctx context.Context, user *model.User, meetingID uint, input MeetingInput) (*model.Meeting, error) {
	meeting, err := s.meetings.FindByID(ctx, user.ID, meetingID)
	if err != nil {
		return nil, err
	}
	if err := validateMeetingInput(input); err != nil {
		return nil, err
	}

	meeting.Title = input.Title
	meeting.Description = input.Description
	if input.Type != "" {
		meeting.Type = input.Type
	}
	meeting.Subject = input.Subject
	meeting.StartsAt = input.StartsAt
	meeting.EndsAt = input.EndsAt
	meeting.ReminderEnabled = input.ReminderEnabled
	if input.ReminderLeadMinutes > 0 {
		meeting.ReminderLeadMinutes = input.ReminderLeadMinutes
	}

	if err := s.meetings.Save(ctx, meeting); err != nil {
		return nil, err
	}
	return meeting, nil
}

func (s *MeetingService) DeleteMeeting(ctx context.Context, user *model.User, meetingID uint) error {
	return s.meetings.Delete(ctx, user.ID, meetingID)
}

func (s *MeetingService) ListReminderLogs(ctx context.Context, user *model.User) ([]model.ReminderLog, error) {
	return s.meetings.ListLogs(ctx, user.ID)
}

func validateMeetingInput(input MeetingInput) error {
	if input.Title == "" {
		return fmt.Errorf("title is required")
	}
	if input.StartsAt.IsZero() || input.EndsAt.IsZero() {
		return fmt.Errorf("start and end times are required")
	}
	if !input.StartsAt.Before(input.EndsAt) {
		return fmt.Errorf("start time must be before end time")
	}
	return nil
}
