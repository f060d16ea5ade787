package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"personal-tracker/internal/mail"
	"personal-tracker/internal/model"
	"personal-tracker/internal/repository"
)

// ReminderService runs the due-reminder scan over meetings and handles
// the related email traffic (reminders, creation announcements) plus the
// weekly regeneration of recurring meetings.
type ReminderService struct {
	meetings *repository.MeetingRepository
	users    *repository.UserRepository
	mailer   mail.Sender
	grace    time.Duration
	siteName string
}

func NewReminderService(meetings *repository.MeetingRepository, users *repository.UserRepository, mailer mail.Sender, grace time.Duration, siteName string) *ReminderService {
	return &ReminderService{
		meetings: meetings,
		users:    users,
		mailer:   mailer,
		grace:    grace,
		siteName: siteName,
	}
}

// Scan walks every enabled, unsent meeting and dispatches at most one
// reminder per meeting. A dispatch failure leaves the meeting pending so
// the next scan retries it; failures are isolated per meeting. Recipients
// are all active accounts with an email, fetched once per scan.
func (s *ReminderService) Scan(ctx context.Context, now time.Time) error {
	meetings, err := s.meetings.ListPendingReminders(ctx)
	if err != nil {
		return fmt.Errorf("list pending reminders: %w", err)
	}
	if len(meetings) == 0 {
		return nil
	}

	recipients, err := s.users.ListActiveEmails(ctx)
	if err != nil {
		return fmt.Errorf("list recipients: %w", err)
	}
	if len(recipients) == 0 {
		log.Println("[warn] no active users with email, skipping reminder scan")
		return nil
	}

	for i := range meetings {
		m := &meetings[i]
		if !m.NeedsReminder(now, s.grace) {
			continue
		}

		subject, body := s.reminderMessage(m)
		reference := uuid.NewString()

		if err := s.mailer.Send(subject, body, recipients); err != nil {
			log.Printf("[warn] reminder failed for meeting %d, will retry next scan: %v", m.ID, err)
			entry := model.ReminderLog{
				MeetingID:    m.ID,
				SentAt:       now,
				ReminderType: "scheduled",
				SentVia:      "email",
				Status:       "failed",
				Reference:    reference,
				Notes:        err.Error(),
			}
			if logErr := s.meetings.AppendLog(ctx, &entry); logErr != nil {
				log.Printf("[warn] log failed attempt for meeting %d: %v", m.ID, logErr)
			}
			continue
		}

		entry := model.ReminderLog{
			SentAt:       now,
			ReminderType: "scheduled",
			SentVia:      "email",
			Status:       "sent",
			Reference:    reference,
			Notes:        fmt.Sprintf("delivered to %d recipients", len(recipients)),
		}
		if err := s.meetings.MarkReminderSent(ctx, m, now, &entry); err != nil {
			log.Printf("[warn] persist reminder state for meeting %d: %v", m.ID, err)
			continue
		}
		log.Printf("[info] reminder sent for meeting %d to %d recipients", m.ID, len(recipients))
	}
	return nil
}

// AnnounceCreated emails all active users about a newly created meeting.
// Delivery problems are logged, never fatal to the creation itself.
func (s *ReminderService) AnnounceCreated(ctx context.Context, meeting *model.Meeting) {
	recipients, err := s.users.ListActiveEmails(ctx)
	if err != nil {
		log.Printf("[warn] announcement recipients for meeting %d: %v", meeting.ID, err)
		return
	}
	if len(recipients) == 0 {
		log.Printf("[info] no active users with email for meeting %q announcement", meeting.Title)
		return
	}

	subject := fmt.Sprintf("New meeting: %s (%s)", meeting.Title, meeting.StartsAt.Format("2006-01-02"))
	_, body := s.reminderMessage(meeting)
	if err := s.mailer.Send(subject, body, recipients); err != nil {
		log.Printf("[warn] announcement for meeting %d: %v", meeting.ID, err)
		return
	}
	log.Printf("[info] creation announcement sent for meeting %d to %d recipients", meeting.ID, len(recipients))
}

// GenerateRecurring clones fully elapsed, reminded meetings one week
// forward unless next week's copy already exists.
func (s *ReminderService) GenerateRecurring(ctx context.Context, now time.Time) error {
	past, err := s.meetings.ListElapsedReminded(ctx, now)
	if err != nil {
		return fmt.Errorf("list elapsed meetings: %w", err)
	}

	for _, m := range past {
		nextStart := m.StartsAt.AddDate(0, 0, 7)
		exists, err := s.meetings.ExistsAt(ctx, m.UserID, m.Title, nextStart)
		if err != nil {
			log.Printf("[warn] recurring lookup for meeting %d: %v", m.ID, err)
			continue
		}
		if exists {
			continue
		}

		clone := model.Meeting{
			UserID:              m.UserID,
			Title:               m.Title,
			Description:         m.Description,
			Type:                m.Type,
			Subject:             m.Subject,
			StartsAt:            nextStart,
			EndsAt:              m.EndsAt.AddDate(0, 0, 7),
			ReminderEnabled:     m.ReminderEnabled,
			ReminderLeadMinutes: m.ReminderLeadMinutes,
		}
		if err := s.meetings.Create(ctx, &clone); err != nil {
			log.Printf("[warn] generate recurring meeting from %d: %v", m.ID, err)
			continue
		}
		log.Printf("[info] recurring meeting generated: %q on %s (%d -> %d)",
			clone.Title, clone.StartsAt.Format("2006-01-02"), m.ID, clone.ID)
	}
	return nil
}

func (s *ReminderService) reminderMessage(m *model.Meeting) (subject, body string) {
	subject = fmt.Sprintf("Reminder: %s on %s", m.Title, m.StartsAt.Format("2006-01-02"))

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", m.Title)
	fmt.Fprintf(&b, "When: %s to %s\n", m.StartsAt.Format("2006-01-02 15:04"), m.EndsAt.Format("15:04"))
	if m.Subject != "" {
		fmt.Fprintf(&b, "Subject: %s\n", m.Subject)
	}
	if m.Type != "" {
		fmt.Fprintf(&b, "Type: %s\n", m.Type)
	}
	if m.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", m.Description)
	}
	fmt.Fprintf(&b, "\n-- %s", s.siteName)
	return subject, b.String()
}
