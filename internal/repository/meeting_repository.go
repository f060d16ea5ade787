package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"personal-tracker/internal/model"
)

// MeetingFilter narrows down a meeting listing.
type MeetingFilter struct {
	When   string // "upcoming", "past" or empty for all
	Search string
	Type   model.MeetingType
}

// MeetingRepository handles CRUD for meetings and their reminder logs.
type MeetingRepository struct {
	db *gorm.DB
}

func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

func (r *MeetingRepository) Create(ctx context.Context, meeting *model.Meeting) error {
	if err := r.db.WithContext(ctx).Create(meeting).Error; err != nil {
		return fmt.Errorf("create meeting: %w", err)
	}
	return nil
}

func (r *MeetingRepository) ListByUser(ctx context.Context, userID uint, filter MeetingFilter, now time.Time) ([]model.Meeting, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	switch filter.When {
	case "upcoming":
		q = q.Where("starts_at > ?", now)
	case "past":
		q = q.Where("starts_at <= ?", now)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ? OR subject LIKE ?", like, like, like)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var meetings []model.Meeting
	if err := q.Order("starts_at DESC").Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

func (r *MeetingRepository) FindByID(ctx context.Context, userID, meetingID uint) (*model.Meeting, error) {
	var meeting model.Meeting
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, meetingID).First(&meeting).Error; err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *MeetingRepository) Save(ctx context.Context, meeting *model.Meeting) error {
	if err := r.db.WithContext(ctx).Save(meeting).Error; err != nil {
		return fmt.Errorf("save meeting: %w", err)
	}
	return nil
}

// Delete removes a meeting together with its reminder logs.
func (r *MeetingRepository) Delete(ctx context.Context, userID, meetingID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var meeting model.Meeting
		if err := tx.Where("user_id = ? AND id = ?", userID, meetingID).First(&meeting).Error; err != nil {
			return err
		}
		if err := tx.Where("meeting_id = ?", meeting.ID).Delete(&model.ReminderLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&meeting).Error
	})
	if err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}
	return nil
}

// ListPendingReminders returns every enabled meeting whose reminder has
// not been sent yet, regardless of owner.
func (r *MeetingRepository) ListPendingReminders(ctx context.Context) ([]model.Meeting, error) {
	var meetings []model.Meeting
	if err := r.db.WithContext(ctx).
		Where("reminder_enabled = ? AND reminder_sent = ?", true, false).
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

// MarkReminderSent flips the sent flag and appends the audit log row in
// one transaction so a crash cannot record one without the other.
func (r *MeetingRepository) MarkReminderSent(ctx context.Context, meeting *model.Meeting, sentAt time.Time, entry *model.ReminderLog) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"reminder_sent":    true,
			"reminder_sent_at": sentAt,
		}
		if err := tx.Model(meeting).Updates(updates).Error; err != nil {
			return err
		}
		entry.MeetingID = meeting.ID
		return tx.Create(entry).Error
	})
	if err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}
	meeting.ReminderSent = true
	meeting.ReminderSentAt = &sentAt
	return nil
}

// AppendLog records a dispatch attempt without touching the sent flag.
func (r *MeetingRepository) AppendLog(ctx context.Context, entry *model.ReminderLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("append reminder log: %w", err)
	}
	return nil
}

func (r *MeetingRepository) ListLogs(ctx context.Context, userID uint) ([]model.ReminderLog, error) {
	var logs []model.ReminderLog
	err := r.db.WithContext(ctx).
		Joins("JOIN meetings ON meetings.id = reminder_logs.meeting_id").
		Where("meetings.user_id = ?", userID).
		Order("reminder_logs.sent_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// ListElapsedReminded returns meetings whose reminder went out and whose
// end time has passed; candidates for recurring regeneration.
func (r *MeetingRepository) ListElapsedReminded(ctx context.Context, now time.Time) ([]model.Meeting, error) {
	var meetings []model.Meeting
	if err := r.db.WithContext(ctx).
		Where("reminder_sent = ? AND ends_at < ?", true, now).
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

// ExistsAt reports whether the user already has a meeting with the given
// title starting at the given instant.
func (r *MeetingRepository) ExistsAt(ctx context.Context, userID uint, title string, startsAt time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Meeting{}).
		Where("user_id = ? AND title = ? AND starts_at = ?", userID, title, startsAt).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
