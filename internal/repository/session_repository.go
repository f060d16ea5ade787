package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"personal-tracker/internal/model"
)

// SessionRepository handles CRUD for study sessions.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *model.StudySession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// FindRunning returns the user's currently running session, if any.
func (r *SessionRepository) FindRunning(ctx context.Context, userID uint) (*model.StudySession, error) {
	var session model.StudySession
	err := r.db.WithContext(ctx).Where("user_id = ? AND is_running = ?", userID, true).
		Order("started_at DESC").First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) FindByID(ctx context.Context, userID, sessionID uint) (*model.StudySession, error) {
	var session model.StudySession
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, sessionID).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Save(ctx context.Context, session *model.StudySession) error {
	if err := r.db.WithContext(ctx).Save(session).Error; err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]model.StudySession, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("started_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var sessions []model.StudySession
	if err := q.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListFinishedSince returns finished sessions started on or after the cutoff.
func (r *SessionRepository) ListFinishedSince(ctx context.Context, userID uint, since time.Time) ([]model.StudySession, error) {
	var sessions []model.StudySession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_running = ? AND started_at >= ?", userID, false, since).
		Order("started_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListRecentFinished returns the latest finished sessions, newest first.
func (r *SessionRepository) ListRecentFinished(ctx context.Context, userID uint, limit int) ([]model.StudySession, error) {
	var sessions []model.StudySession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_running = ?", userID, false).
		Order("started_at DESC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *SessionRepository) Delete(ctx context.Context, userID, sessionID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, sessionID).
		Delete(&model.StudySession{}).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
