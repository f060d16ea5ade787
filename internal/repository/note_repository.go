package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"personal-tracker/internal/model"
)

// NoteFilter narrows down a note listing.
type NoteFilter struct {
	Search string // matched against the title
	Tag    string // exact tag name
}

// NoteRepository handles CRUD for notes and tags.
type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, note *model.Note) error {
	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

func (r *NoteRepository) ListByUser(ctx context.Context, userID uint, filter NoteFilter) ([]model.Note, error) {
	q := r.db.WithContext(ctx).Preload("Tags").Where("notes.user_id = ?", userID)
	if filter.Search != "" {
		q = q.Where("notes.title LIKE ?", "%"+filter.Search+"%")
	}
	if filter.Tag != "" {
		q = q.Joins("JOIN note_tags ON note_tags.note_id = notes.id").
			Joins("JOIN tags ON tags.id = note_tags.tag_id").
			Where("tags.name = ?", filter.Tag)
	}

	var notes []model.Note
	if err := q.Order("notes.updated_at DESC").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *NoteRepository) FindByID(ctx context.Context, userID, noteID uint) (*model.Note, error) {
	var note model.Note
	if err := r.db.WithContext(ctx).Preload("Tags").
		Where("user_id = ? AND id = ?", userID, noteID).First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *NoteRepository) Save(ctx context.Context, note *model.Note) error {
	if err := r.db.WithContext(ctx).Save(note).Error; err != nil {
		return fmt.Errorf("save note: %w", err)
	}
	return nil
}

// ReplaceTags swaps a note's tag set.
func (r *NoteRepository) ReplaceTags(ctx context.Context, note *model.Note, tags []model.Tag) error {
	if err := r.db.WithContext(ctx).Model(note).Association("Tags").Replace(tags); err != nil {
		return fmt.Errorf("replace note tags: %w", err)
	}
	note.Tags = tags
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, userID, noteID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var note model.Note
		if err := tx.Where("user_id = ? AND id = ?", userID, noteID).First(&note).Error; err != nil {
			return err
		}
		if err := tx.Model(&note).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&note).Error
	})
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// GetOrCreateTag finds a tag by name for the user or creates it.
func (r *NoteRepository) GetOrCreateTag(ctx context.Context, userID uint, name string) (*model.Tag, error) {
	if name == "" {
		return nil, nil
	}

	var tag model.Tag
	db := r.db.WithContext(ctx)
	err := db.Where("user_id = ? AND name = ?", userID, name).First(&tag).Error
	switch {
	case err == nil:
		return &tag, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		tag = model.Tag{UserID: userID, Name: name}
		if err := db.Create(&tag).Error; err != nil {
			return nil, fmt.Errorf("create tag: %w", err)
		}
		return &tag, nil
	default:
		return nil, fmt.Errorf("find tag: %w", err)
	}
}

func (r *NoteRepository) ListTags(ctx context.Context, userID uint) ([]model.Tag, error) {
	var tags []model.Tag
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *NoteRepository) DeleteTag(ctx context.Context, userID, tagID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, tagID).
		Delete(&model.Tag{}).Error; err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
