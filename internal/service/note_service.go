package service

import (
	"context"
	"fmt"

	"github.com/gomarkdown/markdown"
	"github.com/microcosm-cc/bluemonday"

	"personal-tracker/internal/model"
	"personal-tracker/internal/repository"
)

// NoteInput represents data required to create or update a note.
type NoteInput struct {
	Title   string
	Content string
	Tags    []string
}

// NoteService wraps note and tag business logic, including markdown
// rendering with HTML sanitizing.
type NoteService struct {
	notes  *repository.NoteRepository
	policy *bluemonday.Policy
}

func NewNoteService(notes *repository.NoteRepository) *NoteService {
	return &NoteService{notes: notes, policy: bluemonday.UGCPolicy()}
}

func (s *NoteService) CreateNote(ctx context.Context, user *model.User, input NoteInput) (*model.Note, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	tags, err := s.resolveTags(ctx, user.ID, input.Tags)
	if err != nil {
		return nil, err
	}

	note := model.Note{
		UserID:  user.ID,
		Title:   input.Title,
		Content: input.Content,
		Tags:    tags,
	}
	if err := s.notes.Create(ctx, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *NoteService) ListNotes(ctx context.Context, user *model.User, filter repository.NoteFilter) ([]model.Note, error) {
	return s.notes.ListByUser(ctx, user.ID, filter)
}

func (s *NoteService) GetNote(ctx context.Context, user *model.User, noteID uint) (*model.Note, error) {
	return s.notes.FindByID(ctx, user.ID, noteID)
}

func (s *NoteService) UpdateNote(ctx context.Context, user *model.User, noteID uint, input NoteInput) (*model.Note, error) {
	note, err := s.notes.FindByID(ctx, user.ID, noteID)
	if err != nil {
		return nil, err
	}
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	note.Title = input.Title
	note.Content = input.Content
	if err := s.notes.Save(ctx, note); err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ctx, user.ID, input.Tags)
	if err != nil {
		return nil, err
	}
	if err := s.notes.ReplaceTags(ctx, note, tags); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) DeleteNote(ctx context.Context, user *model.User, noteID uint) error {
	return s.notes.Delete(ctx, user.ID, noteID)
}

func (s *NoteService) ListTags(ctx context.Context, user *model.User) ([]model.Tag, error) {
	return s.notes.ListTags(ctx, user.ID)
}

func (s *NoteService) DeleteTag(ctx context.Context, user *model.User, tagID uint) error {
	return s.notes.DeleteTag(ctx, user.ID, tagID)
}

// RenderHTML converts a note's markdown content to sanitized HTML.
func (s *NoteService) RenderHTML(note *model.Note) string {
	raw := markdown.ToHTML([]byte(note.Content), nil, nil)
	return string(s.policy.SanitizeBytes(raw))
}

func (s *NoteService) resolveTags(ctx context.Context, userID uint, names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		tag, err := s.notes.GetOrCreateTag(ctx, userID, name)
		if err != nil {
			return nil, err
		}
		if tag != nil {
			tags = append(tags, *tag)
		}
	}
	return tags, nil
}
