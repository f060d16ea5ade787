package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"personal-tracker/internal/model"
)

// ProjectFilter narrows down a project listing.
type ProjectFilter struct {
	Status model.ProjectStatus
	Search string
	Sort   string
}

var projectSortFields = map[string]string{
	"title":       "title ASC",
	"-title":      "title DESC",
	"deadline":    "deadline ASC",
	"-deadline":   "deadline DESC",
	"status":      "status ASC",
	"-status":     "status DESC",
	"progress":    "progress ASC",
	"-progress":   "progress DESC",
	"created_at":  "created_at ASC",
	"-created_at": "created_at DESC",
}

// ProjectRepository handles CRUD for projects.
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) ListByUser(ctx context.Context, userID uint, filter ProjectFilter) ([]model.Project, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	order, ok := projectSortFields[filter.Sort]
	if !ok {
		order = "created_at DESC"
	}

	var projects []model.Project
	if err := q.Order(order).Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, userID, projectID uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, projectID).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Save(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

// Delete removes a project together with its tasks.
func (r *ProjectRepository) Delete(ctx context.Context, userID, projectID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project model.Project
		if err := tx.Where("user_id = ? AND id = ?", userID, projectID).First(&project).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
