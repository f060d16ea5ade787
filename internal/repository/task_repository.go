package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"personal-tracker/internal/model"
)

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).
		Order("deadline ASC, priority ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListIncomplete returns the open tasks of a project in redistribution
// order: current deadline first, creation time as tie-break.
func (r *TaskRepository) ListIncomplete(ctx context.Context, projectID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("project_id = ? AND is_completed = ?", projectID, false).
		Order("deadline ASC, created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, projectID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("project_id = ? AND id = ?", projectID, taskID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// UpdateDeadline writes only the deadline column of a single task.
func (r *TaskRepository) UpdateDeadline(ctx context.Context, task *model.Task, deadline time.Time) error {
	if err := r.db.WithContext(ctx).Model(task).Update("deadline", deadline).Error; err != nil {
		return fmt.Errorf("update task deadline: %w", err)
	}
	task.Deadline = deadline
	return nil
}

func (r *TaskRepository) SetCompleted(ctx context.Context, task *model.Task, completed bool) error {
	task.IsCompleted = completed
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("complete task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, projectID, taskID uint) error {
	if err := r.db.WithContext(ctx).Where("project_id = ? AND id = ?", projectID, taskID).
		Delete(&model.Task{}).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// CountByProject returns total and completed task counts for a project.
func (r *TaskRepository) CountByProject(ctx context.Context, projectID uint) (total, completed int64, err error) {
	if err = r.db.WithContext(ctx).Model(&model.Task{}).
		Where("project_id = ?", projectID).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = r.db.WithContext(ctx).Model(&model.Task{}).
		Where("project_id = ? AND is_completed = ?", projectID, true).Count(&completed).Error; err != nil {
		return 0, 0, err
	}
	return total, completed, nil
}
