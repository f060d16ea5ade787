package service

import (
	"context"
	"fmt"
	"time"

	"personal-tracker/internal/model"
	"personal-tracker/internal/repository"
)

// TaskInput represents data required to create or update a task.
type TaskInput struct {
	Title       string
	Description string
	Deadline    time.Time
	Priority    model.Priority
}

// TaskService wraps task-related business logic.
type TaskService struct {
	tasks    *repository.TaskRepository
	projects *repository.ProjectRepository
}

func NewTaskService(tasks *repository.TaskRepository, projects *repository.ProjectRepository) *TaskService {
	return &TaskService{tasks: tasks, projects: projects}
}

func (s *TaskService) CreateTask(ctx context.Context, user *model.User, projectID uint, input TaskInput) (*model.Task, error) {
	project, err := s.projects.FindByID(ctx, user.ID, projectID)
	if err != nil {
		return nil, err
	}
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if input.Deadline.IsZero() {
		return nil, fmt.Errorf("deadline is required")
	}

	task := model.Task{
		ProjectID:   project.ID,
		Title:       input.Title,
		Description: input.Description,
		Deadline:    model.DateOf(input.Deadline),
		Priority:    normalizePriority(input.Priority),
	}
	if err := s.tasks.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, user *model.User, projectID uint) ([]model.Task, error) {
	project, err := s.projects.FindByID(ctx, user.ID, projectID)
	if err != nil {
		return nil, err
	}
	return s.tasks.ListByProject(ctx, project.ID)
}

func (s *TaskService) GetTask(ctx context.Context, user *model.User, projectID, taskID uint) (*model.Task, error) {
	project, err := s.projects.FindByID(ctx, user.ID, projectID)
	if err != nil {
		return nil, err
	}
	return s.tasks.FindByID(ctx, project.ID, taskID)
}

func (s *TaskService) UpdateTask(ctx context.Context, user *model.User, projectID, taskID uint, input TaskInput) (*model.Task, error) {
	task, err := s.GetTask(ctx, user, projectID, taskID)
	if err != nil {
		return nil, err
	}
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	task.Title = input.Title
	task.Description = input.Description
	if !input.Deadline.IsZero() {
		task.Deadline = model.DateOf(input.Deadline)
	}
	task.Priority = normalizePriority(input.Priority)

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// SetCompleted marks a task done or reopens it.
func (s *TaskService) SetCompleted(ctx context.Context, user *model.User, projectID, taskID uint, completed bool) (*model.Task, error) {
	task, err := s.GetTask(ctx, user, projectID, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.SetCompleted(ctx, task, completed); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, user *model.User, projectID, taskID uint) error {
	project, err := s.projects.FindByID(ctx, user.ID, projectID)
	if err != nil {
		return err
	}
	return s.tasks.Delete(ctx, project.ID, taskID)
}

// normalizePriority maps anything outside the enum to medium.
func normalizePriority(p model.Priority) model.Priority {
	switch p {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
		return p
	default:
		return model.PriorityMedium
	}
}
