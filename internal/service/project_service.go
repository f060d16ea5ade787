package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"personal-tracker/internal/model"
	"personal-tracker/internal/repository"
)

// ProjectInput represents data required to create or update a project.
type ProjectInput struct {
	Title       string
	Description string
	Deadline    time.Time
	Status      model.ProjectStatus
	Progress    float64
}

// ProjectStats summarizes task completion for a project.
type ProjectStats struct {
	TotalTasks     int64
	CompletedTasks int64
	PendingTasks   int64
}

// ProjectService wraps project-related business logic, including the
// deadline redistribution that runs when a project deadline moves.
type ProjectService struct {
	projects      *repository.ProjectRepository
	tasks         *repository.TaskRepository
	notifications *repository.NotificationRepository
}

func NewProjectService(projects *repository.ProjectRepository, tasks *repository.TaskRepository, notifications *repository.NotificationRepository) *ProjectService {
	return &ProjectService{projects: projects, tasks: tasks, notifications: notifications}
}

func (s *ProjectService) CreateProject(ctx context.Context, user *model.User, input ProjectInput) (*model.Project, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if input.Deadline.IsZero() {
		return nil, fmt.Errorf("deadline is required")
	}

	status := input.Status
	if status == "" {
		status = model.StatusNotStarted
	}

	project := model.Project{
		UserID:      user.ID,
		Title:       input.Title,
		Description: input.Description,
		Deadline:    model.DateOf(input.Deadline),
		Status:      status,
		Progress:    input.Progress,
	}
	if err := s.projects.Create(ctx, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) ListProjects(ctx context.Context, user *model.User, filter repository.ProjectFilter) ([]model.Project, error) {
	return s.projects.ListByUser(ctx, user.ID, filter)
}

func (s *ProjectService) GetProject(ctx context.Context, user *model.User, projectID uint) (*model.Project, error) {
	return s.projects.FindByID(ctx, user.ID, projectID)
}

func (s *ProjectService) ProjectStats(ctx context.Context, project *model.Project) (ProjectStats, error) {
	total, completed, err := s.tasks.CountByProject(ctx, project.ID)
	if err != nil {
		return ProjectStats{}, err
	}
	return ProjectStats{
		TotalTasks:     total,
		CompletedTasks: completed,
		PendingTasks:   total - completed,
	}, nil
}

// UpdateProject applies the input and, when the deadline moved,
// redistributes the incomplete tasks' deadlines across the new window.
// The returned counts report how many tasks were rescheduled and how
// many ended up overdue.
func (s *ProjectService) UpdateProject(ctx context.Context, user *model.User, projectID uint, input ProjectInput) (*model.Project, int, int, error) {
	project, err := s.projects.FindByID(ctx, user.ID, projectID)
	if err != nil {
		return nil, 0, 0, err
	}
	if input.Title == "" {
		return nil, 0, 0, fmt.Errorf("title is required")
	}
	if input.Deadline.IsZero() {
		return nil, 0, 0, fmt.Errorf("deadline is required")
	}

	oldDeadline := model.DateOf(project.Deadline)

	project.Title = input.Title
	project.Description = input.Description
	project.Deadline = model.DateOf(input.Deadline)
	if input.Status != "" {
		project.Status = input.Status
	}
	project.Progress = input.Progress

	if err := s.projects.Save(ctx, project); err != nil {
		return nil, 0, 0, err
	}

	var updated, overdue int
	if !oldDeadline.Equal(project.Deadline) {
		updated, overdue, err = s.RedistributeDeadlines(ctx, project)
		if err != nil {
			return nil, 0, 0, err
		}
	}
	return project, updated, overdue, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, user *model.User, projectID uint) error {
	return s.projects.Delete(ctx, user.ID, projectID)
}

func (s *ProjectService) notifyOverdue(ctx context.Context, project *model.Project, overdue int) {
	if s.notifications == nil {
		return
	}
	n := model.Notification{
		UserID:  project.UserID,
		Message: fmt.Sprintf("Deadline change on %q left %d task(s) overdue.", project.Title, overdue),
	}
	if err := s.notifications.Create(ctx, &n); err != nil {
		log.Printf("[warn] overdue notification for project %d: %v", project.ID, err)
	}
}
