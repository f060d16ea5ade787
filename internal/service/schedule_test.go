package service

import (
	"context"
	"testing"
	"time"

	"personal-tracker/internal/model"
	"personal-tracker/internal/repository"
)

func TestPlanOffsets(t *testing.T) {
	tests := []struct {
		name       string
		priorities []model.Priority
		totalDays  int
		want       []int
	}{
		{
			name:       "mixed priorities over ten days",
			priorities: []model.Priority{model.PriorityHigh, model.PriorityMedium, model.PriorityLow},
			totalDays:  10,
			want:       []int{5, 8, 10},
		},
		{
			name:       "single task lands on the deadline",
			priorities: []model.Priority{model.PriorityMedium},
			totalDays:  10,
			want:       []int{10},
		},
		{
			name:       "equal priorities spread evenly",
			priorities: []model.Priority{model.PriorityLow, model.PriorityLow, model.PriorityLow, model.PriorityLow},
			totalDays:  8,
			want:       []int{2, 4, 6, 8},
		},
		{
			name:       "zero-day window collapses to today",
			priorities: []model.Priority{model.PriorityHigh, model.PriorityLow},
			totalDays:  0,
			want:       []int{0, 0},
		},
		{
			name:       "unknown priority weighs as medium",
			priorities: []model.Priority{model.Priority("urgent"), model.PriorityMedium},
			totalDays:  10,
			want:       []int{5, 10},
		},
		{
			// 2.5 rounds half to even, keeping the first slot on day 2.
			name:       "half slots round to even",
			priorities: []model.Priority{model.PriorityLow, model.PriorityLow},
			totalDays:  5,
			want:       []int{2, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := make([]model.Task, len(tt.priorities))
			for i, p := range tt.priorities {
				tasks[i] = model.Task{Priority: p}
			}

			got := planOffsets(tasks, tt.totalDays)
			if len(got) != len(tt.want) {
				t.Fatalf("planOffsets returned %d offsets, want %d", len(got), len(tt.want))
			}
			prev := 0
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("offset[%d] = %d, want %d", i, got[i], tt.want[i])
				}
				if got[i] < prev {
					t.Errorf("offset[%d] = %d decreased below %d", i, got[i], prev)
				}
				if got[i] > tt.totalDays {
					t.Errorf("offset[%d] = %d exceeds window of %d days", i, got[i], tt.totalDays)
				}
				prev = got[i]
			}
		})
	}
}

type redistributeFixture struct {
	svc      *ProjectService
	tasks    *repository.TaskRepository
	notifs   *repository.NotificationRepository
	user     *model.User
	projects *repository.ProjectRepository
}

func newRedistributeFixture(t *testing.T) *redistributeFixture {
	t.Helper()
	db := newTestDB(t)
	projects := repository.NewProjectRepository(db)
	tasks := repository.NewTaskRepository(db)
	notifs := repository.NewNotificationRepository(db)
	return &redistributeFixture{
		svc:      NewProjectService(projects, tasks, notifs),
		tasks:    tasks,
		notifs:   notifs,
		user:     createTestUser(t, db, "owner@example.com"),
		projects: projects,
	}
}

func (f *redistributeFixture) createProject(t *testing.T, deadline time.Time) *model.Project {
	t.Helper()
	project := &model.Project{
		UserID:   f.user.ID,
		Title:    "Thesis",
		Deadline: deadline,
		Status:   model.StatusInProgress,
	}
	if err := f.projects.Create(context.Background(), project); err != nil {
		t.Fatalf("create project: %v", err)
	}
	return project
}

func (f *redistributeFixture) createTask(t *testing.T, projectID uint, title string, deadline time.Time, priority model.Priority, completed bool) *model.Task {
	t.Helper()
	task := &model.Task{
		ProjectID:   projectID,
		Title:       title,
		Deadline:    deadline,
		Priority:    priority,
		IsCompleted: completed,
	}
	if err := f.tasks.Create(context.Background(), task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func TestRedistributeSpreadsByPriority(t *testing.T) {
	f := newRedistributeFixture(t)
	ctx := context.Background()
	today := date(2026, time.March, 2)
	project := f.createProject(t, date(2026, time.March, 12))

	f.createTask(t, project.ID, "research", date(2026, time.March, 3), model.PriorityHigh, false)
	f.createTask(t, project.ID, "draft", date(2026, time.March, 4), model.PriorityMedium, false)
	f.createTask(t, project.ID, "polish", date(2026, time.March, 5), model.PriorityLow, false)

	updated, overdue, err := f.svc.redistributeAt(ctx, project, today)
	if err != nil {
		t.Fatalf("redistribute: %v", err)
	}
	if updated != 3 {
		t.Errorf("updated = %d, want 3", updated)
	}
	if overdue != 0 {
		t.Errorf("overdue = %d, want 0", overdue)
	}

	tasks, err := f.tasks.ListIncomplete(ctx, project.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	want := map[string]time.Time{
		"research": date(2026, time.March, 7),
		"draft":    date(2026, time.March, 10),
		"polish":   date(2026, time.March, 12),
	}
	for _, task := range tasks {
		if got := model.DateOf(task.Deadline); !got.Equal(want[task.Title]) {
			t.Errorf("%s deadline = %s, want %s", task.Title, got.Format("2006-01-02"), want[task.Title].Format("2006-01-02"))
		}
	}
}

func TestRedistributeIsIdempotent(t *testing.T) {
	f := newRedistributeFixture(t)
	ctx := context.Background()
	today := date(2026, time.March, 2)
	project := f.createProject(t, date(2026, time.March, 12))

	f.createTask(t, project.ID, "research", date(2026, time.March, 3), model.PriorityHigh, false)
	f.createTask(t, project.ID, "draft", date(2026, time.March, 4), model.PriorityMedium, false)

	if _, _, err := f.svc.redistributeAt(ctx, project, today); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	updated, overdue, err := f.svc.redistributeAt(ctx, project, today)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if updated != 0 || overdue != 0 {
		t.Errorf("second pass updated=%d overdue=%d, want 0 and 0", updated, overdue)
	}
}

func TestRedistributePastDeadlineMarksOverdue(t *testing.T) {
	f := newRedistributeFixture(t)
	ctx := context.Background()
	today := date(2026, time.March, 2)
	project := f.createProject(t, date(2026, time.March, 1))

	f.createTask(t, project.ID, "late", date(2026, time.February, 25), model.PriorityHigh, false)
	f.createTask(t, project.ID, "also late", date(2026, time.March, 1), model.PriorityLow, false)

	updated, overdue, err := f.svc.redistributeAt(ctx, project, today)
	if err != nil {
		t.Fatalf("redistribute: %v", err)
	}
	// The window collapses and every task is clamped to the old deadline.
	if updated != 1 {
		t.Errorf("updated = %d, want 1", updated)
	}
	if overdue != 2 {
		t.Errorf("overdue = %d, want 2", overdue)
	}

	notifications, err := f.notifs.ListByUser(ctx, f.user.ID)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifications))
	}
}

func TestRedistributeSkipsCompletedTasks(t *testing.T) {
	f := newRedistributeFixture(t)
	ctx := context.Background()
	today := date(2026, time.March, 2)
	project := f.createProject(t, date(2026, time.March, 12))

	done := f.createTask(t, project.ID, "done", date(2026, time.March, 3), model.PriorityHigh, true)

	updated, overdue, err := f.svc.redistributeAt(ctx, project, today)
	if err != nil {
		t.Fatalf("redistribute: %v", err)
	}
	if updated != 0 || overdue != 0 {
		t.Errorf("updated=%d overdue=%d, want 0 and 0", updated, overdue)
	}

	reloaded, err := f.tasks.FindByID(ctx, project.ID, done.ID)
	if err != nil {
		t.Fatalf("reload task: %v", err)
	}
	if !model.DateOf(reloaded.Deadline).Equal(date(2026, time.March, 3)) {
		t.Errorf("completed task deadline moved to %s", reloaded.Deadline.Format("2006-01-02"))
	}
}

func TestRedistributeNoTasks(t *testing.T) {
	f := newRedistributeFixture(t)
	project := f.createProject(t, date(2026, time.March, 12))

	updated, overdue, err := f.svc.redistributeAt(context.Background(), project, date(2026, time.March, 2))
	if err != nil {
		t.Fatalf("redistribute: %v", err)
	}
	if updated != 0 || overdue != 0 {
		t.Errorf("updated=%d overdue=%d, want 0 and 0", updated, overdue)
	}
}

func TestUpdateProjectRedistributesOnDeadlineChange(t *testing.T) {
	f := newRedistributeFixture(t)
	ctx := context.Background()
	project := f.createProject(t, model.DateOf(time.Now()).AddDate(0, 0, 20))
	f.createTask(t, project.ID, "work", model.DateOf(time.Now()).AddDate(0, 0, 1), model.PriorityMedium, false)

	// Same deadline: no redistribution.
	_, updated, _, err := f.svc.UpdateProject(ctx, f.user, project.ID, ProjectInput{
		Title:    "Thesis",
		Deadline: project.Deadline,
	})
	if err != nil {
		t.Fatalf("update project: %v", err)
	}
	if updated != 0 {
		t.Errorf("updated = %d after no-op deadline change, want 0", updated)
	}

	// Moved deadline: the single task lands on the new deadline.
	newDeadline := model.DateOf(time.Now()).AddDate(0, 0, 10)
	saved, updated, overdue, err := f.svc.UpdateProject(ctx, f.user, project.ID, ProjectInput{
		Title:    "Thesis",
		Deadline: newDeadline,
	})
	if err != nil {
		t.Fatalf("update project: %v", err)
	}
	if !saved.Deadline.Equal(newDeadline) {
		t.Errorf("saved deadline = %s, want %s", saved.Deadline, newDeadline)
	}
	if updated != 1 || overdue != 0 {
		t.Errorf("updated=%d overdue=%d, want 1 and 0", updated, overdue)
	}

	tasks, err := f.tasks.ListIncomplete(ctx, project.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if !model.DateOf(tasks[0].Deadline).Equal(newDeadline) {
		t.Errorf("task deadline = %s, want %s", tasks[0].Deadline, newDeadline)
	}
}
