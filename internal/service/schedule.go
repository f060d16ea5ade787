package service

import (
	"context"
	"math"
	"time"

	"personal-tracker/internal/model"
)

// planOffsets spreads tasks over a window of totalDays using cumulative
// priority weights, so higher-weight tasks land earlier. Offsets are
// non-decreasing in task order and never exceed totalDays. Tasks must
// already be in redistribution order.
func planOffsets(tasks []model.Task, totalDays int) []int {
	totalWeight := 0
	for _, t := range tasks {
		totalWeight += t.Priority.Weight()
	}

	offsets := make([]int, len(tasks))
	cumulative := 0
	for i, t := range tasks {
		cumulative += t.Priority.Weight()
		var pos float64
		if totalWeight > 0 {
			pos = float64(cumulative) / float64(totalWeight)
		} else {
			// Unreachable with weights >= 1, kept as a guard.
			pos = float64(i+1) / float64(len(tasks))
		}
		// Exact .5 slots round half to even, not away from zero.
		offset := int(math.RoundToEven(pos * float64(totalDays)))
		if offset > totalDays {
			offset = totalDays
		}
		offsets[i] = offset
	}
	return offsets
}

// RedistributeDeadlines re-spreads the project's incomplete tasks across
// the window from today to the project deadline, weighted by priority.
// It returns how many deadlines changed and how many tasks are left
// overdue. Each changed deadline is written individually; writes happen
// in redistribution order.
func (s *ProjectService) RedistributeDeadlines(ctx context.Context, project *model.Project) (int, int, error) {
	return s.redistributeAt(ctx, project, model.DateOf(time.Now()))
}

func (s *ProjectService) redistributeAt(ctx context.Context, project *model.Project, today time.Time) (updated, overdue int, err error) {
	tasks, err := s.tasks.ListIncomplete(ctx, project.ID)
	if err != nil {
		return 0, 0, err
	}
	if len(tasks) == 0 {
		return 0, 0, nil
	}

	deadline := model.DateOf(project.Deadline)
	end := deadline
	// A past deadline collapses the window to zero rather than going negative.
	if end.Before(today) {
		end = today
	}
	totalDays := model.DaysBetween(today, end)
	if totalDays < 0 {
		totalDays = 0
	}

	offsets := planOffsets(tasks, totalDays)
	for i := range tasks {
		newDeadline := today.AddDate(0, 0, offsets[i])
		if newDeadline.After(deadline) {
			newDeadline = deadline
		}

		if !model.DateOf(tasks[i].Deadline).Equal(newDeadline) {
			if err := s.tasks.UpdateDeadline(ctx, &tasks[i], newDeadline); err != nil {
				return updated, overdue, err
			}
			updated++
		}

		if model.DateOf(tasks[i].Deadline).Before(today) && !tasks[i].IsCompleted {
			overdue++
		}
	}

	if overdue > 0 {
		s.notifyOverdue(ctx, project, overdue)
	}
	return updated, overdue, nil
}
