package web

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"personal-tracker/internal/model"
	"personal-tracker/internal/repository"
	"personal-tracker/internal/service"
)

func (s *Server) listProjects(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}

	filter := repository.ProjectFilter{
		Status: model.ProjectStatus(c.QueryParam("status")),
		Search: c.QueryParam("search"),
		Sort:   c.QueryParam("sort"),
	}
	projects, err := s.projects.ListProjects(c.Request().Context(), user, filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, projects)
}

func (s *Server) createProject(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}

	input, err := bindProjectInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	project, err := s.projects.CreateProject(c.Request().Context(), user, input)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, project)
}

func (s *Server) getProject(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	project, err := s.projects.GetProject(c.Request().Context(), user, projectID)
	if err != nil {
		return fail(c, err)
	}
	stats, err := s.projects.ProjectStats(c.Request().Context(), project)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"project": project,
		"stats": echo.Map{
			"total_tasks":     stats.TotalTasks,
			"completed_tasks": stats.CompletedTasks,
			"pending_tasks":   stats.PendingTasks,
		},
	})
}

// updateProject reports how the deadline change rippled through the
// project's tasks alongside the saved project.
func (s *Server) updateProject(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	input, err := bindProjectInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	project, updated, overdue, err := s.projects.UpdateProject(c.Request().Context(), user, projectID, input)
	if err != nil {
		if isNotFound(err) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	messages := make([]string, 0, 2)
	if updated > 0 {
		messages = append(messages, fmt.Sprintf("%d task deadline(s) rescheduled", updated))
	}
	if overdue > 0 {
		messages = append(messages, fmt.Sprintf("%d task(s) are overdue", overdue))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"project":  project,
		"updated":  updated,
		"overdue":  overdue,
		"messages": messages,
	})
}

func (s *Server) deleteProject(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := s.projects.DeleteProject(c.Request().Context(), user, projectID); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func bindProjectInput(c echo.Context) (service.ProjectInput, error) {
	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return service.ProjectInput{}, fmt.Errorf("invalid request body")
	}
	deadline, err := parseDate(req.Deadline)
	if err != nil {
		return service.ProjectInput{}, err
	}
	return service.ProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    deadline,
		Status:      model.ProjectStatus(req.Status),
		Progress:    req.Progress,
	}, nil
}

func (s *Server) listTasks(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	tasks, err := s.tasks.ListTasks(c.Request().Context(), user, projectID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) createTask(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	input, err := bindTaskInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	task, err := s.tasks.CreateTask(c.Request().Context(), user, projectID, input)
	if err != nil {
		if isNotFound(err) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, task)
}

func (s *Server) updateTask(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	taskID, err := pathID(c, "taskID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	input, err := bindTaskInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	task, err := s.tasks.UpdateTask(c.Request().Context(), user, projectID, taskID, input)
	if err != nil {
		if isNotFound(err) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) completeTask(c echo.Context) error {
	return s.setTaskCompleted(c, true)
}

func (s *Server) reopenTask(c echo.Context) error {
	return s.setTaskCompleted(c, false)
}

func (s *Server) setTaskCompleted(c echo.Context, completed bool) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	taskID, err := pathID(c, "taskID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	task, err := s.tasks.SetCompleted(c.Request().Context(), user, projectID, taskID, completed)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) deleteTask(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	taskID, err := pathID(c, "taskID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := s.tasks.DeleteTask(c.Request().Context(), user, projectID, taskID); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func bindTaskInput(c echo.Context) (service.TaskInput, error) {
	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return service.TaskInput{}, fmt.Errorf("invalid request body")
	}
	var input service.TaskInput
	input.Title = req.Title
	input.Description = req.Description
	input.Priority = model.Priority(req.Priority)
	if req.Deadline != "" {
		deadline, err := parseDate(req.Deadline)
		if err != nil {
			return service.TaskInput{}, err
		}
		input.Deadline = deadline
	}
	return input, nil
}
