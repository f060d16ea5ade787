package web

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"personal-tracker/internal/model"
	"personal-tracker/internal/repository"
	"personal-tracker/internal/service"
)

func (s *Server) listMeetings(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}

	filter := repository.MeetingFilter{
		When:   c.QueryParam("when"),
		Search: c.QueryParam("search"),
		Type:   model.MeetingType(c.QueryParam("type")),
	}
	meetings, err := s.meetings.ListMeetings(c.Request().Context(), user, filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, meetings)
}

func (s *Server) createMeeting(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}
	input, err := bindMeetingInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	meeting, err := s.meetings.CreateMeeting(c.Request().Context(), user, input)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, meeting)
}

func (s *Server) getMeeting(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}
	meetingID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	meeting, err := s.meetings.GetMeeting(c.Request().Context(), user, meetingID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, meeting)
}

func (s *Server) updateMeeting(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}
	meetingID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	input, err := bindMeetingInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	meeting, err := s.meetings.UpdateMeeting(c.Request().Context(), user, meetingID, input)
	if err != nil {
		if isNotFound(err) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, meeting)
}

func (s *Server) deleteMeeting(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}
	meetingID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := s.meetings.DeleteMeeting(c.Request().Context(), user, meetingID); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listReminderLogs(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}
	logs, err := s.meetings.ListReminderLogs(c.Request().Context(), user)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}

func bindMeetingInput(c echo.Context) (service.MeetingInput, error) {
	var req meetingRequest
	if err := c.Bind(&req); err != nil {
		return service.MeetingInput{}, fmt.Errorf("invalid request body")
	}
	startsAt, err := parseTimestamp(req.StartsAt)
	if err != nil {
		return service.MeetingInput{}, err
	}
	endsAt, err := parseTimestamp(req.EndsAt)
	if err != nil {
		return service.MeetingInput{}, err
	}
	return service.MeetingInput{
		Title:               req.Title,
		Description:         req.Description,
		Type:                model.MeetingType(req.Type),
		Subject:             req.Subject,
		StartsAt:            startsAt,
		EndsAt:              endsAt,
		ReminderEnabled:     req.ReminderEnabled,
		ReminderLeadMinutes: req.ReminderLeadMinutes,
	}, nil
}
