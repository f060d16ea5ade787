package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

func (s *Server) listSessions(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil || limit < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
	}

	sessions, err := s.sessions.ListSessions(c.Request().Context(), user, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, sessions)
}

func (s *Server) startSession(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}

	var req startSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	session, err := s.sessions.StartSession(c.Request().Context(), user, req.Title, req.PlannedMinutes, req.BreakMinutes, time.Now())
	if err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, session)
}

func (s *Server) stopSession(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}

	session, err := s.sessions.StopRunning(c.Request().Context(), user, time.Now())
	if err != nil {
		if isNotFound(err) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no running session"})
		}
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, session)
}

func (s *Server) sessionStats(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}

	stats, err := s.sessions.Stats(c.Request().Context(), user, time.Now())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"today_minutes":      stats.TodayMinutes,
		"week_minutes":       stats.WeekMinutes,
		"week_series":        stats.WeekSeries,
		"streak_days":        stats.Streak,
		"suggested_duration": stats.Suggestion,
	})
}

func (s *Server) deleteSession(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}
	sessionID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := s.sessions.DeleteSession(c.Request().Context(), user, sessionID); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listNotifications(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}
	notifications, err := s.notifications.ListByUser(c.Request().Context(), user.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, notifications)
}

func (s *Server) readNotification(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}
	notificationID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := s.notifications.MarkRead(c.Request().Context(), user.ID, notificationID); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
