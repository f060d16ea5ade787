package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"personal-tracker/internal/repository"
	"personal-tracker/internal/service"
)

func (s *Server) listNotes(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}

	filter := repository.NoteFilter{
		Search: c.QueryParam("search"),
		Tag:    c.QueryParam("tag"),
	}
	notes, err := s.notes.ListNotes(c.Request().Context(), user, filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, notes)
}

func (s *Server) createNote(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}

	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	note, err := s.notes.CreateNote(c.Request().Context(), user, service.NoteInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, note)
}

// getNote returns the note plus its content rendered to sanitized HTML.
func (s *Server) getNote(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}
	noteID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	note, err := s.notes.GetNote(c.Request().Context(), user, noteID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"note": note,
		"html": s.notes.RenderHTML(note),
	})
}

func (s *Server) updateNote(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}
	noteID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	note, err := s.notes.UpdateNote(c.Request().Context(), user, noteID, service.NoteInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		if isNotFound(err) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, note)
}

func (s *Server) deleteNote(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}
	noteID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := s.notes.DeleteNote(c.Request().Context(), user, noteID); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listTags(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}
	tags, err := s.notes.ListTags(c.Request().Context(), user)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, tags)
}

func (s *Server) deleteTag(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}
	tagID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := s.notes.DeleteTag(c.Request().Context(), user, tagID); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
