package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"personal-tracker/internal/config"
	"personal-tracker/internal/model"
	"personal-tracker/internal/repository"
	"personal-tracker/internal/service"
)

// Server exposes the tracker as an authenticated JSON API.
type Server struct {
	echo          *echo.Echo
	cfg           *config.Config
	users         *repository.UserRepository
	notifications *repository.NotificationRepository
	projects      *service.ProjectService
	tasks         *service.TaskService
	meetings      *service.MeetingService
	notes         *service.NoteService
	sessions      *service.SessionService
}

func New(
	cfg *config.Config,
	users *repository.UserRepository,
	notifications *repository.NotificationRepository,
	projects *service.ProjectService,
	tasks *service.TaskService,
	meetings *service.MeetingService,
	notes *service.NoteService,
	sessions *service.SessionService,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	s := &Server{
		echo:          e,
		cfg:           cfg,
		users:         users,
		notifications: notifications,
		projects:      projects,
		tasks:         tasks,
		meetings:      meetings,
		notes:         notes,
		sessions:      sessions,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.POST("/auth/register", s.register)
	s.echo.POST("/auth/login", s.login)

	api := s.echo.Group("/api")
	api.Use(middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey: []byte(s.cfg.JWTSecret),
	}))

	api.GET("/projects", s.listProjects)
	api.POST("/projects", s.createProject)
	api.GET("/projects/:id", s.getProject)
	api.PUT("/projects/:id", s.updateProject)
	api.DELETE("/projects/:id", s.deleteProject)

	api.GET("/projects/:id/tasks", s.listTasks)
	api.POST("/projects/:id/tasks", s.createTask)
	api.PUT("/projects/:id/tasks/:taskID", s.updateTask)
	api.POST("/projects/:id/tasks/:taskID/complete", s.completeTask)
	api.POST("/projects/:id/tasks/:taskID/reopen", s.reopenTask)
	api.DELETE("/projects/:id/tasks/:taskID", s.deleteTask)

	api.GET("/meetings", s.listMeetings)
	api.POST("/meetings", s.createMeeting)
	api.GET("/meetings/:id", s.getMeeting)
	api.PUT("/meetings/:id", s.updateMeeting)
	api.DELETE("/meetings/:id", s.deleteMeeting)
	api.GET("/reminder-logs", s.listReminderLogs)

	api.GET("/notes", s.listNotes)
	api.POST("/notes", s.createNote)
	api.GET("/notes/:id", s.getNote)
	api.PUT("/notes/:id", s.updateNote)
	api.DELETE("/notes/:id", s.deleteNote)
	api.GET("/tags", s.listTags)
	api.DELETE("/tags/:id", s.deleteTag)

	api.GET("/sessions", s.listSessions)
	api.POST("/sessions/start", s.startSession)
	api.POST("/sessions/stop", s.stopSession)
	api.GET("/sessions/stats", s.sessionStats)
	api.DELETE("/sessions/:id", s.deleteSession)

	api.GET("/notifications", s.listNotifications)
	api.POST("/notifications/:id/read", s.readNotification)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = s.echo.Shutdown(shutdownCtx)
	}()

	if err := s.echo.Start(s.cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// currentUser resolves the authenticated account from the JWT claims.
func (s *Server) currentUser(c echo.Context) (*model.User, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	rawID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid user id in token")
	}

	user, err := s.users.FindByID(c.Request().Context(), uint(rawID))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unknown account")
	}
	if !user.IsActive {
		return nil, echo.NewHTTPError(http.StatusForbidden, "account disabled")
	}
	return user, nil
}

func pathID(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return uint(value), nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func fail(c echo.Context, err error) error {
	if isNotFound(err) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}
