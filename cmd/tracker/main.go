package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"personal-tracker/internal/config"
	"personal-tracker/internal/mail"
	"personal-tracker/internal/repository"
	"personal-tracker/internal/service"
	"personal-tracker/internal/web"
)

func main() {
	root := &cobra.Command{
		Use:          "tracker",
		Short:        "Personal tracker for projects, meetings, notes and study sessions",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), scanCmd(), migrateCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles the wired-up application for the commands to share.
type app struct {
	cfg       config.Config
	reminders *service.ReminderService
	server    *web.Server
}

func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	users := repository.NewUserRepository(db)
	projects := repository.NewProjectRepository(db)
	tasks := repository.NewTaskRepository(db)
	meetings := repository.NewMeetingRepository(db)
	notes := repository.NewNoteRepository(db)
	sessions := repository.NewSessionRepository(db)
	notifications := repository.NewNotificationRepository(db)

	mailer := mail.NewSMTP(cfg.SMTP)
	reminderSvc := service.NewReminderService(meetings, users, mailer, cfg.ReminderGrace, cfg.SiteName)
	projectSvc := service.NewProjectService(projects, tasks, notifications)
	taskSvc := service.NewTaskService(tasks, projects)
	meetingSvc := service.NewMeetingService(meetings, reminderSvc)
	noteSvc := service.NewNoteService(notes)
	sessionSvc := service.NewSessionService(sessions)

	server := web.New(&cfg, users, notifications, projectSvc, taskSvc, meetingSvc, noteSvc, sessionSvc)

	return &app{
		cfg:       cfg,
		reminders: reminderSvc,
		server:    server,
	}, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API server with the background reminder scanner",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			scheduler := service.NewSchedulerService(time.Local)
			if _, err := scheduler.ScheduleInterval("reminder-scan", a.cfg.ScanInterval, func() {
				jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := a.reminders.Scan(jobCtx, time.Now()); err != nil {
					log.Printf("[warn] reminder scan: %v", err)
				}
			}); err != nil {
				return err
			}
			if _, err := scheduler.ScheduleDaily("recurring-sweep", a.cfg.RecurringAt, func() {
				jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := a.reminders.GenerateRecurring(jobCtx, time.Now()); err != nil {
					log.Printf("[warn] recurring sweep: %v", err)
				}
			}); err != nil {
				return err
			}
			scheduler.Start()
			defer scheduler.Stop()

			log.Printf("[info] listening on %s, reminder scan every %s", a.cfg.ListenAddr, a.cfg.ScanInterval)
			return a.server.Start(ctx)
		},
	}
}

func scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Run one reminder scan and recurring sweep, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			now := time.Now()
			if err := a.reminders.Scan(ctx, now); err != nil {
				return err
			}
			return a.reminders.GenerateRecurring(ctx, now)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if _, err := repository.NewDB(cfg.DatabaseURL); err != nil {
				return err
			}
			log.Println("[info] migrations applied")
			return nil
		},
	}
}
