package service

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// SchedulerService drives the background jobs: the periodic reminder
// scan and the daily recurring-meeting sweep.
type SchedulerService struct {
	cron *cron.Cron
}

func NewSchedulerService(loc *time.Location) *SchedulerService {
	return &SchedulerService{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds()),
	}
}

// ScheduleInterval registers a named job that runs every interval.
func (s *SchedulerService) ScheduleInterval(name string, interval time.Duration, job func()) (cron.EntryID, error) {
	if interval < time.Second {
		return 0, fmt.Errorf("interval %s too short for job %q", interval, name)
	}
	spec := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	id, err := s.cron.AddFunc(spec, job)
	if err != nil {
		return 0, fmt.Errorf("schedule %q: %w", name, err)
	}
	log.Printf("[info] job %q scheduled every %s", name, interval)
	return id, nil
}

// ScheduleDaily registers a named job that runs once a day at HH:MM.
func (s *SchedulerService) ScheduleDaily(name, at string, job func()) (cron.EntryID, error) {
	spec, err := dailySpec(at)
	if err != nil {
		return 0, fmt.Errorf("schedule %q: %w", name, err)
	}
	id, err := s.cron.AddFunc(spec, job)
	if err != nil {
		return 0, fmt.Errorf("schedule %q: %w", name, err)
	}
	log.Printf("[info] job %q scheduled daily at %s", name, at)
	return id, nil
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *SchedulerService) Stop() {
	<-s.cron.Stop().Done()
}

// dailySpec converts an HH:MM clock time into a six-field cron spec.
func dailySpec(at string) (string, error) {
	parts := strings.Split(at, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", at)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", at)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", at)
	}
	return fmt.Sprintf("0 %d %d * * *", minute, hour), nil
}
