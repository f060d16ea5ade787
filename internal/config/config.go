package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// SMTPConfig keeps credentials for the outbound mail transport.
type SMTPConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Config keeps runtime settings for the tracker.
type Config struct {
	ListenAddr    string
	DatabaseURL   string
	JWTSecret     string
	SiteName      string
	ScanInterval  time.Duration
	ReminderGrace time.Duration
	RecurringAt   string // HH:MM daily sweep for recurring meetings
	SMTP          SMTPConfig
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is honored when present.
func Load() (Config, error) {
	// Missing .env is fine, system env vars still apply.
	_ = godotenv.Load()

	cfg := Config{
		ListenAddr:    getenv("LISTEN_ADDR", ":8080"),
		DatabaseURL:   getenv("DATABASE_URL", "personal_tracker.db"),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		SiteName:      getenv("SITE_NAME", "PersonalTracker"),
		ScanInterval:  parseDuration(os.Getenv("SCAN_INTERVAL"), time.Minute),
		ReminderGrace: parseDuration(os.Getenv("REMINDER_GRACE"), 5*time.Minute),
		RecurringAt:   getenv("RECURRING_SWEEP_AT", "07:00"),
		SMTP: SMTPConfig{
			Enabled:  parseBool(os.Getenv("SMTP_ENABLED")),
			Host:     getenv("SMTP_HOST", "localhost"),
			Port:     parseInt(os.Getenv("SMTP_PORT"), 587),
			Username: strings.TrimSpace(os.Getenv("SMTP_USERNAME")),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getenv("SMTP_FROM", "tracker@localhost"),
		},
	}

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseBool(raw string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && b
}
