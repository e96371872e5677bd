// Package config reads the server's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DefaultPort          = "8080"
	DefaultSMTPHost      = "smtp.gmail.com"
	DefaultSMTPPort      = "587"
	DefaultRecipient     = "yadavharshit1901@gmail.com"
	DefaultBackdropFPS   = 30
	DefaultContactLimit  = 5
	DefaultContactWindow = time.Hour
	DefaultStreamLimit   = 32
	DefaultStreamClient  = 2
)

var ErrSMTPNotConfigured = errors.New("SMTP credentials not configured")

type SMTP struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// Addr is the host:port dial address.
func (s SMTP) Addr() string { return s.Host + ":" + s.Port }

// Check reports ErrSMTPNotConfigured when no credentials are set.
func (s SMTP) Check() error {
	if s.User == "" || s.Pass == "" {
		return ErrSMTPNotConfigured
	}
	return nil
}

type Config struct {
	Port        string
	GinMode     string
	ContentFile string
	FilesDir    string
	SMTP        SMTP

	BackdropFPS   int
	ContactLimit  int
	ContactWindow time.Duration

	// StreamLimit caps open backdrop streams in total, StreamPerClient per
	// client address.
	StreamLimit     int
	StreamPerClient int
}

// Load builds a Config from environment variables, falling back to defaults
// for anything unset.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getenv("PORT", DefaultPort),
		GinMode:     os.Getenv("GIN_MODE"),
		ContentFile: os.Getenv("CONTENT_FILE"),
		FilesDir:    getenv("FILES_DIR", "./files"),
		SMTP: SMTP{
			Host: getenv("SMTP_HOST", DefaultSMTPHost),
			Port: getenv("SMTP_PORT", DefaultSMTPPort),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
			To:   getenv("TO_EMAIL", DefaultRecipient),
		},
	}

	var err error
	if cfg.BackdropFPS, err = intEnv("BACKDROP_FPS", DefaultBackdropFPS); err != nil {
		return nil, err
	}
	if cfg.ContactLimit, err = intEnv("CONTACT_LIMIT", DefaultContactLimit); err != nil {
		return nil, err
	}
	if cfg.ContactWindow, err = durationEnv("CONTACT_WINDOW", DefaultContactWindow); err != nil {
		return nil, err
	}
	if cfg.StreamLimit, err = intEnv("STREAM_LIMIT", DefaultStreamLimit); err != nil {
		return nil, err
	}
	if cfg.StreamPerClient, err = intEnv("STREAM_PER_CLIENT", DefaultStreamClient); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, v)
	}
	return d, nil
}
