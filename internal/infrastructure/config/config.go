package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/example/slotwatch/internal/domain/availability"
)

type Variant string

const (
	// VariantForm POSTs location_id as a form and reads {location, slots}.
	VariantForm Variant = "form"
	// VariantStatic GETs a static JSON array and reads result.ajaxresult.slots.listTimeSlot.
	VariantStatic Variant = "static"
)

const (
	defaultEndpoint   = "https://driverstest.noob.place/api/get_location_details8534567107532739672"
	defaultBookingURL = "https://driverstest.noob.place/"
	defaultPushTitle  = "Driving test slots found"

	defaultPushEndpoint = "http://www.pushplus.plus/send"
)

// Secrets holds everything read from the environment. An empty group disables its notifier.
type Secrets struct {
	Env      string `env:"GO_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	PushToken string `env:"PUSH_TOKEN"`

	Twilio struct {
		AccountSID string `env:"TWILIO_ACCOUNT_SID"`
		AuthToken  string `env:"TWILIO_AUTH_TOKEN"`
		FromNumber string `env:"TWILIO_FROM_NUMBER"`
		ToNumber   string `env:"TWILIO_TO_NUMBER"`
	}

	SES struct {
		Region          string `env:"SES_REGION"`
		AccessKeyID     string `env:"SES_ACCESS_KEY_ID"`
		SecretAccessKey string `env:"SES_SECRET_ACCESS_KEY"`
		From            string `env:"EMAIL_FROM"`
		To              string `env:"EMAIL_TO"`
	}
}

// Config is built once per run and not mutated afterwards.
type Config struct {
	Locations []availability.Location
	Criteria  availability.Criteria

	Variant      Variant
	Endpoint     string
	FetchTimeout time.Duration
	RequestDelay time.Duration

	PushEndpoint string
	PushTitle    string
	BookingURL   string
	ContactPhone string
	AlertPhrase  string
	AlertRepeats int

	Secrets Secrets
}

// Default returns the run parameters. These are source-level settings, not environment ones.
func Default() Config {
	return Config{
		Locations: []availability.Location{
			{ID: "421", Name: "Roselands"},
		},
		Criteria: availability.Criteria{
			Window: availability.DateWindow{
				Start: time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
			},
		},
		Variant:      VariantForm,
		Endpoint:     defaultEndpoint,
		FetchTimeout: 15 * time.Second,
		RequestDelay: time.Second,
		PushEndpoint: defaultPushEndpoint,
		PushTitle:    defaultPushTitle,
		BookingURL:   defaultBookingURL,
		AlertPhrase:  "A driving test slot is available. Book it now.",
		AlertRepeats: 3,
	}
}

// Load reads .env (outside production) and the environment on top of Default.
func Load() (Config, error) {
	cfg := Default()
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if err := godotenv.Load(); err != nil {
			slog.Warn(".env file not loaded", "error", err)
		}
	}
	if err := env.Parse(&cfg.Secrets); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Secrets.Env = strings.ToLower(strings.TrimSpace(cfg.Secrets.Env))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if len(c.Locations) == 0 {
		return errors.New("at least one location is required")
	}
	for _, l := range c.Locations {
		if strings.TrimSpace(l.ID) == "" {
			return fmt.Errorf("location %q has an empty id", l.Name)
		}
	}
	w := c.Criteria.Window
	if w.End.Before(w.Start) {
		return fmt.Errorf("date window end %s is before start %s", w.End.Format(time.DateOnly), w.Start.Format(time.DateOnly))
	}
	if strings.TrimSpace(c.Endpoint) == "" {
		return errors.New("booking endpoint is required")
	}
	switch c.Variant {
	case VariantForm, VariantStatic:
	default:
		return fmt.Errorf("unknown booking variant %q", c.Variant)
	}
	if c.FetchTimeout <= 0 {
		return errors.New("fetch timeout must be positive")
	}
	if c.RequestDelay < 0 {
		return errors.New("request delay must not be negative")
	}
	return nil
}

func (c Config) IsProduction() bool { return c.Secrets.Env == "production" }
