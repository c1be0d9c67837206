package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is loaded once at startup from environment variables.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	Port        string `env:"PORT" envDefault:"8080"`

	// The signing secret itself is read by internal/middleware from
	// JWT_SECRET.
	JWTValidity time.Duration `env:"JWT_TTL" envDefault:"24h"`

	// Registration codes are expected to be typed in right away;
	// recovery codes tolerate checking email later.
	RegistrationOTPTTL time.Duration `env:"REGISTRATION_OTP_TTL" envDefault:"3m"`
	RecoveryOTPTTL     time.Duration `env:"RECOVERY_OTP_TTL" envDefault:"10m"`

	ResendAPIKey string `env:"RESEND_API_KEY"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"SafeSpace<onboarding@resend.dev>"`

	UseEmailReputation  bool   `env:"USE_EMAIL_REPUTATION" envDefault:"false"`
	AbstractEmailAPIKey string `env:"ABSTRACT_EMAIL_API_KEY"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
