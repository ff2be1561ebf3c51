// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/mmynk/lunchpoll/internal/token"
)

// Config is the complete server configuration.
type Config struct {
	Addr      string `env:"ADDR"       envDefault:":8080"`
	DBPath    string `env:"DB_PATH"    envDefault:"./data/lunchpoll.db"`
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	TokenLength   int    `env:"TOKEN_LENGTH"   envDefault:"32"`
	TokenAlphabet string `env:"TOKEN_ALPHABET" envDefault:"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"`

	// AppBaseURL is the public address used in join links.
	AppBaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// SecureCookies forces the Secure attribute on sign-in cookies. It is
	// implied when AppBaseURL is https.
	SecureCookies bool `env:"SECURE_COOKIES"`

	SMTP  SMTPConfig
	Email EmailConfig

	Google GoogleConfig
}

// SMTPConfig configures the outbound relay. An empty Host logs invitations
// instead of sending them.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT"     envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"     envDefault:"lunchpoll@localhost"`
}

// EmailConfig throttles invitation delivery.
type EmailConfig struct {
	RatePerSecond float64 `env:"EMAIL_RATE_PER_SEC" envDefault:"5"`
	Burst         int     `env:"EMAIL_BURST"        envDefault:"10"`
}

// GoogleConfig configures the Google identity provider. Sign-in routes are
// disabled when ClientID is empty.
type GoogleConfig struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURL  string `env:"GOOGLE_REDIRECT_URL" envDefault:"http://localhost:8080/auth/google/callback"`
	UserInfoURL  string `env:"GOOGLE_USERINFO_URL" envDefault:"https://openidconnect.googleapis.com/v1/userinfo"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// CookiesSecure reports whether sign-in cookies must be marked Secure.
func (c Config) CookiesSecure() bool {
	if c.SecureCookies {
		return true
	}
	u, err := url.Parse(c.AppBaseURL)
	return err == nil && u.Scheme == "https"
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if _, err := token.NewGenerator(c.TokenLength, c.TokenAlphabet); err != nil {
		errs = append(errs, fmt.Errorf("TOKEN_LENGTH/TOKEN_ALPHABET: %w", err))
	}
	if c.Email.RatePerSecond <= 0 || c.Email.Burst <= 0 {
		errs = append(errs, errors.New("EMAIL_RATE_PER_SEC and EMAIL_BURST must be positive"))
	}
	if c.Google.ClientID != "" && c.Google.ClientSecret == "" {
		errs = append(errs, errors.New("GOOGLE_CLIENT_SECRET is required when GOOGLE_CLIENT_ID is set"))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}
