// Package config loads the contact form runtime settings from the
// environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Transport kinds accepted by TRANSPORT.
const (
	TransportSimulated = "simulated"
	TransportHTTP      = "http"
	TransportMailgun   = "mailgun"
)

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "CONTACTFORM_"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds all runtime configuration.
type Config struct {
	// Server settings
	ServerAddress   string        `env:"SERVER_ADDRESS" envDefault:"0.0.0.0"`
	ServerPort      int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	Debug           bool          `env:"DEBUG" envDefault:"false"`

	Log  LogConfig
	Form FormConfig

	Transport TransportConfig
	RateLimit RateLimitConfig
}

// LogConfig selects the zap level and encoder.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// FormConfig controls the definition and presentation of the form.
type FormConfig struct {
	DefinitionPath   string        `env:"DEFINITION_PATH"`
	OpenAPIPath      string        `env:"OPENAPI_PATH"`
	OpenAPIOperation string        `env:"OPENAPI_OPERATION" envDefault:"createConsultation"`
	Locale           string        `env:"LOCALE" envDefault:"ko"`
	Theme            string        `env:"THEME" envDefault:"landing"`
	ThemeVariant     string        `env:"THEME_VARIANT"`
	CloseDelay       time.Duration `env:"CLOSE_DELAY" envDefault:"2s"`
	SendTimeout      time.Duration `env:"SEND_TIMEOUT" envDefault:"15s"`
	CSRF             bool          `env:"CSRF" envDefault:"true"`
}

// TransportConfig picks and configures the submission transport.
type TransportConfig struct {
	Kind             string        `env:"TRANSPORT" envDefault:"simulated"`
	SimulatedLatency time.Duration `env:"SIMULATED_LATENCY" envDefault:"2s"`

	HTTPEndpoint string `env:"HTTP_ENDPOINT"`
	HTTPEncoding string `env:"HTTP_ENCODING" envDefault:"json"`
	HTTPAPIKey   string `env:"HTTP_API_KEY"`

	MailgunDomain   string        `env:"MAILGUN_DOMAIN"`
	MailgunAPIKey   string        `env:"MAILGUN_API_KEY"`
	MailgunFrom     string        `env:"MAILGUN_FROM_EMAIL"`
	MailgunFromName string        `env:"MAILGUN_FROM_NAME" envDefault:"Contact Form"`
	MailgunTo       []string      `env:"MAILGUN_TO" envSeparator:","`
	MailgunSubject  string        `env:"MAILGUN_SUBJECT" envDefault:"New consultation request"`
	MailgunTimeout  time.Duration `env:"MAILGUN_TIMEOUT" envDefault:"10s"`
}

// RateLimitConfig bounds submissions per client address.
type RateLimitConfig struct {
	RequestsPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"6"`
	Burst             int `env:"RATE_LIMIT_BURST" envDefault:"3"`
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ServerAddress, strconv.Itoa(c.ServerPort))
}

// Load parses the process environment.
func Load() (*Config, error) {
	return LoadFrom(nil)
}

// LoadFrom parses the given variables instead of the process environment
// when environ is non-nil.
func LoadFrom(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	c.Transport.Kind = strings.ToLower(strings.TrimSpace(c.Transport.Kind))
	switch c.Transport.Kind {
	case TransportSimulated:
	case TransportHTTP:
		if strings.TrimSpace(c.Transport.HTTPEndpoint) == "" {
			return fmt.Errorf("%w: %sHTTP_ENDPOINT is required for the http transport", ErrInvalid, EnvPrefix)
		}
	case TransportMailgun:
		if c.Transport.MailgunDomain == "" || c.Transport.MailgunAPIKey == "" {
			return fmt.Errorf("%w: mailgun domain and api key are required", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown transport %q", ErrInvalid, c.Transport.Kind)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.Log.Format)
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("%w: server port %d out of range", ErrInvalid, c.ServerPort)
	}
	if c.RateLimit.RequestsPerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("%w: rate limit values must not be negative", ErrInvalid)
	}
	return nil
}
