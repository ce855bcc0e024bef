package folio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"folio/lib/mail"
)

// Runtime modes
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the resolved, validated application configuration.
// It is built once at startup and passed by value afterwards.
type Config struct {
	Service     ServiceConfig   `yaml:"service"`
	Server      ServerConfig    `yaml:"server"`
	Environment string          `yaml:"environment" validate:"oneof=development production"`
	Mail        mail.Config     `yaml:"mail"`
	Contact     ContactConfig   `yaml:"contact"`
	CORS        CORSConfig      `yaml:"cors"`
	Static      StaticConfig    `yaml:"static"`
	Telemetry   TelemetryConfig `yaml:"telemetry"`
	Log         LogConfig       `yaml:"log"`
}

type ServiceConfig struct {
	Name        string `yaml:"name" validate:"required"`
	Version     string `yaml:"version" validate:"required"`
	Description string `yaml:"description"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port" validate:"required,numeric"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" validate:"gt=0"`
}

// ContactConfig holds the operator side of the contact form
type ContactConfig struct {
	// Recipient receives every submission; callers cannot change it
	Recipient      string `yaml:"recipient" validate:"required,email"`
	DefaultSubject string `yaml:"defaultSubject" validate:"required"`
	OwnerName      string `yaml:"ownerName"`
	SiteURL        string `yaml:"siteURL" validate:"omitempty,url"`
}

// CORSConfig lists the origins allowed to call the API with credentials.
// An empty list allows every origin without credentials.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins" validate:"dive,url"`
}

// StaticConfig serves a directory of files next to the API
type StaticConfig struct {
	Serve bool   `yaml:"serve"`
	Dir   string `yaml:"dir" validate:"required_if=Serve true"`
}

type TelemetryConfig struct {
	// OTLPEndpoint enables trace and metric export over gRPC when set
	OTLPEndpoint string        `yaml:"otlpEndpoint"`
	Insecure     bool          `yaml:"insecure"`
	SampleRate   float64       `yaml:"sampleRate" validate:"gte=0,lte=1"`
	Interval     time.Duration `yaml:"interval"`
	Prometheus   bool          `yaml:"prometheus"`
}

type LogConfig struct {
	File string `yaml:"file"`
}

// Development reports whether internal error detail may be shown to callers.
// Only an explicit development setting enables it.
func (c Config) Development() bool {
	return c.Environment == EnvDevelopment
}

// Address is the listen address for the HTTP server
func (c Config) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}

// DefaultConfig returns the settings used when nothing overrides them
func DefaultConfig() Config {
	return Config{
		Service: ServiceConfig{
			Name:        "portfolio-backend",
			Version:     "1.0.0",
			Description: "Contact form relay for a portfolio website.",
		},
		Server: ServerConfig{
			Port:            "3000",
			ShutdownTimeout: 10 * time.Second,
		},
		Environment: EnvProduction,
		Mail: mail.Config{
			Driver: mail.DriverSMTP,
			Host:   mail.DefaultSMTPHost,
			Port:   mail.DefaultSMTPPort,
		},
		Contact: ContactConfig{
			DefaultSubject: "New Contact Form Submission",
		},
		Static: StaticConfig{
			Dir: "public",
		},
		Telemetry: TelemetryConfig{
			Insecure:   true,
			SampleRate: 1,
			Interval:   30 * time.Second,
			Prometheus: true,
		},
	}
}

// LoadConfig resolves configuration from defaults, an optional YAML file and the
// environment, in that order, and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// optional
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration against its struct rules
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyEnv overlays environment variables onto the configuration
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("PORT", &c.Server.Port)
	str("HOST", &c.Server.Host)
	str("NODE_ENV", &c.Environment)
	str("APP_ENV", &c.Environment)
	str("SERVICE_NAME", &c.Service.Name)

	str("MAIL_DRIVER", &c.Mail.Driver)
	str("MAIL_HOST", &c.Mail.Host)
	str("EMAIL_USER", &c.Mail.Username)
	str("EMAIL_PASS", &c.Mail.Password)
	str("MAIL_FROM", &c.Mail.From)
	if v, ok := lookup("MAIL_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAIL_PORT: %w", err)
		}
		c.Mail.Port = port
	}

	str("CONTACT_RECIPIENT", &c.Contact.Recipient)
	str("CONTACT_OWNER_NAME", &c.Contact.OwnerName)
	str("CONTACT_SITE_URL", &c.Contact.SiteURL)

	if v, ok := lookup("CORS_ALLOWED_ORIGINS"); ok {
		c.CORS.AllowedOrigins = splitList(v)
	}

	if v, ok := lookup("STATIC_SERVE"); ok && v != "" {
		serve, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("STATIC_SERVE: %w", err)
		}
		c.Static.Serve = serve
	}
	str("STATIC_DIR", &c.Static.Dir)

	str("OTEL_EXPORTER_OTLP_ENDPOINT", &c.Telemetry.OTLPEndpoint)
	str("LOG_FILE", &c.Log.File)

	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
