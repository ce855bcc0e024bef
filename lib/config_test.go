package folio

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"folio/internal/models"
	"folio/shared/logger"
)

// clearEnv unsets every variable LoadConfig reads so the host environment can't leak in
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "HOST", "APP_ENV", "NODE_ENV", "SERVICE_NAME",
		"MAIL_DRIVER", "MAIL_HOST", "MAIL_PORT", "EMAIL_USER", "EMAIL_PASS", "MAIL_FROM",
		"CONTACT_RECIPIENT", "CONTACT_OWNER_NAME", "CONTACT_SITE_URL",
		"CORS_ALLOWED_ORIGINS", "STATIC_SERVE", "STATIC_DIR",
		"OTEL_EXPORTER_OTLP_ENDPOINT", "LOG_FILE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("EMAIL_USER", "site@example.com")
	t.Setenv("EMAIL_PASS", "secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("CONTACT_RECIPIENT", "owner@example.com")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://site.example.com, http://localhost:5173,")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Address() != ":8080" {
		t.Errorf("Expected :8080, got %s", cfg.Address())
	}
	if cfg.Mail.Username != "site@example.com" || cfg.Mail.Password != "secret" {
		t.Errorf("Expected mail credentials from environment, got %+v", cfg.Mail)
	}
	if cfg.Development() {
		t.Error("Expected production mode")
	}
	want := []string{"https://site.example.com", "http://localhost:5173"}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, want) {
		t.Errorf("Expected origins %v, got %v", want, cfg.CORS.AllowedOrigins)
	}
	if cfg.Contact.DefaultSubject != "New Contact Form Submission" {
		t.Errorf("Expected default subject, got %q", cfg.Contact.DefaultSubject)
	}
}

func TestLoadConfigFileThenEnvironment(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: "4000"
  shutdownTimeout: 3s
environment: production
mail:
  driver: log
contact:
  recipient: file@example.com
  ownerName: File Owner
cors:
  allowedOrigins:
    - https://site.example.com
static:
  serve: true
  dir: www
`)
	t.Setenv("CONTACT_RECIPIENT", "env@example.com")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Server.Port != "4000" {
		t.Errorf("Expected port from file, got %s", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 3*time.Second {
		t.Errorf("Expected 3s shutdown timeout, got %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Mail.Driver != "log" {
		t.Errorf("Expected log driver, got %s", cfg.Mail.Driver)
	}
	if cfg.Contact.Recipient != "env@example.com" {
		t.Errorf("Expected environment to override file, got %s", cfg.Contact.Recipient)
	}
	if cfg.Contact.OwnerName != "File Owner" {
		t.Errorf("Expected owner from file, got %s", cfg.Contact.OwnerName)
	}
	if !cfg.Static.Serve || cfg.Static.Dir != "www" {
		t.Errorf("Expected static serving from www, got %+v", cfg.Static)
	}
	if cfg.Service.Name != "portfolio-backend" {
		t.Errorf("Expected default service name kept, got %s", cfg.Service.Name)
	}
}

func TestLoadConfigEmptyOriginsEnvClearsFileList(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
contact:
  recipient: owner@example.com
cors:
  allowedOrigins: [https://site.example.com]
`)
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(cfg.CORS.AllowedOrigins) != 0 {
		t.Errorf("Expected an explicit empty variable to allow all origins, got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing recipient", map[string]string{}},
		{"bad recipient", map[string]string{"CONTACT_RECIPIENT": "nobody"}},
		{"bad port", map[string]string{"CONTACT_RECIPIENT": "o@example.com", "PORT": "http"}},
		{"bad env", map[string]string{"CONTACT_RECIPIENT": "o@example.com", "APP_ENV": "staging"}},
		{"bad driver", map[string]string{"CONTACT_RECIPIENT": "o@example.com", "MAIL_DRIVER": "fax"}},
		{"bad origin", map[string]string{"CONTACT_RECIPIENT": "o@example.com", "CORS_ALLOWED_ORIGINS": "not a url"}},
		{"bad mail port", map[string]string{"CONTACT_RECIPIENT": "o@example.com", "MAIL_PORT": "abc"}},
		{"bad static flag", map[string]string{"CONTACT_RECIPIENT": "o@example.com", "STATIC_SERVE": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(""); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "server: [unterminated")
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected a parse error")
	}
}

func TestLoadConfigDefaultsToProduction(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONTACT_RECIPIENT", "owner@example.com")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Development() {
		t.Fatalf("Expected production mode without APP_ENV, got %q", cfg.Environment)
	}

	transport := &fakeTransport{err: errors.New("535 5.7.8 Username and Password not accepted")}
	result := NewContact(logger.NewNoOpLogger(), cfg, transport).Handle(context.Background(),
		models.Submission{FullName: "Ada", Email: "a@b.com", Message: "hi"})
	if result.Status != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", result.Status)
	}
	if result.Body.Error != "" {
		t.Errorf("Expected no error detail without an explicit development mode, got %q", result.Body.Error)
	}
}

func TestLoadConfigEnvironmentAliases(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"node env", map[string]string{"NODE_ENV": "development"}, EnvDevelopment},
		{"app env", map[string]string{"APP_ENV": "development"}, EnvDevelopment},
		{"app env wins", map[string]string{"NODE_ENV": "development", "APP_ENV": "production"}, EnvProduction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("CONTACT_RECIPIENT", "owner@example.com")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := LoadConfig("")
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if cfg.Environment != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, cfg.Environment)
			}
		})
	}
}
