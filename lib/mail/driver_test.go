package mail

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"folio/shared/logger"
)

func TestNewSelectsDriver(t *testing.T) {
	t.Setenv(APIKeyEnv, "api-test-key")

	tests := []struct {
		driver string
		want   string
	}{
		{"", DriverSMTP},
		{DriverSMTP, DriverSMTP},
		{DriverSMTP2Go, DriverSMTP2Go},
		{DriverLog, DriverLog},
	}

	for _, tt := range tests {
		cfg := Config{Driver: tt.driver, Username: "me@example.com", Password: "secret"}
		tr, err := New(cfg, logger.NewNoOpLogger())
		if err != nil {
			t.Fatalf("driver %q: unexpected error: %v", tt.driver, err)
		}
		if tr.Name() != tt.want {
			t.Errorf("driver %q: expected %s transport, got %s", tt.driver, tt.want, tr.Name())
		}
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(Config{Driver: "pigeon"}, logger.NewNoOpLogger())
	if err == nil {
		t.Fatal("Expected an error for an unknown driver")
	}
}

func TestSMTPRequiresCredentials(t *testing.T) {
	for _, cfg := range []Config{
		{Driver: DriverSMTP},
		{Driver: DriverSMTP, Username: "me@example.com"},
		{Driver: DriverSMTP, Password: "secret"},
	} {
		_, err := New(cfg, logger.NewNoOpLogger())
		if !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("config %+v: expected ErrMissingCredentials, got %v", cfg, err)
		}
	}
}

func TestSMTPDefaults(t *testing.T) {
	tr, err := NewSMTP(Config{Username: "me@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	s := tr.(*smtpTransport)
	if s.host != DefaultSMTPHost || s.port != DefaultSMTPPort {
		t.Errorf("Expected %s:%d, got %s:%d", DefaultSMTPHost, DefaultSMTPPort, s.host, s.port)
	}

	tr, err = NewSMTP(Config{Host: "mail.example.com", Port: 2525, Username: "u", Password: "p"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	s = tr.(*smtpTransport)
	if s.host != "mail.example.com" || s.port != 2525 {
		t.Errorf("Expected mail.example.com:2525, got %s:%d", s.host, s.port)
	}
}

func TestSMTPRejectsBadAddresses(t *testing.T) {
	tr, err := NewSMTP(Config{Username: "u", Password: "p"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// Address parsing fails before any network activity
	err = tr.Send(context.Background(), Message{From: "not an address", To: "owner@example.com"})
	if err == nil {
		t.Error("Expected an error for an invalid sender")
	}
}

func TestSMTP2GoRequiresAPIKey(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	_, err := NewSMTP2Go()
	if !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("Expected ErrMissingCredentials, got %v", err)
	}
}

func TestSMTP2GoHonoursCancelledContext(t *testing.T) {
	t.Setenv(APIKeyEnv, "api-test-key")
	tr, err := NewSMTP2Go()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := tr.Send(ctx, Message{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestLogTransport(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	tr := NewLog(logger.FromZap(zap.New(core)))

	err := tr.Send(context.Background(), Message{
		From:    "site@example.com",
		To:      "owner@example.com",
		Subject: "Hello",
		HTML:    "<p>hi</p>",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	entries := logs.FilterField(zap.String("subject", "Hello")).All()
	if len(entries) != 1 {
		t.Fatalf("Expected one log entry for the message, got %d", len(entries))
	}
}

func TestConfigSender(t *testing.T) {
	if got := (Config{Username: "u@example.com"}).Sender(); got != "u@example.com" {
		t.Errorf("Expected username fallback, got %q", got)
	}
	if got := (Config{Username: "u@example.com", From: "Site <site@example.com>"}).Sender(); got != "Site <site@example.com>" {
		t.Errorf("Expected explicit from, got %q", got)
	}
}
