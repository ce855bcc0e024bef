package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

const (
	DefaultSMTPHost = "smtp.gmail.com"
	DefaultSMTPPort = 587
)

// smtpTransport submits mail to an authenticated SMTP relay
type smtpTransport struct {
	host     string
	port     int
	username string
	password string
}

// NewSMTP creates an SMTP transport. Host and port default to Gmail's
// submission endpoint; STARTTLS is mandatory.
func NewSMTP(cfg Config) (Transport, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("smtp: %w", ErrMissingCredentials)
	}
	host := cfg.Host
	if host == "" {
		host = DefaultSMTPHost
	}
	port := cfg.Port
	if port == 0 {
		port = DefaultSMTPPort
	}
	return &smtpTransport{
		host:     host,
		port:     port,
		username: cfg.Username,
		password: cfg.Password,
	}, nil
}

func (s *smtpTransport) Name() string {
	return DriverSMTP
}

// Send dials the relay for this message only; no connection is shared between requests
func (s *smtpTransport) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return fmt.Errorf("smtp: invalid sender %q: %w", msg.From, err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("smtp: invalid recipient %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTML)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
	)
	if err != nil {
		return fmt.Errorf("smtp: client setup: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp: send via %s:%d: %w", s.host, s.port, err)
	}
	return nil
}
