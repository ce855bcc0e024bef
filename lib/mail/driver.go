package mail

import (
	"context"
	"errors"
	"fmt"

	"folio/shared/logger"
)

// Drivers understood by New
const (
	DriverSMTP    = "smtp"
	DriverSMTP2Go = "smtp2go"
	DriverLog     = "log"
)

var ErrMissingCredentials = errors.New("mail credentials are not configured")

// Message is a fully formed outbound email
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Transport delivers a Message through a mail-sending service.
// Implementations hold only immutable settings and are safe for concurrent use.
type Transport interface {
	Send(ctx context.Context, msg Message) error
	Name() string
}

// Config selects and configures a Transport
type Config struct {
	Driver   string `yaml:"driver" validate:"oneof=smtp smtp2go log"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port" validate:"gte=0,lte=65535"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// From defaults to Username
	From string `yaml:"from"`
}

// Sender is the address used in the From header
func (c Config) Sender() string {
	if c.From != "" {
		return c.From
	}
	return c.Username
}

// New builds the Transport named by cfg.Driver
func New(cfg Config, log logger.Logger) (Transport, error) {
	switch cfg.Driver {
	case DriverSMTP, "":
		return NewSMTP(cfg)
	case DriverSMTP2Go:
		return NewSMTP2Go()
	case DriverLog:
		return NewLog(log), nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.Driver)
	}
}
