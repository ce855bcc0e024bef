package mail

import (
	"context"
	"fmt"
	"os"

	"github.com/smtp2go-oss/smtp2go-go"
)

// APIKeyEnv is read by the smtp2go client on every send
const APIKeyEnv = "SMTP2GO_API_KEY"

// smtp2goTransport delivers through the SMTP2GO HTTP API
type smtp2goTransport struct{}

// NewSMTP2Go creates an SMTP2GO transport. The API key must be in the
// process environment.
func NewSMTP2Go() (Transport, error) {
	if os.Getenv(APIKeyEnv) == "" {
		return nil, fmt.Errorf("smtp2go: %s: %w", APIKeyEnv, ErrMissingCredentials)
	}
	return smtp2goTransport{}, nil
}

func (smtp2goTransport) Name() string {
	return DriverSMTP2Go
}

// Send blocks until the API answers. The client has no context support, so ctx is
// only checked before the call.
func (smtp2goTransport) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	email := &smtp2go.Email{
		From:     msg.From,
		To:       []string{msg.To},
		Subject:  msg.Subject,
		HtmlBody: msg.HTML,
	}
	if _, err := smtp2go.Send(email); err != nil {
		return fmt.Errorf("smtp2go: %w", err)
	}
	return nil
}
