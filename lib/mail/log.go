package mail

import (
	"context"

	"folio/shared/logger"
)

// logTransport writes messages to the log instead of sending them.
// Used for local development without mail credentials.
type logTransport struct {
	log logger.Logger
}

func NewLog(l logger.Logger) Transport {
	return &logTransport{log: l}
}

func (t *logTransport) Name() string {
	return DriverLog
}

func (t *logTransport) Send(ctx context.Context, msg Message) error {
	t.log.Info("Mail delivery skipped (log driver)",
		logger.String("from", msg.From),
		logger.String("to", msg.To),
		logger.String("subject", msg.Subject),
		logger.Int("html_bytes", len(msg.HTML)))
	return nil
}
