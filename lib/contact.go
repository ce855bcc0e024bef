package folio

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"folio/internal/models"
	"folio/lib/mail"
	"folio/shared/logger"
)

// Messages returned to callers of the contact endpoint
const (
	MsgSent          = "Email sent successfully!"
	MsgMissingFields = "Please fill in all required fields"
	MsgSendFailed    = "Failed to send email. Please try again."
	MsgInvalidBody   = "Invalid request body"
)

const instrumentationName = "folio/contact"

// Result is the outcome of handling one submission
type Result struct {
	Status int
	Body   models.Response
}

// Contact turns submissions into notifications for the site owner
type Contact struct {
	config    Config
	transport mail.Transport
	validate  *validator.Validate
	log       logger.Logger

	submissions metric.Int64Counter
}

// NewContact creates the contact handler. Config and transport are read-only
// after construction, so one Contact serves concurrent requests.
func NewContact(l logger.Logger, c Config, t mail.Transport) *Contact {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	counter, err := otel.Meter(instrumentationName).Int64Counter("contact.submissions",
		metric.WithDescription("Contact form submissions by outcome"))
	if err != nil {
		l.Warn("Failed to create submissions counter", logger.Err(err))
	}

	return &Contact{
		config:      c,
		transport:   t,
		validate:    v,
		log:         l,
		submissions: counter,
	}
}

// Handle validates a submission, relays it to the mail transport once and shapes the response
func (c *Contact) Handle(ctx context.Context, s models.Submission) Result {
	err := c.Deliver(ctx, s)
	switch {
	case err == nil:
		c.record(ctx, "sent")
		return Result{
			Status: http.StatusOK,
			Body:   models.Response{Success: true, Message: MsgSent},
		}

	case isValidationError(err):
		c.record(ctx, "invalid")
		c.log.Info("Rejected contact submission", logger.Err(err))
		return Result{
			Status: http.StatusBadRequest,
			Body:   models.Response{Success: false, Message: MsgMissingFields},
		}

	default:
		c.record(ctx, "failed")
		c.log.Error("Error sending email",
			logger.String("transport", c.transport.Name()),
			logger.Err(err))
		body := models.Response{Success: false, Message: MsgSendFailed}
		if c.config.Development() {
			body.Error = rootCause(err).Error()
		}
		return Result{Status: http.StatusInternalServerError, Body: body}
	}
}

// Deliver performs validation and the single delivery attempt.
// It returns a *ValidationError or a *DeliveryError.
func (c *Contact) Deliver(ctx context.Context, s models.Submission) error {
	s = s.Normalize()

	c.log.Info("Received form submission",
		logger.String("full_name", s.FullName),
		logger.String("email", s.Email),
		logger.String("subject", s.Subject))

	if err := c.validate.Struct(s); err != nil {
		return newValidationError(err)
	}

	subject, html, err := RenderNotification(s, c.config.Contact)
	if err != nil {
		return &DeliveryError{Transport: c.transport.Name(), Err: err}
	}

	msg := mail.Message{
		From:    c.config.Mail.Sender(),
		To:      c.config.Contact.Recipient,
		Subject: subject,
		HTML:    html,
	}

	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "contact.deliver")
	span.SetAttributes(attribute.String("mail.transport", c.transport.Name()))
	defer span.End()

	start := time.Now()
	if err := c.transport.Send(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delivery failed")
		return &DeliveryError{Transport: c.transport.Name(), Err: err}
	}

	c.log.Info("Email sent successfully",
		logger.String("to", msg.To),
		logger.String("transport", c.transport.Name()),
		logger.Duration("duration", time.Since(start)))
	return nil
}

// SendEmailHandler binds the request body and writes the Result as JSON
func (c *Contact) SendEmailHandler(ctx *gin.Context) {
	var s models.Submission
	if err := ctx.ShouldBind(&s); err != nil {
		c.log.Warn("Could not bind contact submission", logger.Err(err))
		ctx.JSON(http.StatusBadRequest, models.Response{Success: false, Message: MsgInvalidBody})
		return
	}

	result := c.Handle(ctx.Request.Context(), s)
	ctx.JSON(result.Status, result.Body)
}

func (c *Contact) record(ctx context.Context, outcome string) {
	if c.submissions == nil {
		return
	}
	c.submissions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// rootCause strips the DeliveryError wrapper so only the transport's own message is echoed
func rootCause(err error) error {
	var d *DeliveryError
	if errors.As(err, &d) && d.Err != nil {
		return d.Err
	}
	return err
}
