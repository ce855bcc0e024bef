package folio

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"folio/internal/models"
	"folio/lib/mail"
	"folio/shared/logger"
)

// Engine wires the HTTP router, the contact handler and the documentation
type Engine struct {
	config  Config
	log     logger.Logger
	http    *HTTP
	docs    *Docs
	health  *Health
	contact *Contact
	static  *Static
}

// NewEngine builds the application around an already constructed mail transport
func NewEngine(l logger.Logger, c Config, t mail.Transport) (*Engine, error) {
	e := &Engine{
		config:  c,
		log:     l,
		http:    NewHTTP(l, c),
		docs:    NewDocs(l, c),
		health:  NewHealth(l, c),
		contact: NewContact(l, c, t),
	}
	if c.Static.Serve {
		e.static = NewStatic(c)
	}
	if err := e.Prime(); err != nil {
		return nil, err
	}
	return e, nil
}

// Attach registers operations with the router and the documentation
func (e *Engine) Attach(ops ...*HTTPOperation) error {
	e.log.Debug("Attaching HTTP operations", logger.Int("count", len(ops)))
	for _, op := range ops {
		if err := e.http.AddRoute(op); err != nil {
			return err
		}
		e.docs.AddPath(op)
	}
	return nil
}

// Prime sets up the default endpoints
func (e *Engine) Prime() error {
	e.docs.AddTag("Contact", "Contact form relay")
	e.docs.AddTag("Health", "Liveness and status")

	root := &HTTPOperation{
		Name:        "Status",
		Description: "Reports that the API is running.",
		Tag:         "Health",
		Method:      http.MethodGet,
		Path:        "/",
		Handler:     e.health.StatusHandler,
		Response:    &HTTPResponse{Status: http.StatusOK, Body: models.Status{}},
	}
	if e.static != nil {
		root.Description = "Serves the site's index page."
		root.Handler = e.static.IndexHandler
		root.Response = &HTTPResponse{Status: http.StatusOK}
	}

	err := e.Attach(
		root,
		&HTTPOperation{
			Name:        "Health Check",
			Description: "Returns 200 while the service is able to answer requests.",
			Tag:         "Health",
			Method:      http.MethodGet,
			Path:        "/health",
			Handler:     e.health.HealthCheckHandler,
			Response:    &HTTPResponse{Status: http.StatusOK, Body: models.Health{}},
		},
		&HTTPOperation{
			Name:        "Send Email",
			Description: "Relays a contact form submission to the site owner by email.",
			Tag:         "Contact",
			Method:      http.MethodPost,
			Path:        "/send-email",
			Handler:     e.contact.SendEmailHandler,
			RequestBody: models.Submission{},
			Response: &HTTPResponse{
				Status: http.StatusOK,
				Body:   models.Response{},
				Errors: map[int]any{
					http.StatusBadRequest:          models.Response{},
					http.StatusInternalServerError: models.Response{},
				},
			},
		},
	)
	if err != nil {
		return fmt.Errorf("prime routes: %w", err)
	}

	// Documentation endpoint stays out of its own document
	e.http.GET("/openapi", e.docs.SpecHandler)

	if e.static != nil {
		e.http.NoRoute(e.static.FileHandler)
	} else {
		e.http.NoRoute(NotFoundHandler)
	}
	return nil
}

// Handler exposes the router, mainly for tests
func (e *Engine) Handler() http.Handler {
	return e.http.Engine
}

// Start serves HTTP on the configured address until ctx is cancelled
func (e *Engine) Start(ctx context.Context) error {
	ln, err := e.http.Listen()
	if err != nil {
		return err
	}
	return e.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then drains
// in-flight requests within the shutdown timeout
func (e *Engine) Serve(ctx context.Context, ln net.Listener) error {
	errc := make(chan error, 1)
	go func() {
		errc <- e.http.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), e.config.Server.ShutdownTimeout)
	defer cancel()
	if err := e.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errc
}
