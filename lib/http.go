package folio

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	"folio/shared/logger"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

// HTTPResponse documents the success status and body of an operation
type HTTPResponse struct {
	Status int
	Body   any
	Errors map[int]any
}

// HTTPOperation is an API action used to register an endpoint and document it
type HTTPOperation struct {
	Name        string
	Description string
	Tag         string
	Method      string
	Path        string
	Handler     gin.HandlerFunc
	RequestBody any
	Response    *HTTPResponse
}

// HTTP owns the gin router and the listening server
type HTTP struct {
	*gin.Engine

	config Config
	log    logger.Logger
	server *http.Server
}

// NewHTTP creates the router with the shared middleware chain
func NewHTTP(l logger.Logger, c Config) *HTTP {
	gin.SetMode(gin.ReleaseMode)
	e := gin.New()

	e.Use(RequestID())
	e.Use(otelgin.Middleware(c.Service.Name))
	e.Use(LogMiddleware(l))
	e.Use(gin.Recovery())
	e.Use(corsMiddleware(c.CORS))

	if c.Telemetry.Prometheus {
		p := ginprometheus.NewPrometheus("gin")
		p.ReqCntURLLabelMappingFn = func(ctx *gin.Context) string {
			if path := ctx.FullPath(); path != "" {
				return path
			}
			return "unmatched"
		}
		p.Use(e)
	}

	return &HTTP{
		Engine: e,
		config: c,
		log:    l,
		server: &http.Server{
			Addr:              c.Address(),
			Handler:           e,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// AddRoute registers an operation with the router
func (h *HTTP) AddRoute(op *HTTPOperation) error {
	switch op.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
		h.Handle(op.Method, op.Path, op.Handler)
	default:
		return fmt.Errorf("unsupported HTTP method %q for %s", op.Method, op.Path)
	}
	h.log.Debug("Added route",
		logger.String("method", op.Method),
		logger.String("path", op.Path))
	return nil
}

// Listen opens the configured address
func (h *HTTP) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", h.server.Addr, err)
	}
	return ln, nil
}

// Serve accepts connections on ln until Shutdown is called
func (h *HTTP) Serve(ln net.Listener) error {
	h.log.Info("Server running", logger.String("address", ln.Addr().String()))
	if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (h *HTTP) Shutdown(ctx context.Context) error {
	h.log.Info("Stopping HTTP server")
	return h.server.Shutdown(ctx)
}

// RequestID propagates or assigns a correlation id for every request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// LogMiddleware logs every request once it has been served
func LogMiddleware(l logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []logger.Field{
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.String("ip", c.ClientIP()),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("duration", time.Since(start)),
			logger.String("request_id", c.GetString("request_id")),
		}
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			fields = append(fields, logger.String("trace_id", sc.TraceID().String()))
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			l.Warn("HTTP Response", fields...)
			return
		}
		l.Info("HTTP Response", fields...)
	}
}

// corsMiddleware applies the allow-list, or opens the API to every origin
// without credentials when the list is empty. Requests from unlisted origins
// are served without CORS headers, leaving the browser to block the response.
func corsMiddleware(c CORSConfig) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(c.AllowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
		return cors.New(cfg)
	}

	allowed := make(map[string]struct{}, len(c.AllowedOrigins))
	for _, origin := range c.AllowedOrigins {
		origin = strings.ToLower(strings.TrimSuffix(origin, "/"))
		allowed[origin] = struct{}{}
		cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
	}
	cfg.AllowCredentials = true
	apply := cors.New(cfg)

	return func(ctx *gin.Context) {
		origin := strings.ToLower(ctx.GetHeader("Origin"))
		if _, ok := allowed[origin]; origin != "" && !ok {
			ctx.Next()
			return
		}
		apply(ctx)
	}
}
