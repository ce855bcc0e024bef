package folio

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"folio/internal/models"
	"folio/shared/logger"
)

// StatusBanner is reported by the root route when no static site is served
const StatusBanner = "Portfolio Backend API is running!"

// Health serves the liveness routes
type Health struct {
	config Config
	log    logger.Logger
	now    func() time.Time
}

func NewHealth(l logger.Logger, c Config) *Health {
	return &Health{
		config: c,
		log:    l,
		now:    time.Now,
	}
}

// StatusHandler answers the root route
func (h *Health) StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.Status{
		Status:    StatusBanner,
		Timestamp: h.timestamp(),
	})
}

// HealthCheckHandler answers the health route
func (h *Health) HealthCheckHandler(c *gin.Context) {
	h.log.Debug("Checking service integrity...")
	c.JSON(http.StatusOK, models.Health{
		Status:    "healthy",
		Service:   h.config.Service.Name,
		Timestamp: h.timestamp(),
	})
}

func (h *Health) timestamp() string {
	return h.now().UTC().Format(time.RFC3339Nano)
}
