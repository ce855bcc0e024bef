package folio

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"folio/internal/models"
)

// Static serves the site's files when the API runs next to the frontend
type Static struct {
	dir   string
	files http.Handler
}

func NewStatic(c Config) *Static {
	return &Static{
		dir:   c.Static.Dir,
		files: http.FileServer(gin.Dir(c.Static.Dir, false)),
	}
}

// IndexHandler serves index.html for the root route
func (s *Static) IndexHandler(c *gin.Context) {
	c.File(filepath.Join(s.dir, "index.html"))
}

// FileHandler serves unmatched GET and HEAD requests from the directory
func (s *Static) FileHandler(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		NotFoundHandler(c)
		return
	}
	s.files.ServeHTTP(c.Writer, c.Request)
}

// NotFoundHandler answers unmatched routes in the API-only variant
func NotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.Response{Success: false, Message: "Not found"})
}
