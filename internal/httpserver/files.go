package httpserver

import (
	"strings"

	"animateme/internal/domain"
	"github.com/gin-gonic/gin"
)

// fileHandler serves uploaded objects. Paths are content-addressed, so they
// can be cached forever.
func fileHandler(files FileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := files.Resolve(c.Param("bucket"), strings.TrimPrefix(c.Param("path"), "/"))
		if err != nil {
			writeError(c, domain.ErrNotFound)
			return
		}
		c.Header("Cache-Control", "public, max-age=31536000, immutable")
		c.File(p)
	}
}
