package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// staticHandler serves the web client from staticDir. Unknown paths fall
// back to index.html; unmatched /api paths stay JSON 404s so the client
// never parses HTML as an API response.
func staticHandler(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		urlPath := c.Request.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			c.File(filepath.Join(staticDir, "index.html"))
			return
		}

		c.File(filePath)
	}
}
