package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	API_KEY_HEADER   = "Api-Key"
	API_CLIENT_KEY   = "apiClient"
	ERR_MISSING_KEYS = "a valid API key missing"
)

// HasValidAPIKey accepts requests carrying one of the configured keys in the Api-Key header.
// validKeys maps the key to the client name, which is stored in the context under API_CLIENT_KEY.
func HasValidAPIKey(validKeys map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		keysInHeader := c.Request.Header.Values(API_KEY_HEADER)
		if len(keysInHeader) < 1 {
			slog.Warn("API key missing", slog.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ERR_MISSING_KEYS})
			return
		}

		for _, k := range keysInHeader {
			if client, ok := validKeys[k]; ok {
				c.Set(API_CLIENT_KEY, client)
				c.Next()
				return
			}
		}

		slog.Warn("invalid API key", slog.String("path", c.FullPath()), slog.Int("receivedKeys", len(keysInHeader)))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ERR_MISSING_KEYS})
	}
}
