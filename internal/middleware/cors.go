package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware tells the browser which frontend may call the API.
// frontendURL is a single origin, a comma separated list, or "*" (any
// origin, meant for development).
func CORSMiddleware(frontendURL string) gin.HandlerFunc {
	allowAny := frontendURL == "" || frontendURL == "*"
	allowed := map[string]bool{}
	for _, origin := range strings.Split(frontendURL, ",") {
		if origin = strings.TrimRight(strings.TrimSpace(origin), "/"); origin != "" {
			allowed[origin] = true
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		switch {
		case allowAny && origin == "":
			c.Header("Access-Control-Allow-Origin", "*")
		case allowAny:
			// Any origin may read, but never with the caller's cookies.
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		case allowed[origin]:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}

		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-Request-ID, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		// Preflight: the browser only wants the headers above.
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
