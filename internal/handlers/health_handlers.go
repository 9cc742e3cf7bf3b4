package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health is the handler for GET /api/health
func (h *Handlers) Health(c *gin.Context) {
	if err := h.DB.PingContext(c.Request.Context()); err != nil {
		h.Log.Error().Err(err).Msg("health check: database unreachable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "ok"})
}
