package handlers

import (
	"net/http"

	"credpool/internal/credential"
	"credpool/internal/monitoring"

	"github.com/gin-gonic/gin"
)

// Root handles GET / with a JSON service descriptor listing endpoints.
func Root(healthPath, statsPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "credpool",
			"endpoints": gin.H{
				"health":           healthPath,
				"stats":            statsPath,
				"chat_completions": "/v1/chat/completions",
				"verify":           "/verify",
			},
		})
	}
}

// Health handles GET /health with a minimal liveness document.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Stats handles GET /stats with the registry/selector/health-state
// counters, per §6.
func Stats(reg *credential.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, monitoring.BuildStats(reg))
	}
}
