// Package server assembles the gateway's single gin.Engine: middleware
// chain and route table, per §4.12.
package server

import (
	"net/http"

	"credpool/internal/config"
	"credpool/internal/credential"
	"credpool/internal/errors"
	"credpool/internal/handlers"
	mw "credpool/internal/middleware"
	"credpool/internal/orchestrator"

	"github.com/gin-gonic/gin"
)

// Build constructs the gin.Engine with the full middleware chain and
// route table, wired to the shared registry and orchestrator.
func Build(cfg *config.Config, reg *credential.Registry, o *orchestrator.Orchestrator) *gin.Engine {
	engine := gin.New()
	engine.Use(mw.Recovery())
	engine.Use(mw.RequestID())
	engine.Use(mw.CORS(cfg.CORSOrigin))
	engine.Use(mw.Metrics())
	engine.Use(mw.BodySizeLimit(cfg.BodySizeLimit))

	engine.GET("/", handlers.Root(cfg.HealthCheckPath, cfg.StatsPath))
	engine.GET(cfg.HealthCheckPath, handlers.Health())
	engine.GET(cfg.StatsPath, handlers.Stats(reg))

	chat := handlers.ChatCompletions(o)
	engine.POST("/chat/completions", chat)
	engine.POST("/v1/chat/completions", chat)

	engine.POST("/verify", handlers.Verify(o))

	if cfg.AdminKey != "" {
		engine.POST("/admin/credentials/:id/reset", handlers.AdminReset(reg, cfg.AdminKey))
	}

	if cfg.MetricsEnabled {
		engine.GET("/metrics", mw.MetricsHandler)
	}

	engine.NoRoute(func(c *gin.Context) {
		writeAPIError(c, errors.NotFound())
	})
	engine.NoMethod(func(c *gin.Context) {
		writeAPIError(c, errors.MethodNotAllowed())
	})

	return engine
}

func writeAPIError(c *gin.Context, apiErr *errors.APIError) {
	body, err := apiErr.ToJSON(errors.FormatOpenAI)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(apiErr.HTTPStatus, "application/json", body)
}
