package http

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/skillswap/skillswap-web/internal/infrastructure/http/handlers"
)

// RegisterOperations mounts the health checks, the Prometheus scrape endpoint and
// the API docs. None of them require a session. rdb may be nil.
func RegisterOperations(e *echo.Echo, apiURL string, rdb *redis.Client) {
	var pinger handlers.RedisPinger
	if rdb != nil {
		pinger = rdb
	}

	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(apiURL, pinger)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are the API and Redis up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
