// Package http provides the HTTP server for the relay.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/docuchat/relay/internal/config"
	"github.com/docuchat/relay/internal/service"
)

// NewServer creates and configures the relay HTTP server.
func NewServer(svc *service.Service, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Handlers
	handler := NewHandler(svc, cfg.VMAPIURL)
	handler.RegisterRoutes(e)

	return e
}
