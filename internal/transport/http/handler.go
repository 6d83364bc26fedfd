package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/docuchat/relay/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service   *service.Service
	vmBaseURL string
	vmClient  *http.Client
}

// NewHandler creates a new handler. vmBaseURL may be empty; the VM proxy
// then answers 503 for every request.
func NewHandler(svc *service.Service, vmBaseURL string) *Handler {
	return &Handler{
		service:   svc,
		vmBaseURL: vmBaseURL,
		vmClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// RegisterRoutes registers the relay routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Chat API
	e.POST("/chat", h.Chat)
	e.GET("/history", h.History)

	// Document API
	e.POST("/upload", h.UploadDocument)
	e.GET("/documents", h.ListDocuments)
	e.GET("/documents/search", h.SearchDocuments)
	e.DELETE("/documents/:id", h.DeleteDocument)

	// VM API passthrough
	e.Any("/api/vm/*", h.VMProxy)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
