package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/docuchat/relay/internal/domain"
)

// Chat runs one chat exchange.
func (h *Handler) Chat(c echo.Context) error {
	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	resp, err := h.service.HandleChat(c.Request().Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyMessage):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "No message provided."})
		case errors.Is(err, domain.ErrPolicyRejected):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			return c.JSON(http.StatusBadGateway, map[string]string{
				"error":  "chat failed",
				"detail": err.Error(),
			})
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// History returns recent interactions, newest first. The limit query
// parameter caps the result; it defaults to 50.
func (h *Handler) History(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
		}
		limit = n
	}

	entries, err := h.service.GetHistory(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load history"})
	}
	if entries == nil {
		entries = []domain.Interaction{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"interactions": entries})
}
