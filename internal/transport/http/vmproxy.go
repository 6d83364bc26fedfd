package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// VMProxy forwards /api/vm/* requests verbatim to the configured VM API:
// same method, subpath, query string, and body, with the upstream status
// and content type relayed back.
func (h *Handler) VMProxy(c echo.Context) error {
	if h.vmBaseURL == "" {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "vm api is not configured"})
	}

	req := c.Request()
	subpath := strings.TrimPrefix(req.URL.Path, "/api/vm")
	target := strings.TrimRight(h.vmBaseURL, "/") + subpath
	if req.URL.RawQuery != "" {
		target += "?" + req.URL.RawQuery
	}

	upstream, err := http.NewRequestWithContext(req.Context(), req.Method, target, req.Body)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "failed to build vm request"})
	}
	if ct := req.Header.Get(echo.HeaderContentType); ct != "" {
		upstream.Header.Set(echo.HeaderContentType, ct)
	}

	resp, err := h.vmClient.Do(upstream)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "vm api request failed: " + err.Error()})
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = echo.MIMEApplicationJSON
	}
	return c.Stream(resp.StatusCode, contentType, io.LimitReader(resp.Body, 10<<20))
}
