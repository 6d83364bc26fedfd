package http

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/docuchat/relay/internal/domain"
)

// maxUploadBytes caps uploaded document size at 10 MB.
const maxUploadBytes = 10 << 20

// UploadDocument accepts a multipart file upload, extracts its text, and
// registers the document.
func (h *Handler) UploadDocument(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "no file provided"})
	}
	if fileHeader.Size > maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "file exceeds 10MB limit"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "failed to read file"})
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "failed to read file"})
	}
	if len(data) > maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "file exceeds 10MB limit"})
	}

	doc, err := h.service.UploadDocument(c.Request().Context(), fileHeader.Filename, data)
	if err != nil {
		if strings.Contains(err.Error(), "unsupported file type") {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	// The registry row keeps the extracted text; the response does not.
	doc.Content = ""
	doc.FilePath = ""
	return c.JSON(http.StatusCreated, doc)
}

// ListDocuments returns registry metadata for every uploaded document.
func (h *Handler) ListDocuments(c echo.Context) error {
	docs, err := h.service.ListDocuments(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list documents"})
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"documents": docs})
}

// SearchDocuments finds documents whose extracted text contains the query.
func (h *Handler) SearchDocuments(c echo.Context) error {
	query := c.QueryParam("q")
	if strings.TrimSpace(query) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "query parameter q is required"})
	}

	results, err := h.service.SearchDocuments(c.Request().Context(), query)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "search failed"})
	}
	if results == nil {
		results = []domain.DocumentSearchResult{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"results": results})
}

// DeleteDocument removes a document from the registry and disk.
func (h *Handler) DeleteDocument(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.DeleteDocument(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "document not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete document"})
	}
	return c.NoContent(http.StatusNoContent)
}
