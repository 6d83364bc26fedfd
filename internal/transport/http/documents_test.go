package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/docuchat/relay/internal/domain"
)

func uploadFile(t *testing.T, h *Handler, filename, content string) *httptest.ResponseRecorder {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.UploadDocument(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestUploadListSearchDelete(t *testing.T) {
	f := newTestHandler(t)
	e := echo.New()

	rec := uploadFile(t, f.handler, "notes.txt", "minutes from the planning meeting")
	assert.Equal(t, http.StatusCreated, rec.Code)

	var uploaded domain.Document
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &uploaded))
	assert.True(t, len(uploaded.DocumentID) > 4)
	assert.Equal(t, "notes.txt", uploaded.Filename)
	assert.Equal(t, "txt", uploaded.FileType)
	assert.Equal(t, len("minutes from the planning meeting"), uploaded.ContentLength)
	// Extracted text and storage path stay server-side.
	assert.Empty(t, uploaded.Content)
	assert.Empty(t, uploaded.FilePath)

	t.Run("List", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/documents", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		assert.NoError(t, f.handler.ListDocuments(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Documents []domain.Document `json:"documents"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		if assert.Len(t, resp.Documents, 1) {
			assert.Equal(t, uploaded.DocumentID, resp.Documents[0].DocumentID)
		}
	})

	t.Run("Search", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/documents/search?q=planning", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		assert.NoError(t, f.handler.SearchDocuments(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Results []domain.DocumentSearchResult `json:"results"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		if assert.Len(t, resp.Results, 1) {
			assert.Equal(t, "notes.txt", resp.Results[0].Filename)
			assert.Contains(t, resp.Results[0].Preview, "planning meeting")
		}
	})

	t.Run("SearchMissingQuery", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/documents/search", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		assert.NoError(t, f.handler.SearchDocuments(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/documents/"+uploaded.DocumentID, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(uploaded.DocumentID)

		assert.NoError(t, f.handler.DeleteDocument(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("DeleteUnknown", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/documents/doc_missing", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("doc_missing")

		assert.NoError(t, f.handler.DeleteDocument(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUploadUnsupportedType(t *testing.T) {
	f := newTestHandler(t)

	rec := uploadFile(t, f.handler, "image.png", "not really an image")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "unsupported file type")
}

func TestUploadMissingFile(t *testing.T) {
	f := newTestHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, f.handler.UploadDocument(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
