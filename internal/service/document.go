package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docuchat/relay/internal/domain"
	"github.com/docuchat/relay/internal/extract"
)

// UploadDocument stores the uploaded file on disk, extracts its text, and
// registers it. The stored filename is prefixed with a fresh id so repeated
// uploads of the same name never collide.
func (s *Service) UploadDocument(ctx context.Context, filename string, data []byte) (*domain.Document, error) {
	if err := os.MkdirAll(s.config.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	id := uuid.New().String()[:8]
	storedName := id + "_" + filepath.Base(filename)
	path := filepath.Join(s.config.UploadDir, storedName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	content, err := extract.FromFile(path, filename)
	if err != nil {
		os.Remove(path)
		return nil, err
	}

	doc := &domain.Document{
		DocumentID:    "doc_" + id,
		Filename:      filepath.Base(filename),
		FilePath:      path,
		FileType:      strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."),
		Content:       content,
		ContentLength: len(content),
		UploadedAt:    time.Now().UTC(),
	}
	if err := s.store.SaveDocument(ctx, doc); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to register document: %w", err)
	}
	return doc, nil
}

// ListDocuments returns registry metadata for every uploaded document.
func (s *Service) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	return s.store.ListDocuments(ctx)
}

// SearchDocuments finds documents whose extracted text contains the query.
func (s *Service) SearchDocuments(ctx context.Context, query string) ([]domain.DocumentSearchResult, error) {
	return s.store.SearchDocuments(ctx, query)
}

// DeleteDocument removes a document from the registry and best-effort
// removes its stored file.
func (s *Service) DeleteDocument(ctx context.Context, documentID string) error {
	doc, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteDocument(ctx, documentID); err != nil {
		return err
	}

	if doc != nil && doc.FilePath != "" {
		if err := os.Remove(doc.FilePath); err != nil && !os.IsNotExist(err) {
			log.Printf("WARN: failed to remove stored file %s: %v", doc.FilePath, err)
		}
	}
	return nil
}
