// Package store persists the interaction log and the document registry.
package store

import (
	"context"

	"github.com/docuchat/relay/internal/domain"
)

// Store defines the persistence operations the relay uses. The interaction
// and flagged logs are append-only; nothing in the relay mutates or deletes
// entries once written.
type Store interface {
	// LogInteraction appends one chat audit record.
	LogInteraction(ctx context.Context, entry *domain.Interaction) error
	// GetInteractions retrieves the most recent interactions, newest first.
	GetInteractions(ctx context.Context, limit int) ([]domain.Interaction, error)

	// LogFlagged appends one blocked-attempt record.
	LogFlagged(ctx context.Context, entry *domain.FlaggedMessage) error
	// GetFlagged retrieves the most recent blocked attempts, newest first.
	GetFlagged(ctx context.Context, limit int) ([]domain.FlaggedMessage, error)

	// SaveDocument stores an uploaded document with its extracted text.
	SaveDocument(ctx context.Context, doc *domain.Document) error
	// GetDocument retrieves a document by ID, or nil when unknown.
	GetDocument(ctx context.Context, documentID string) (*domain.Document, error)
	// GetDocumentsByIDs retrieves the known documents among ids, preserving
	// the requested order; unknown ids are skipped.
	GetDocumentsByIDs(ctx context.Context, ids []string) ([]domain.Document, error)
	// ListDocuments retrieves metadata for every document, without content.
	ListDocuments(ctx context.Context) ([]domain.Document, error)
	// SearchDocuments finds documents whose content contains the query.
	SearchDocuments(ctx context.Context, query string) ([]domain.DocumentSearchResult, error)
	// DeleteDocument removes a document; sql.ErrNoRows when unknown.
	DeleteDocument(ctx context.Context, documentID string) error

	Close() error
}
