package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/docuchat/relay/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS interactions (
			interaction_id TEXT PRIMARY KEY,
			prompt TEXT NOT NULL,
			response TEXT NOT NULL,
			keywords TEXT,
			categories TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_created ON interactions(created_at)`,
		`CREATE TABLE IF NOT EXISTS flagged_messages (
			flagged_id TEXT PRIMARY KEY,
			prompt TEXT NOT NULL,
			categories TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			document_id TEXT PRIMARY KEY,
			filename TEXT NOT NULL,
			file_path TEXT NOT NULL,
			file_type TEXT NOT NULL,
			content TEXT NOT NULL,
			content_length INTEGER NOT NULL,
			uploaded_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LogInteraction appends one chat audit record.
func (s *SQLiteStore) LogInteraction(ctx context.Context, entry *domain.Interaction) error {
	keywords, _ := json.Marshal(entry.Keywords)
	categories, _ := json.Marshal(entry.Categories)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO interactions (interaction_id, prompt, response, keywords, categories, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.InteractionID, entry.Prompt, entry.Response, string(keywords), string(categories), entry.CreatedAt)
	return err
}

// GetInteractions retrieves the most recent interactions, newest first.
func (s *SQLiteStore) GetInteractions(ctx context.Context, limit int) ([]domain.Interaction, error) {
	query := `SELECT interaction_id, prompt, response, keywords, categories, created_at FROM interactions ORDER BY created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.Interaction
	for rows.Next() {
		var entry domain.Interaction
		var keywords, categories sql.NullString
		if err := rows.Scan(&entry.InteractionID, &entry.Prompt, &entry.Response, &keywords, &categories, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if keywords.Valid {
			_ = json.Unmarshal([]byte(keywords.String), &entry.Keywords)
		}
		if categories.Valid {
			_ = json.Unmarshal([]byte(categories.String), &entry.Categories)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// LogFlagged appends one blocked-attempt record.
func (s *SQLiteStore) LogFlagged(ctx context.Context, entry *domain.FlaggedMessage) error {
	categories, _ := json.Marshal(entry.Categories)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO flagged_messages (flagged_id, prompt, categories, created_at) VALUES (?, ?, ?, ?)`,
		entry.FlaggedID, entry.Prompt, string(categories), entry.CreatedAt)
	return err
}

// GetFlagged retrieves the most recent blocked attempts, newest first.
func (s *SQLiteStore) GetFlagged(ctx context.Context, limit int) ([]domain.FlaggedMessage, error) {
	query := `SELECT flagged_id, prompt, categories, created_at FROM flagged_messages ORDER BY created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.FlaggedMessage
	for rows.Next() {
		var entry domain.FlaggedMessage
		var categories sql.NullString
		if err := rows.Scan(&entry.FlaggedID, &entry.Prompt, &categories, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if categories.Valid {
			_ = json.Unmarshal([]byte(categories.String), &entry.Categories)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// SaveDocument stores an uploaded document with its extracted text.
func (s *SQLiteStore) SaveDocument(ctx context.Context, doc *domain.Document) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (document_id, filename, file_path, file_type, content, content_length, uploaded_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		doc.DocumentID, doc.Filename, doc.FilePath, doc.FileType, doc.Content, doc.ContentLength, doc.UploadedAt)
	return err
}

// GetDocument retrieves a document by ID.
func (s *SQLiteStore) GetDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	var doc domain.Document
	err := s.db.QueryRowContext(ctx,
		`SELECT document_id, filename, file_path, file_type, content, content_length, uploaded_at FROM documents WHERE document_id = ?`,
		documentID).Scan(&doc.DocumentID, &doc.Filename, &doc.FilePath, &doc.FileType, &doc.Content, &doc.ContentLength, &doc.UploadedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetDocumentsByIDs retrieves the known documents among ids in request order.
func (s *SQLiteStore) GetDocumentsByIDs(ctx context.Context, ids []string) ([]domain.Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(
		`SELECT document_id, filename, file_path, file_type, content, content_length, uploaded_at FROM documents WHERE document_id IN (%s)`,
		strings.Join(placeholders, ","))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]domain.Document, len(ids))
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(&doc.DocumentID, &doc.Filename, &doc.FilePath, &doc.FileType, &doc.Content, &doc.ContentLength, &doc.UploadedAt); err != nil {
			return nil, err
		}
		byID[doc.DocumentID] = doc
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(byID))
	for _, id := range ids {
		if doc, ok := byID[id]; ok {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// ListDocuments retrieves metadata for every document, content omitted.
func (s *SQLiteStore) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT document_id, filename, file_type, content_length, uploaded_at FROM documents ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(&doc.DocumentID, &doc.Filename, &doc.FileType, &doc.ContentLength, &doc.UploadedAt); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// SearchDocuments finds documents whose content contains the query,
// case-insensitively, with a 200-character preview per hit.
func (s *SQLiteStore) SearchDocuments(ctx context.Context, query string) ([]domain.DocumentSearchResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT document_id, filename, content FROM documents WHERE content LIKE '%' || ? || '%' ORDER BY uploaded_at DESC`,
		query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.DocumentSearchResult
	for rows.Next() {
		var r domain.DocumentSearchResult
		var content string
		if err := rows.Scan(&r.DocumentID, &r.Filename, &content); err != nil {
			return nil, err
		}
		r.Preview = preview(content, 200)
		results = append(results, r)
	}
	return results, rows.Err()
}

// DeleteDocument removes a document row.
func (s *SQLiteStore) DeleteDocument(ctx context.Context, documentID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE document_id = ?`, documentID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func preview(content string, maxLen int) string {
	if len(content) <= maxLen {
		return content
	}
	return content[:maxLen] + "..."
}

// Ensure SQLiteStore implements the Store interface.
var _ Store = (*SQLiteStore)(nil)
