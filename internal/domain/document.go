package domain

import "time"

// Document is one uploaded file with its extracted text.
type Document struct {
	DocumentID    string    `json:"id"`
	Filename      string    `json:"filename"`
	FilePath      string    `json:"file_path,omitempty"`
	FileType      string    `json:"file_type"`
	Content       string    `json:"content,omitempty"`
	ContentLength int       `json:"content_length"`
	UploadedAt    time.Time `json:"upload_date"`
}

// DocumentSearchResult is a content search hit with a short preview.
type DocumentSearchResult struct {
	DocumentID string `json:"id"`
	Filename   string `json:"filename"`
	Preview    string `json:"content"`
}
