package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/locqa"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ locqa.DocumentService = (*DocumentService)(nil)

// DocumentService implements locqa.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateDocument creates a new document.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *locqa.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	doc.IngestedAt = time.Now().UTC()
	doc.ContentHash = hashContent(doc.Content)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, file_path, title, content, content_hash, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.FilePath, doc.Title, doc.Content, doc.ContentHash,
		doc.IngestedAt.Format(time.RFC3339))

	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*locqa.Document, error) {
	var doc locqa.Document
	var ingestedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, file_path, title, content, content_hash, ingested_at
		FROM documents WHERE id = ?
	`, id).Scan(&doc.ID, &doc.FilePath, &doc.Title, &doc.Content, &doc.ContentHash, &ingestedAt)
	if err == sql.ErrNoRows {
		return nil, locqa.Errorf(locqa.ENOTFOUND, "document %q not found", id)
	} else if err != nil {
		return nil, err
	}

	doc.IngestedAt, err = parseRFC3339(ingestedAt, "ingested_at")
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// CountDocuments returns the number of stored documents.
func (s *DocumentService) CountDocuments(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n)
	return n, err
}

// DeleteDocument permanently removes a document and its chunks.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return locqa.Errorf(locqa.ENOTFOUND, "document %q not found", id)
	}
	return nil
}
