package sqlite

import (
	"context"
	"database/sql"

	"github.com/fwojciec/locqa"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ locqa.ChunkService = (*ChunkService)(nil)

// ChunkService implements locqa.ChunkService using SQLite. Embeddings
// are stored as little-endian float32 blobs alongside the chunk text.
type ChunkService struct {
	db *DB
}

// NewChunkService creates a new ChunkService.
func NewChunkService(db *DB) *ChunkService {
	return &ChunkService{db: db}
}

// CreateChunks creates multiple chunks in a batch. IDs and content
// hashes are generated; existing ID values are overwritten.
func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*locqa.Chunk) error {
	for _, chunk := range chunks {
		if err := chunk.Validate(); err != nil {
			return err
		}
	}

	for _, chunk := range chunks {
		chunk.ID = uuid.New().String()
		if chunk.Hash == "" {
			chunk.Hash = hashContent(chunk.Text)
		}

		var embedding []byte
		if len(chunk.Embedding) > 0 {
			embedding = encodeVector(chunk.Embedding)
		}

		_, err := s.db.ExecContext(ctx, `
			INSERT INTO chunks (id, document_id, title, text, hash, embedding)
			VALUES (?, ?, ?, ?, ?, ?)
		`, chunk.ID, chunk.DocumentID, chunk.Title, chunk.Text, chunk.Hash, embedding)
		if err != nil {
			return err
		}
	}
	return nil
}

// FindChunkByID retrieves a chunk by ID.
func (s *ChunkService) FindChunkByID(ctx context.Context, id string) (*locqa.Chunk, error) {
	var chunk locqa.Chunk
	var embedding []byte

	err := s.db.QueryRowContext(ctx, `
		SELECT id, document_id, title, text, hash, embedding
		FROM chunks WHERE id = ?
	`, id).Scan(&chunk.ID, &chunk.DocumentID, &chunk.Title, &chunk.Text, &chunk.Hash, &embedding)
	if err == sql.ErrNoRows {
		return nil, locqa.Errorf(locqa.ENOTFOUND, "chunk %q not found", id)
	} else if err != nil {
		return nil, err
	}

	if len(embedding) > 0 {
		chunk.Embedding = decodeVector(embedding)
	}
	return &chunk, nil
}

// HashExists reports whether a chunk with the given content hash exists.
func (s *ChunkService) HashExists(ctx context.Context, hash string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks WHERE hash = ?`, hash).Scan(&n)
	return n > 0, err
}

// CountChunks returns the number of stored chunks.
func (s *ChunkService) CountChunks(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&n)
	return n, err
}

// DeleteChunksByDocument removes all chunks for a document.
func (s *ChunkService) DeleteChunksByDocument(ctx context.Context, documentID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM chunks WHERE document_id = ?`, documentID)
	return err
}
