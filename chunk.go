package locqa

import "context"

// Chunk represents a fixed-size slice of document text with a stable
// identifier, used as the unit of vector retrieval. Chunks are immutable
// once produced by ingestion; the query loop only reads them.
type Chunk struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"documentId"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	Hash       string    `json:"hash"`
	Embedding  []float32 `json:"embedding,omitempty"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.DocumentID == "" {
		return Errorf(EINVALID, "chunk document ID required")
	}
	if c.Text == "" {
		return Errorf(EINVALID, "chunk text required")
	}
	return nil
}

// ChunkService represents a service for managing chunks.
type ChunkService interface {
	// CreateChunks creates multiple chunks in a batch.
	CreateChunks(ctx context.Context, chunks []*Chunk) error

	// FindChunkByID retrieves a chunk by ID.
	// Returns ENOTFOUND if the chunk does not exist.
	FindChunkByID(ctx context.Context, id string) (*Chunk, error)

	// HashExists reports whether a chunk with the given content hash
	// is already stored. Used by ingestion for deduplication.
	HashExists(ctx context.Context, hash string) (bool, error)

	// CountChunks returns the number of stored chunks.
	CountChunks(ctx context.Context) (int, error)

	// DeleteChunksByDocument removes all chunks for a document.
	DeleteChunksByDocument(ctx context.Context, documentID string) error
}

// Retriever finds the chunks most similar to a query.
//
// Retrieve returns up to k chunks ordered by descending similarity.
// An empty query, an empty store, or an unavailable index yields an
// empty slice, not an error: retrieval failure must never abort the
// query loop.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]Chunk, error)
}

// Embedder converts text into fixed-dimension vectors. Queries and
// documents are embedded asymmetrically when the underlying model
// distinguishes them.
type Embedder interface {
	// EmbedQuery embeds a search query.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// EmbedDocument embeds a passage of document text.
	EmbedDocument(ctx context.Context, text string) ([]float32, error)
}
