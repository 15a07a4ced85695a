package sqlite

import (
	"context"
	"math"
	"sort"

	"github.com/fwojciec/locqa"
)

// Compile-time interface verification.
var _ locqa.Retriever = (*Searcher)(nil)

// Searcher implements locqa.Retriever by embedding the query and
// ranking stored chunk embeddings by cosine similarity. Local corpora
// are small enough that a brute-force scan beats maintaining an
// approximate index.
type Searcher struct {
	db       *DB
	embedder locqa.Embedder
}

// NewSearcher creates a new Searcher.
func NewSearcher(db *DB, embedder locqa.Embedder) *Searcher {
	return &Searcher{db: db, embedder: embedder}
}

type scored struct {
	chunk locqa.Chunk
	score float64
}

// Retrieve returns up to k chunks ordered by descending cosine
// similarity to the query. An empty query or an empty store yields an
// empty slice; embedder failures propagate so the strategy layer can
// degrade them to "no context".
func (s *Searcher) Retrieve(ctx context.Context, query string, k int) ([]locqa.Chunk, error) {
	if query == "" || k <= 0 {
		return nil, nil
	}

	queryVec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(queryVec) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, title, text, hash, embedding
		FROM chunks WHERE embedding IS NOT NULL
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []scored
	for rows.Next() {
		var chunk locqa.Chunk
		var embedding []byte
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Title, &chunk.Text, &chunk.Hash, &embedding); err != nil {
			return nil, err
		}
		vec := decodeVector(embedding)
		// Dimension mismatches guard against a store written with a
		// different embedding model; such rows are silently discarded.
		if len(vec) != len(queryVec) {
			continue
		}
		candidates = append(candidates, scored{chunk: chunk, score: cosine(queryVec, vec)})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Stable sort preserves insertion order among ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	chunks := make([]locqa.Chunk, 0, len(candidates))
	for _, c := range candidates {
		chunks = append(chunks, c.chunk)
	}
	return chunks, nil
}

// cosine returns the cosine similarity of two equal-length vectors.
func cosine(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
