package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/locqa"
	"github.com/fwojciec/locqa/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestDocument inserts a parent document for chunk rows.
func createTestDocument(t *testing.T, db *sqlite.DB) *locqa.Document {
	t.Helper()
	svc := sqlite.NewDocumentService(db)
	doc := &locqa.Document{FilePath: "docs/page.html", Content: "document content"}
	require.NoError(t, svc.CreateDocument(context.Background(), doc))
	return doc
}

func TestChunkService_CreateChunks(t *testing.T) {
	t.Parallel()

	t.Run("creates chunks with generated IDs and hashes", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		doc := createTestDocument(t, db)
		svc := sqlite.NewChunkService(db)
		ctx := context.Background()

		chunks := []*locqa.Chunk{
			{DocumentID: doc.ID, Title: "Setup", Text: "first chunk"},
			{DocumentID: doc.ID, Title: "Setup", Text: "second chunk"},
		}
		require.NoError(t, svc.CreateChunks(ctx, chunks))

		assert.NotEmpty(t, chunks[0].ID)
		assert.NotEmpty(t, chunks[1].ID)
		assert.NotEqual(t, chunks[0].ID, chunks[1].ID)
		assert.NotEmpty(t, chunks[0].Hash)
		assert.NotEqual(t, chunks[0].Hash, chunks[1].Hash)
	})

	t.Run("preserves a precomputed hash", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		doc := createTestDocument(t, db)
		svc := sqlite.NewChunkService(db)
		ctx := context.Background()

		chunk := &locqa.Chunk{DocumentID: doc.ID, Text: "content", Hash: "deadbeefdeadbeef"}
		require.NoError(t, svc.CreateChunks(ctx, []*locqa.Chunk{chunk}))

		found, err := svc.FindChunkByID(ctx, chunk.ID)
		require.NoError(t, err)
		assert.Equal(t, "deadbeefdeadbeef", found.Hash)
	})

	t.Run("rejects invalid chunks before writing any", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		doc := createTestDocument(t, db)
		svc := sqlite.NewChunkService(db)
		ctx := context.Background()

		err := svc.CreateChunks(ctx, []*locqa.Chunk{
			{DocumentID: doc.ID, Text: "valid"},
			{DocumentID: doc.ID}, // missing text
		})
		require.Error(t, err)
		assert.Equal(t, locqa.EINVALID, locqa.ErrorCode(err))

		n, err := svc.CountChunks(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestChunkService_FindChunkByID(t *testing.T) {
	t.Parallel()

	t.Run("round-trips the embedding", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		doc := createTestDocument(t, db)
		svc := sqlite.NewChunkService(db)
		ctx := context.Background()

		chunk := &locqa.Chunk{
			DocumentID: doc.ID,
			Title:      "Setup",
			Text:       "chunk text",
			Embedding:  []float32{0.1, -0.5, 2.25},
		}
		require.NoError(t, svc.CreateChunks(ctx, []*locqa.Chunk{chunk}))

		found, err := svc.FindChunkByID(ctx, chunk.ID)
		require.NoError(t, err)
		assert.Equal(t, chunk.Text, found.Text)
		assert.Equal(t, []float32{0.1, -0.5, 2.25}, found.Embedding)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewChunkService(db)

		_, err := svc.FindChunkByID(context.Background(), "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, locqa.ENOTFOUND, locqa.ErrorCode(err))
	})
}

func TestChunkService_HashExists(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	doc := createTestDocument(t, db)
	svc := sqlite.NewChunkService(db)
	ctx := context.Background()

	chunk := &locqa.Chunk{DocumentID: doc.ID, Text: "unique content"}
	require.NoError(t, svc.CreateChunks(ctx, []*locqa.Chunk{chunk}))

	exists, err := svc.HashExists(ctx, chunk.Hash)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.HashExists(ctx, "0000000000000000")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestChunkService_DeleteChunksByDocument(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	docSvc := sqlite.NewDocumentService(db)
	svc := sqlite.NewChunkService(db)
	ctx := context.Background()

	keep := &locqa.Document{FilePath: "keep.html", Content: "keep"}
	drop := &locqa.Document{FilePath: "drop.html", Content: "drop"}
	require.NoError(t, docSvc.CreateDocument(ctx, keep))
	require.NoError(t, docSvc.CreateDocument(ctx, drop))
	require.NoError(t, svc.CreateChunks(ctx, []*locqa.Chunk{
		{DocumentID: keep.ID, Text: "kept chunk"},
		{DocumentID: drop.ID, Text: "dropped chunk one"},
		{DocumentID: drop.ID, Text: "dropped chunk two"},
	}))

	require.NoError(t, svc.DeleteChunksByDocument(ctx, drop.ID))

	n, err := svc.CountChunks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
