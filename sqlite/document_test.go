package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/locqa"
	"github.com/fwojciec/locqa/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentService_CreateDocument(t *testing.T) {
	t.Parallel()

	t.Run("creates document with generated ID, hash, and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		doc := &locqa.Document{
			FilePath: "docs/setup.html",
			Title:    "Setup Guide",
			Content:  "# Setup\n\nInstall the tool.",
		}

		err := svc.CreateDocument(ctx, doc)
		require.NoError(t, err)

		assert.NotEmpty(t, doc.ID, "ID should be generated")
		assert.Len(t, doc.ContentHash, 16, "ContentHash should be a 16-char hex digest")
		assert.False(t, doc.IngestedAt.IsZero(), "IngestedAt should be set")
	})

	t.Run("identical content yields identical hashes", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		a := &locqa.Document{FilePath: "a.html", Content: "same content"}
		b := &locqa.Document{FilePath: "b.html", Content: "same content"}
		require.NoError(t, svc.CreateDocument(ctx, a))
		require.NoError(t, svc.CreateDocument(ctx, b))

		assert.Equal(t, a.ContentHash, b.ContentHash)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("returns error for invalid document", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		doc := &locqa.Document{} // missing required fields

		err := svc.CreateDocument(ctx, doc)
		require.Error(t, err)
		assert.Equal(t, locqa.EINVALID, locqa.ErrorCode(err))
	})
}

func TestDocumentService_FindDocumentByID(t *testing.T) {
	t.Parallel()

	t.Run("returns document when found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		doc := &locqa.Document{
			FilePath: "docs/page1.html",
			Title:    "Page 1",
			Content:  "# Page 1\n\nContent here.",
		}
		require.NoError(t, svc.CreateDocument(ctx, doc))

		found, err := svc.FindDocumentByID(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, doc.ID, found.ID)
		assert.Equal(t, doc.FilePath, found.FilePath)
		assert.Equal(t, doc.Title, found.Title)
		assert.Equal(t, doc.Content, found.Content)
		assert.Equal(t, doc.ContentHash, found.ContentHash)
		assert.True(t, doc.IngestedAt.Equal(found.IngestedAt))
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)

		_, err := svc.FindDocumentByID(context.Background(), "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, locqa.ENOTFOUND, locqa.ErrorCode(err))
	})
}

func TestDocumentService_CountDocuments(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewDocumentService(db)
	ctx := context.Background()

	n, err := svc.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.CreateDocument(ctx, &locqa.Document{
			FilePath: "docs/page.html",
			Content:  "content",
		}))
	}

	n, err = svc.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestDocumentService_DeleteDocument(t *testing.T) {
	t.Parallel()

	t.Run("deletes existing document", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		doc := &locqa.Document{FilePath: "docs/page1.html", Content: "content"}
		require.NoError(t, svc.CreateDocument(ctx, doc))

		require.NoError(t, svc.DeleteDocument(ctx, doc.ID))

		_, err := svc.FindDocumentByID(ctx, doc.ID)
		assert.Equal(t, locqa.ENOTFOUND, locqa.ErrorCode(err))
	})

	t.Run("cascades to the document's chunks", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		docSvc := sqlite.NewDocumentService(db)
		chunkSvc := sqlite.NewChunkService(db)
		ctx := context.Background()

		doc := &locqa.Document{FilePath: "docs/page1.html", Content: "content"}
		require.NoError(t, docSvc.CreateDocument(ctx, doc))
		require.NoError(t, chunkSvc.CreateChunks(ctx, []*locqa.Chunk{
			{DocumentID: doc.ID, Text: "chunk one"},
			{DocumentID: doc.ID, Text: "chunk two"},
		}))

		require.NoError(t, docSvc.DeleteDocument(ctx, doc.ID))

		n, err := chunkSvc.CountChunks(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)

		err := svc.DeleteDocument(context.Background(), "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, locqa.ENOTFOUND, locqa.ErrorCode(err))
	})
}
