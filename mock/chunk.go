package mock

import (
	"context"

	"github.com/fwojciec/locqa"
)

var _ locqa.ChunkService = (*ChunkService)(nil)

// ChunkService is a mock implementation of locqa.ChunkService.
type ChunkService struct {
	CreateChunksFn           func(ctx context.Context, chunks []*locqa.Chunk) error
	FindChunkByIDFn          func(ctx context.Context, id string) (*locqa.Chunk, error)
	HashExistsFn             func(ctx context.Context, hash string) (bool, error)
	CountChunksFn            func(ctx context.Context) (int, error)
	DeleteChunksByDocumentFn func(ctx context.Context, documentID string) error
}

func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*locqa.Chunk) error {
	return s.CreateChunksFn(ctx, chunks)
}

func (s *ChunkService) FindChunkByID(ctx context.Context, id string) (*locqa.Chunk, error) {
	return s.FindChunkByIDFn(ctx, id)
}

func (s *ChunkService) HashExists(ctx context.Context, hash string) (bool, error) {
	return s.HashExistsFn(ctx, hash)
}

func (s *ChunkService) CountChunks(ctx context.Context) (int, error) {
	return s.CountChunksFn(ctx)
}

func (s *ChunkService) DeleteChunksByDocument(ctx context.Context, documentID string) error {
	return s.DeleteChunksByDocumentFn(ctx, documentID)
}
