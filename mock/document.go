package mock

import (
	"context"

	"github.com/fwojciec/locqa"
)

var _ locqa.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of locqa.DocumentService.
type DocumentService struct {
	CreateDocumentFn   func(ctx context.Context, doc *locqa.Document) error
	FindDocumentByIDFn func(ctx context.Context, id string) (*locqa.Document, error)
	CountDocumentsFn   func(ctx context.Context) (int, error)
	DeleteDocumentFn   func(ctx context.Context, id string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *locqa.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*locqa.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) CountDocuments(ctx context.Context) (int, error) {
	return s.CountDocumentsFn(ctx)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}
