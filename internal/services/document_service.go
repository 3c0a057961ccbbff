package services

import (
	"context"

	"github.com/sjperalta/obrafin-api/internal/documents"
)

type DocumentService struct {
	loader *sourceLoader
}

func NewDocumentService(loader *sourceLoader) *DocumentService {
	return &DocumentService{loader: loader}
}

// Feed returns every document linked to a project, newest first. Sources
// that fail to load contribute nothing.
func (s *DocumentService) Feed(ctx context.Context, projectID uint) ([]documents.Document, error) {
	src, err := s.loader.load(ctx, projectID, true)
	if err != nil {
		return nil, err
	}
	return documents.Aggregate(src.Sources), nil
}
