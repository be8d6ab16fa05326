package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/planboard/internal/contract"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/repository"
)

type documentService struct {
	documents repository.DocumentRepo
}

func NewDocumentService(documents repository.DocumentRepo) DocumentService {
	return &documentService{documents: documents}
}

func (s *documentService) Library(ctx context.Context, filter domain.DocumentFilter) (*contract.DocumentLibrary, error) {
	docs, err := s.documents.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	technical, guides := domain.GroupDocuments(filter.Apply(values(docs)))
	return &contract.DocumentLibrary{Technical: technical, Guides: guides}, nil
}
