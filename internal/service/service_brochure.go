package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/internal/store"
	"github.com/MKhiriev/traveltrek/models"
)

type brochureService struct {
	brochureRepository store.BrochureRepository
	logger             *logger.Logger
}

func NewBrochureService(brochureRepository store.BrochureRepository, logger *logger.Logger) BrochureService {
	return &brochureService{brochureRepository: brochureRepository, logger: logger}
}

func (s *brochureService) List(ctx context.Context) ([]models.Brochure, error) {
	return s.brochureRepository.List(ctx)
}

func (s *brochureService) Create(ctx context.Context, brochure models.Brochure) (models.Brochure, error) {
	brochure.Title = strings.TrimSpace(brochure.Title)
	brochure.URL = strings.TrimSpace(brochure.URL)
	if brochure.Title == "" || brochure.URL == "" {
		return models.Brochure{}, ErrInvalidDataProvided
	}
	return s.brochureRepository.Create(ctx, brochure)
}

func (s *brochureService) Delete(ctx context.Context, id int64) error {
	return s.brochureRepository.Delete(ctx, id)
}
