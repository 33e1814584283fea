package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/internal/store"
	"github.com/MKhiriev/traveltrek/models"
)

type destinationService struct {
	destinationRepository store.DestinationRepository
	logger                *logger.Logger
}

func NewDestinationService(destinationRepository store.DestinationRepository, logger *logger.Logger) DestinationService {
	return &destinationService{destinationRepository: destinationRepository, logger: logger}
}

func (s *destinationService) List(ctx context.Context) ([]models.Destination, error) {
	return s.destinationRepository.List(ctx)
}

func (s *destinationService) Get(ctx context.Context, id int64) (models.Destination, error) {
	return s.destinationRepository.GetByID(ctx, id)
}

// Create inserts a destination; the status defaults to available.
func (s *destinationService) Create(ctx context.Context, req models.DestinationCreate) (models.Destination, error) {
	if strings.TrimSpace(req.Name) == "" || req.DurationDays <= 0 {
		return models.Destination{}, ErrInvalidDataProvided
	}

	status := req.Status
	if status == "" {
		status = models.DestinationAvailable
	}
	bestMonths := req.BestMonths
	if bestMonths == nil {
		bestMonths = []string{}
	}

	destination, err := s.destinationRepository.Create(ctx, models.Destination{
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		DurationDays: req.DurationDays,
		BestMonths:   bestMonths,
		Difficulty:   req.Difficulty,
		Status:       status,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		return models.Destination{}, err
	}

	logger.FromContext(ctx).Info().
		Str("func", "*destinationService.Create").
		Int64("id", destination.ID).
		Msg("destination created")
	return destination, nil
}

func (s *destinationService) Update(ctx context.Context, id int64, update models.DestinationUpdate) (models.Destination, error) {
	if update.IsEmpty() {
		return models.Destination{}, ErrNoFieldsToUpdate
	}
	return s.destinationRepository.Update(ctx, id, update)
}

func (s *destinationService) Delete(ctx context.Context, id int64) error {
	return s.destinationRepository.Delete(ctx, id)
}
