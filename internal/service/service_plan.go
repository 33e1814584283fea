package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/internal/store"
	"github.com/MKhiriev/traveltrek/models"
)

// planService serves the plan catalog. An empty catalog is seeded with
// [models.DefaultPlans] on first read.
type planService struct {
	transactor     store.Transactor
	planRepository store.PlanRepository

	logger *logger.Logger
}

func NewPlanService(transactor store.Transactor, planRepository store.PlanRepository, logger *logger.Logger) PlanService {
	return &planService{
		transactor:     transactor,
		planRepository: planRepository,
		logger:         logger,
	}
}

// ListActive returns the active plans ordered by plan type.
func (s *planService) ListActive(ctx context.Context) ([]models.PlanConfig, error) {
	return s.listSeeded(ctx, s.planRepository.ListActive)
}

// ListAll returns active and retired plans with their default destinations.
func (s *planService) ListAll(ctx context.Context) ([]models.PlanConfig, error) {
	return s.listSeeded(ctx, s.planRepository.ListAll)
}

func (s *planService) listSeeded(ctx context.Context, list func(context.Context) ([]models.PlanConfig, error)) ([]models.PlanConfig, error) {
	log := logger.FromContext(ctx)

	plans, err := list(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing plans: %w", err)
	}
	if len(plans) > 0 {
		return plans, nil
	}

	// SeedDefaults skips existing plan types, so a concurrent seed is harmless.
	if err = s.planRepository.SeedDefaults(ctx, models.DefaultPlans()); err != nil {
		log.Err(err).Str("func", "*planService.listSeeded").Msg("failed to seed default plans")
		return nil, fmt.Errorf("error seeding default plans: %w", err)
	}
	log.Info().Str("func", "*planService.listSeeded").Msg("plan catalog was empty, default plans seeded")

	plans, err = list(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing plans: %w", err)
	}
	return plans, nil
}

// activePlan returns the active plan of planType, seeding the catalog first
// if it is empty. Unknown or retired plan types yield ErrInvalidPlan.
func (s *planService) activePlan(ctx context.Context, planType models.PlanType) (models.PlanConfig, error) {
	if !planType.Valid() {
		return models.PlanConfig{}, ErrInvalidPlan
	}

	plan, err := s.planRepository.GetActiveByType(ctx, planType)
	if errors.Is(err, store.ErrPlanNotFound) {
		if _, err = s.ListActive(ctx); err != nil {
			return models.PlanConfig{}, err
		}
		plan, err = s.planRepository.GetActiveByType(ctx, planType)
	}
	if errors.Is(err, store.ErrPlanNotFound) {
		return models.PlanConfig{}, ErrInvalidPlan
	}
	if err != nil {
		return models.PlanConfig{}, fmt.Errorf("error getting plan: %w", err)
	}

	return plan, nil
}

// Update applies a partial update. A present destination list replaces the
// plan's default destinations.
func (s *planService) Update(ctx context.Context, id int64, update models.PlanConfigUpdate) (models.PlanConfig, error) {
	if !update.HasColumns() && update.DestinationIDs == nil {
		return models.PlanConfig{}, ErrNoFieldsToUpdate
	}

	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if update.HasColumns() {
			if err := s.planRepository.Update(ctx, id, update); err != nil {
				return err
			}
		} else if _, err := s.planRepository.GetByID(ctx, id); err != nil {
			return err
		}

		if update.DestinationIDs != nil {
			return s.planRepository.ReplaceDestinations(ctx, id, *update.DestinationIDs)
		}
		return nil
	})
	if err != nil {
		return models.PlanConfig{}, fmt.Errorf("error updating plan: %w", err)
	}

	return s.planRepository.GetByID(ctx, id)
}
