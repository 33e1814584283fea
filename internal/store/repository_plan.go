package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/models"
	"github.com/jackc/pgerrcode"
)

// planRepository is the PostgreSQL-backed implementation of [PlanRepository].
// Listings attach each plan's default destinations from plan_destinations.
type planRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewPlanRepository constructs a [PlanRepository] backed by db.
func NewPlanRepository(db *DB, logger *logger.Logger) PlanRepository {
	logger.Debug().Msg("creating plan repository")
	return &planRepository{db: db, logger: logger}
}

// ListActive returns active plans ordered by plan type.
func (r *planRepository) ListActive(ctx context.Context) ([]models.PlanConfig, error) {
	return r.list(ctx, "*planRepository.ListActive", listActivePlans)
}

// ListAll returns every plan, including retired ones, ordered by plan type.
func (r *planRepository) ListAll(ctx context.Context) ([]models.PlanConfig, error) {
	return r.list(ctx, "*planRepository.ListAll", listAllPlans)
}

func (r *planRepository) list(ctx context.Context, funcName, query string) ([]models.PlanConfig, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.conn(ctx).QueryContext(ctx, query)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to list plans")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	plans := make([]models.PlanConfig, 0, 3)
	for rows.Next() {
		plan, scanErr := scanPlan(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Msg("failed to scan plan row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		plans = append(plans, plan)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if len(plans) == 0 {
		return plans, nil
	}

	links, err := r.destinationsByPlan(ctx)
	if err != nil {
		return nil, err
	}
	for i := range plans {
		plans[i].Destinations = links[plans[i].ID]
		if plans[i].Destinations == nil {
			plans[i].Destinations = []models.Destination{}
		}
	}

	return plans, nil
}

func (r *planRepository) destinationsByPlan(ctx context.Context) (map[int64][]models.Destination, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.conn(ctx).QueryContext(ctx, listPlanDestinations)
	if err != nil {
		log.Err(err).Str("func", "*planRepository.destinationsByPlan").Msg("failed to list plan destinations")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	links := make(map[int64][]models.Destination)
	for rows.Next() {
		var planID int64
		d, scanErr := scanDestination(rows, &planID)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*planRepository.destinationsByPlan").Msg("failed to scan plan destination row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		links[planID] = append(links[planID], d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return links, nil
}

// GetByID returns the plan with the given id, without destinations.
func (r *planRepository) GetByID(ctx context.Context, id int64) (models.PlanConfig, error) {
	return r.getOne(ctx, "*planRepository.GetByID", getPlanByID, id)
}

// GetActiveByType returns the active plan of planType or [ErrPlanNotFound].
func (r *planRepository) GetActiveByType(ctx context.Context, planType models.PlanType) (models.PlanConfig, error) {
	return r.getOne(ctx, "*planRepository.GetActiveByType", getActivePlanByType, string(planType))
}

func (r *planRepository) getOne(ctx context.Context, funcName, query string, arg any) (models.PlanConfig, error) {
	log := logger.FromContext(ctx)

	plan, err := scanPlan(r.db.conn(ctx).QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PlanConfig{}, ErrPlanNotFound
		}
		log.Err(err).Str("func", funcName).Any("key", arg).Msg("failed to get plan")
		return models.PlanConfig{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return plan, nil
}

// SeedDefaults inserts plans that do not exist yet. Existing plan types are
// left untouched, so concurrent first reads converge on one catalog.
func (r *planRepository) SeedDefaults(ctx context.Context, plans []models.PlanConfig) error {
	log := logger.FromContext(ctx)

	for _, plan := range plans {
		_, err := r.db.conn(ctx).ExecContext(ctx, seedPlan,
			string(plan.PlanType), plan.Name, plan.Description, plan.Days, plan.Price, plan.IsActive)
		if err != nil {
			log.Err(err).
				Str("func", "*planRepository.SeedDefaults").
				Str("plan_type", string(plan.PlanType)).
				Msg("failed to seed plan")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	log.Info().Str("func", "*planRepository.SeedDefaults").Int("plans", len(plans)).Msg("default plans seeded")
	return nil
}

// Update applies the non-nil column fields of update.
func (r *planRepository) Update(ctx context.Context, id int64, update models.PlanConfigUpdate) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdatePlanQuery(ctx, id, update)
	if err != nil {
		log.Err(err).Str("func", "*planRepository.Update").Int64("id", id).Msg("failed to build query")
		return err
	}

	result, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*planRepository.Update").Int64("id", id).Msg("failed to update plan")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrPlanNotFound
	}

	return nil
}

// ReplaceDestinations replaces the default destination set of the plan.
// Callers should run it inside [DB.WithinTx].
func (r *planRepository) ReplaceDestinations(ctx context.Context, id int64, destinationIDs []int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.conn(ctx).ExecContext(ctx, deletePlanDestinations, id); err != nil {
		log.Err(err).Str("func", "*planRepository.ReplaceDestinations").Int64("id", id).Msg("failed to clear plan destinations")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if len(destinationIDs) == 0 {
		return nil
	}

	query, args, err := buildInsertLinksQuery(ctx, "plan_destinations", "plan_id", id, destinationIDs)
	if err != nil {
		return err
	}

	if _, err = r.db.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*planRepository.ReplaceDestinations").Int64("id", id).Msg("failed to link plan destinations")
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return ErrDestinationNotFound
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func scanPlan(row rowScanner) (models.PlanConfig, error) {
	var (
		plan     models.PlanConfig
		planType string
	)
	if err := row.Scan(&plan.ID, &planType, &plan.Name, &plan.Description, &plan.Days, &plan.Price, &plan.IsActive); err != nil {
		return models.PlanConfig{}, err
	}
	plan.PlanType = models.PlanType(planType)
	return plan, nil
}
