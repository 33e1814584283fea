// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/traveltrek/internal/config"
	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Storages groups every server-side repository into a single value that is
// passed to the service layer.
type Storages struct {
	Transactor    Transactor
	HealthChecker HealthChecker

	UserRepository        UserRepository
	MembershipRepository  MembershipRepository
	CounterRepository     CounterRepository
	PlanRepository        PlanRepository
	DestinationRepository DestinationRepository
	PaymentRepository     PaymentRepository
	RejectionRepository   RejectionRepository
	ChatRepository        ChatRepository
	BrochureRepository    BrochureRepository
	StatsRepository       StatsRepository

	// Redis is the shared cache client; nil when no address is configured.
	Redis *redis.Client

	db *DB
}

// NewStorages initialises the storage layer. It performs the following steps:
//  1. Opens a PostgreSQL pool for cfg.DB.DSN and pings it.
//  2. Runs pending goose migrations via [DB.Migrate].
//  3. Connects to Redis when cfg.Redis has an address.
//  4. Wires every repository to the pool.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	storages := newStorages(db, logger)

	if cfg.Redis.Enabled() {
		client, redisErr := NewConnectRedis(ctx, cfg.Redis, logger)
		if redisErr != nil {
			_ = db.Close()
			return nil, redisErr
		}
		storages.Redis = client
	}

	return storages, nil
}

func newStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		Transactor:            db,
		HealthChecker:         db,
		UserRepository:        NewUserRepository(db, logger),
		MembershipRepository:  NewMembershipRepository(db, logger),
		CounterRepository:     NewCounterRepository(db, logger),
		PlanRepository:        NewPlanRepository(db, logger),
		DestinationRepository: NewDestinationRepository(db, logger),
		PaymentRepository:     NewPaymentRepository(db, logger),
		RejectionRepository:   NewRejectionRepository(db, logger),
		ChatRepository:        NewChatRepository(db, logger),
		BrochureRepository:    NewBrochureRepository(db, logger),
		StatsRepository:       NewStatsRepository(db, logger),
		db:                    db,
	}
}

// Close releases the database pool and the Redis client.
func (s *Storages) Close() error {
	var errs []error
	if s.Redis != nil {
		errs = append(errs, s.Redis.Close())
	}
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	return errors.Join(errs...)
}
