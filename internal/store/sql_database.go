// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/traveltrek/internal/logger"
)

// txKey is the context key under which an open transaction is stored.
type txKey struct{}

// querier is the subset of *sql.DB and *sql.Tx used by repositories.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn returns the transaction carried by ctx, or the pool when there is none.
// Every repository goes through conn so that calls made inside WithinTx join
// the surrounding transaction.
func (db *DB) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db.DB
}

// WithinTx runs fn inside a single transaction. The transaction is committed
// when fn returns nil and rolled back otherwise. Nested calls reuse the
// outer transaction.
func (db *DB) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*DB.WithinTx").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*DB.WithinTx").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// WithinRetryableTx runs fn through WithinTx and repeats the whole
// transaction, up to attempts times, when it fails with a retryable
// PostgreSQL error or with [ErrMembershipIDTaken].
func (db *DB) WithinRetryableTx(ctx context.Context, attempts int, fn func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = db.WithinTx(ctx, fn)
		if err == nil || !db.isRetryable(err) {
			return err
		}

		log.Warn().Err(err).
			Str("func", "*DB.WithinRetryableTx").
			Int("attempt", attempt).
			Msg("transaction failed with retryable error")

		if ctx.Err() != nil {
			return errors.Join(err, ctx.Err())
		}
	}

	return err
}

func (db *DB) isRetryable(err error) bool {
	if errors.Is(err, ErrMembershipIDTaken) {
		return true
	}
	classifier := db.errorClassificator
	if classifier == nil {
		classifier = NewPostgresErrorClassifier()
	}
	return classifier.Classify(err) == Retryable
}
