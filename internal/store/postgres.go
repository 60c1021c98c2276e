package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"patronage/internal/infra"
	"patronage/internal/sqlinline"
)

// PostgresStore keeps the ledger keyspace in a single ledger_kv table. Each
// Update runs inside one pgx transaction, so an invocation that fails partway
// leaves no writes behind.
type PostgresStore struct {
	runner *infra.SQLRunner
}

func NewPostgresStore(runner *infra.SQLRunner) *PostgresStore {
	return &PostgresStore{runner: runner}
}

// Setup creates the backing table if it does not exist yet.
func (s *PostgresStore) Setup(ctx context.Context) error {
	if _, err := s.runner.Exec(ctx, sqlinline.QCreateKVTable); err != nil {
		return fmt.Errorf("create ledger_kv: %w", err)
	}
	return nil
}

func (s *PostgresStore) View(ctx context.Context, fn func(KV) error) error {
	return s.run(ctx, fn, false)
}

func (s *PostgresStore) Update(ctx context.Context, fn func(KV) error) error {
	return s.run(ctx, fn, true)
}

// Close is a no-op; the pgx pool is owned by the caller.
func (s *PostgresStore) Close() error { return nil }

func (s *PostgresStore) run(ctx context.Context, fn func(KV) error, commit bool) error {
	tx, err := s.runner.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&postgresKV{ctx: ctx, tx: tx}); err != nil {
		return err
	}
	if !commit {
		return nil
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type postgresKV struct {
	ctx context.Context
	tx  *infra.SQLTx
}

func (kv *postgresKV) Get(key []byte) ([]byte, error) {
	var value []byte
	err := kv.tx.QueryRow(kv.ctx, sqlinline.QGetKV, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (kv *postgresKV) Set(key, value []byte) error {
	_, err := kv.tx.Exec(kv.ctx, sqlinline.QSetKV, key, value)
	return err
}
