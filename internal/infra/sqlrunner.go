package infra

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"patronage/internal/sqlinline"
)

// SQLExecutor is the contract storage code needs for running marker-tagged
// queries.
type SQLExecutor interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

// SQLRunner executes marker-tagged SQL against a pgx pool and logs every
// statement by its marker rather than its text.
type SQLRunner struct {
	Pool   *pgxpool.Pool
	Logger zerolog.Logger
}

func NewSQLRunner(pool *pgxpool.Pool, logger zerolog.Logger) *SQLRunner {
	return &SQLRunner{Pool: pool, Logger: logger}
}

func (r *SQLRunner) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	marker, statement, err := sqlinline.Marker(query)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	tag, err := r.Pool.Exec(ctx, statement, args...)
	if err != nil {
		r.Logger.Error().Err(err).Msgf("sql[%s] exec error", marker)
		return tag, err
	}
	r.Logger.Debug().Msgf("sql[%s] exec ok", marker)
	return tag, nil
}

func (r *SQLRunner) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	_, statement, err := sqlinline.Marker(query)
	if err != nil {
		return errRow{err: err}
	}
	return r.Pool.QueryRow(ctx, statement, args...)
}

func (r *SQLRunner) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	marker, statement, err := sqlinline.Marker(query)
	if err != nil {
		return nil, err
	}
	rows, err := r.Pool.Query(ctx, statement, args...)
	if err != nil {
		r.Logger.Error().Err(err).Msgf("sql[%s] query error", marker)
		return nil, err
	}
	return rows, nil
}

// Begin opens a transaction whose statements keep the marker logging.
func (r *SQLRunner) Begin(ctx context.Context) (*SQLTx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	return &SQLTx{tx: tx, logger: r.Logger}, nil
}

// SQLTx is a pgx transaction restricted to marker-tagged statements.
type SQLTx struct {
	tx     pgx.Tx
	logger zerolog.Logger
}

func (t *SQLTx) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	marker, statement, err := sqlinline.Marker(query)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	tag, err := t.tx.Exec(ctx, statement, args...)
	if err != nil {
		t.logger.Error().Err(err).Msgf("sql[%s] tx exec error", marker)
	}
	return tag, err
}

func (t *SQLTx) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	_, statement, err := sqlinline.Marker(query)
	if err != nil {
		return errRow{err: err}
	}
	return t.tx.QueryRow(ctx, statement, args...)
}

func (t *SQLTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *SQLTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error { return r.err }
