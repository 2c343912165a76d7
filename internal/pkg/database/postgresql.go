package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	*pgxpool.Pool
}

// PoolSettings sizes the connection pool. Batch recalculation fans out over
// a worker pool, so MaxConns should stay above CALC_WORKERS.
type PoolSettings struct {
	MaxConns int32
	MinConns int32
}

func poolConfig(dsn string, settings PoolSettings) (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	if settings.MaxConns < 1 {
		settings.MaxConns = 25
	}
	if settings.MinConns < 0 {
		settings.MinConns = 0
	}
	if settings.MinConns > settings.MaxConns {
		settings.MinConns = settings.MaxConns
	}

	config.MaxConns = settings.MaxConns
	config.MinConns = settings.MinConns
	return config, nil
}

func NewPostgreSQLDB(dsn string, settings PoolSettings) (*DB, error) {
	config, err := poolConfig(dsn, settings)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	return &DB{Pool: pool}, nil
}

func (db *DB) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return db.Pool.Begin(ctx)
}

type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}
