package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/prepsphere/backend/internal/db"
)

// UnitOfWork runs multi-store workflows inside a single transaction
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(stores Stores) error) error
}

// PgxUnitOfWork is the pgx-backed UnitOfWork
type PgxUnitOfWork struct {
	pg *db.PostgresDB
}

// NewUnitOfWork creates a UnitOfWork over the connection pool
func NewUnitOfWork(pg *db.PostgresDB) *PgxUnitOfWork {
	return &PgxUnitOfWork{pg: pg}
}

// WithinTx begins a transaction, rebuilds the store bundle over it and runs fn.
// Any error rolls the whole transaction back.
func (u *PgxUnitOfWork) WithinTx(ctx context.Context, fn func(stores Stores) error) error {
	return u.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(NewStores(tx))
	})
}
