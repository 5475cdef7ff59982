// Package pgsql implements the persistence ports on PostgreSQL via pgx.
package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/fin-ledger/cash_ledger_app/internal/core/ports/repositories"
)

// DBTX is the query surface shared by pgxpool.Pool and pgx.Tx. Repositories
// run against whichever the unit of work hands them.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// repoBundle binds every repository to one DBTX so that all repository calls
// inside a unit of work observe the same transaction.
type repoBundle struct {
	db DBTX
}

var _ portsrepo.Repositories = (*repoBundle)(nil)

func newRepoBundle(db DBTX) *repoBundle {
	return &repoBundle{db: db}
}

func (b *repoBundle) Accounts() portsrepo.AccountRepository {
	return &PgxAccountRepository{db: b.db}
}

func (b *repoBundle) FiAccounts() portsrepo.FiAccountRepository {
	return &PgxFiAccountRepository{db: b.db}
}

func (b *repoBundle) SelfFiAccounts() portsrepo.SelfFiAccountRepository {
	return &PgxSelfFiAccountRepository{db: b.db}
}

func (b *repoBundle) CashBalances() portsrepo.CashBalanceRepository {
	return &PgxCashBalanceRepository{db: b.db}
}

func (b *repoBundle) Cashflows() portsrepo.CashflowRepository {
	return &PgxCashflowRepository{db: b.db}
}

func (b *repoBundle) CashInOuts() portsrepo.CashInOutRepository {
	return &PgxCashInOutRepository{db: b.db}
}

// PgxUnitOfWork opens pgx transactions as all-or-nothing boundaries.
type PgxUnitOfWork struct {
	pool *pgxpool.Pool
}

// NewPgxUnitOfWork creates the transaction boundary over a connection pool.
func NewPgxUnitOfWork(pool *pgxpool.Pool) portsrepo.UnitOfWork {
	return &PgxUnitOfWork{pool: pool}
}

var _ portsrepo.UnitOfWork = (*PgxUnitOfWork)(nil)

// Do runs fn inside a read-write transaction, committing on nil and rolling
// back on error or panic.
func (u *PgxUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, r portsrepo.Repositories) error) error {
	return u.run(ctx, pgx.TxOptions{}, fn)
}

// ReadOnly runs fn inside a read-only transaction.
func (u *PgxUnitOfWork) ReadOnly(ctx context.Context, fn func(ctx context.Context, r portsrepo.Repositories) error) error {
	return u.run(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (u *PgxUnitOfWork) run(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, r portsrepo.Repositories) error) error {
	tx, err := u.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// No-op when already committed.
		_ = tx.Rollback(ctx)
	}()

	if err := fn(ctx, newRepoBundle(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
