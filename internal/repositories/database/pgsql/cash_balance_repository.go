package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fin-ledger/cash_ledger_app/internal/apperrors"
	"github.com/fin-ledger/cash_ledger_app/internal/core/domain"
	portsrepo "github.com/fin-ledger/cash_ledger_app/internal/core/ports/repositories"
	"github.com/fin-ledger/cash_ledger_app/internal/models"
)

type PgxCashBalanceRepository struct {
	db DBTX
}

var _ portsrepo.CashBalanceRepository = (*PgxCashBalanceRepository)(nil)

func toModelCashBalance(d domain.CashBalance) models.CashBalance {
	return models.CashBalance{
		CashBalanceID: d.ID,
		AccountID:     d.AccountID,
		Currency:      d.Currency,
		BaseDay:       d.BaseDay,
		Amount:        d.Amount,
		UpdatedAt:     d.UpdatedAt,
	}
}

func toDomainCashBalance(m models.CashBalance) domain.CashBalance {
	return domain.CashBalance{
		ID:        m.CashBalanceID,
		AccountID: m.AccountID,
		Currency:  m.Currency,
		BaseDay:   domain.Day(m.BaseDay),
		Amount:    m.Amount,
		UpdatedAt: m.UpdatedAt,
	}
}

const cashBalanceColumns = `cash_balance_id, account_id, currency, base_day, amount, updated_at`

func scanCashBalance(row pgx.Row) (models.CashBalance, error) {
	var m models.CashBalance
	err := row.Scan(
		&m.CashBalanceID,
		&m.AccountID,
		&m.Currency,
		&m.BaseDay,
		&m.Amount,
		&m.UpdatedAt,
	)
	return m, err
}

// FindByBaseDay retrieves the snapshot for the exact base day, or nil when
// none exists.
func (r *PgxCashBalanceRepository) FindByBaseDay(ctx context.Context, accountID, currency string, baseDay time.Time) (*domain.CashBalance, error) {
	query := `
		SELECT ` + cashBalanceColumns + `
		FROM cash_balance
		WHERE account_id = $1 AND currency = $2 AND base_day = $3;
	`
	m, err := scanCashBalance(r.db.QueryRow(ctx, query, accountID, currency, baseDay))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find cash balance for %s/%s: %w", accountID, currency, err)
	}
	cb := toDomainCashBalance(m)
	return &cb, nil
}

// FindLatest retrieves the most recent snapshot regardless of base day, or
// nil when the pair has no history.
func (r *PgxCashBalanceRepository) FindLatest(ctx context.Context, accountID, currency string) (*domain.CashBalance, error) {
	query := `
		SELECT ` + cashBalanceColumns + `
		FROM cash_balance
		WHERE account_id = $1 AND currency = $2
		ORDER BY base_day DESC
		LIMIT 1;
	`
	m, err := scanCashBalance(r.db.QueryRow(ctx, query, accountID, currency))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest cash balance for %s/%s: %w", accountID, currency, err)
	}
	cb := toDomainCashBalance(m)
	return &cb, nil
}

// Save inserts a new snapshot row.
func (r *PgxCashBalanceRepository) Save(ctx context.Context, cb domain.CashBalance) error {
	m := toModelCashBalance(cb)
	query := `
		INSERT INTO cash_balance (cash_balance_id, account_id, currency, base_day, amount, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.db.Exec(ctx, query,
		m.CashBalanceID,
		m.AccountID,
		m.Currency,
		m.BaseDay,
		m.Amount,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: cash balance for %s/%s on %s already exists",
				apperrors.ErrDuplicate, m.AccountID, m.Currency, m.BaseDay.Format("2006-01-02"))
		}
		return fmt.Errorf("failed to save cash balance %s: %w", m.CashBalanceID, err)
	}
	return nil
}

// UpdateAmount updates the amount and updated_at of an existing row.
func (r *PgxCashBalanceRepository) UpdateAmount(ctx context.Context, cb domain.CashBalance) error {
	query := `
		UPDATE cash_balance
		SET amount = $2, updated_at = $3
		WHERE cash_balance_id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, cb.ID, cb.Amount, cb.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update cash balance %s: %w", cb.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFound("CashBalance", cb.ID)
	}
	return nil
}
