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

type PgxCashflowRepository struct {
	db DBTX
}

var _ portsrepo.CashflowRepository = (*PgxCashflowRepository)(nil)

func toModelCashflow(d domain.Cashflow) models.Cashflow {
	return models.Cashflow{
		CashflowID:   d.ID,
		AccountID:    d.AccountID,
		Currency:     d.Currency,
		Amount:       d.Amount,
		CashflowType: string(d.CashflowType),
		Remark:       d.Remark,
		EventDay:     d.EventDay,
		EventDate:    d.EventDate,
		ValueDay:     d.ValueDay,
		StatusType:   string(d.StatusType),
		UpdatedBy:    d.UpdatedBy,
		UpdatedAt:    d.UpdatedAt,
	}
}

func toDomainCashflow(m models.Cashflow) domain.Cashflow {
	return domain.Cashflow{
		ID:           m.CashflowID,
		AccountID:    m.AccountID,
		Currency:     m.Currency,
		Amount:       m.Amount,
		CashflowType: domain.CashflowType(m.CashflowType),
		Remark:       m.Remark,
		EventDay:     domain.Day(m.EventDay),
		EventDate:    m.EventDate,
		ValueDay:     domain.Day(m.ValueDay),
		StatusType:   domain.ActionStatusType(m.StatusType),
		UpdatedBy:    m.UpdatedBy,
		UpdatedAt:    m.UpdatedAt,
	}
}

const cashflowColumns = `cashflow_id, account_id, currency, amount, cashflow_type, remark, event_day, event_date, value_day, status_type, updated_by, updated_at`

func scanCashflowRows(rows pgx.Rows) ([]domain.Cashflow, error) {
	defer rows.Close()
	list := []domain.Cashflow{}
	for rows.Next() {
		var m models.Cashflow
		err := rows.Scan(
			&m.CashflowID,
			&m.AccountID,
			&m.Currency,
			&m.Amount,
			&m.CashflowType,
			&m.Remark,
			&m.EventDay,
			&m.EventDate,
			&m.ValueDay,
			&m.StatusType,
			&m.UpdatedBy,
			&m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cashflow row: %w", err)
		}
		list = append(list, toDomainCashflow(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cashflow rows: %w", err)
	}
	return list, nil
}

// FindByID retrieves a ledger entry by its ID.
func (r *PgxCashflowRepository) FindByID(ctx context.Context, id string) (*domain.Cashflow, error) {
	query := `
		SELECT ` + cashflowColumns + `
		FROM cashflow
		WHERE cashflow_id = $1;
	`
	var m models.Cashflow
	err := r.db.QueryRow(ctx, query, id).Scan(
		&m.CashflowID,
		&m.AccountID,
		&m.Currency,
		&m.Amount,
		&m.CashflowType,
		&m.Remark,
		&m.EventDay,
		&m.EventDate,
		&m.ValueDay,
		&m.StatusType,
		&m.UpdatedBy,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Cashflow", id)
		}
		return nil, fmt.Errorf("failed to find cashflow by ID %s: %w", id, err)
	}
	cf := toDomainCashflow(m)
	return &cf, nil
}

// Save inserts a new ledger entry.
func (r *PgxCashflowRepository) Save(ctx context.Context, cf domain.Cashflow) error {
	m := toModelCashflow(cf)
	query := `
		INSERT INTO cashflow (` + cashflowColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db.Exec(ctx, query,
		m.CashflowID,
		m.AccountID,
		m.Currency,
		m.Amount,
		m.CashflowType,
		m.Remark,
		m.EventDay,
		m.EventDate,
		m.ValueDay,
		m.StatusType,
		m.UpdatedBy,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: cashflow with ID %s already exists", apperrors.ErrDuplicate, m.CashflowID)
		}
		return fmt.Errorf("failed to save cashflow %s: %w", m.CashflowID, err)
	}
	return nil
}

// Update persists a state transition on an existing entry.
func (r *PgxCashflowRepository) Update(ctx context.Context, cf domain.Cashflow) error {
	query := `
		UPDATE cashflow
		SET status_type = $2, updated_by = $3, updated_at = $4
		WHERE cashflow_id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, cf.ID, string(cf.StatusType), cf.UpdatedBy, cf.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update cashflow %s: %w", cf.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFound("Cashflow", cf.ID)
	}
	return nil
}

// FindUnrealized retrieves the UNPROCESSED entries for one account and
// currency settling on or before valueDayTo.
func (r *PgxCashflowRepository) FindUnrealized(ctx context.Context, accountID, currency string, valueDayTo time.Time) ([]domain.Cashflow, error) {
	query := `
		SELECT ` + cashflowColumns + `
		FROM cashflow
		WHERE account_id = $1 AND currency = $2 AND status_type = $3 AND value_day <= $4
		ORDER BY cashflow_id;
	`
	rows, err := r.db.Query(ctx, query, accountID, currency, string(domain.StatusUnprocessed), valueDayTo)
	if err != nil {
		return nil, fmt.Errorf("failed to query unrealized cashflows for %s/%s: %w", accountID, currency, err)
	}
	return scanCashflowRows(rows)
}

// FindDueRealize retrieves every UNPROCESSED entry with value_day <= day.
func (r *PgxCashflowRepository) FindDueRealize(ctx context.Context, day time.Time) ([]domain.Cashflow, error) {
	query := `
		SELECT ` + cashflowColumns + `
		FROM cashflow
		WHERE status_type = $1 AND value_day <= $2
		ORDER BY cashflow_id;
	`
	rows, err := r.db.Query(ctx, query, string(domain.StatusUnprocessed), day)
	if err != nil {
		return nil, fmt.Errorf("failed to query due cashflows: %w", err)
	}
	return scanCashflowRows(rows)
}
