package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fin-ledger/cash_ledger_app/internal/apperrors"
	"github.com/fin-ledger/cash_ledger_app/internal/core/domain"
	portsrepo "github.com/fin-ledger/cash_ledger_app/internal/core/ports/repositories"
	"github.com/fin-ledger/cash_ledger_app/internal/models"
)

type PgxCashInOutRepository struct {
	db DBTX
}

var _ portsrepo.CashInOutRepository = (*PgxCashInOutRepository)(nil)

func toModelCashInOut(d domain.CashInOut) models.CashInOut {
	return models.CashInOut{
		CashInOutID:       d.ID,
		AccountID:         d.AccountID,
		Currency:          d.Currency,
		AbsAmount:         d.AbsAmount,
		Withdrawal:        d.Withdrawal,
		RequestDay:        d.RequestDay,
		RequestDate:       d.RequestDate,
		EventDay:          d.EventDay,
		ValueDay:          d.ValueDay,
		TargetFiCode:      d.TargetFiCode,
		TargetFiAccountID: d.TargetFiAccountID,
		SelfFiCode:        d.SelfFiCode,
		SelfFiAccountID:   d.SelfFiAccountID,
		StatusType:        string(d.StatusType),
		UpdatedBy:         d.UpdatedBy,
		UpdatedAt:         d.UpdatedAt,
		CashflowID:        d.CashflowID,
	}
}

func toDomainCashInOut(m models.CashInOut) domain.CashInOut {
	return domain.CashInOut{
		ID:                m.CashInOutID,
		AccountID:         m.AccountID,
		Currency:          m.Currency,
		AbsAmount:         m.AbsAmount,
		Withdrawal:        m.Withdrawal,
		RequestDay:        domain.Day(m.RequestDay),
		RequestDate:       m.RequestDate,
		EventDay:          domain.Day(m.EventDay),
		ValueDay:          domain.Day(m.ValueDay),
		TargetFiCode:      m.TargetFiCode,
		TargetFiAccountID: m.TargetFiAccountID,
		SelfFiCode:        m.SelfFiCode,
		SelfFiAccountID:   m.SelfFiAccountID,
		StatusType:        domain.ActionStatusType(m.StatusType),
		UpdatedBy:         m.UpdatedBy,
		UpdatedAt:         m.UpdatedAt,
		CashflowID:        m.CashflowID,
	}
}

const cashInOutColumns = `cash_in_out_id, account_id, currency, abs_amount, withdrawal, request_day, request_date, event_day, value_day, target_fi_code, target_fi_account_id, self_fi_code, self_fi_account_id, status_type, updated_by, updated_at, cashflow_id`

func scanCashInOut(row pgx.Row) (models.CashInOut, error) {
	var m models.CashInOut
	var cashflowID sql.NullString
	err := row.Scan(
		&m.CashInOutID,
		&m.AccountID,
		&m.Currency,
		&m.AbsAmount,
		&m.Withdrawal,
		&m.RequestDay,
		&m.RequestDate,
		&m.EventDay,
		&m.ValueDay,
		&m.TargetFiCode,
		&m.TargetFiAccountID,
		&m.SelfFiCode,
		&m.SelfFiAccountID,
		&m.StatusType,
		&m.UpdatedBy,
		&m.UpdatedAt,
		&cashflowID,
	)
	if cashflowID.Valid {
		m.CashflowID = cashflowID.String
	}
	return m, err
}

func scanCashInOutRows(rows pgx.Rows) ([]domain.CashInOut, error) {
	defer rows.Close()
	list := []domain.CashInOut{}
	for rows.Next() {
		m, err := scanCashInOut(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cash in/out row: %w", err)
		}
		list = append(list, toDomainCashInOut(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash in/out rows: %w", err)
	}
	return list, nil
}

// FindByID retrieves a request by its ID.
func (r *PgxCashInOutRepository) FindByID(ctx context.Context, id string) (*domain.CashInOut, error) {
	query := `
		SELECT ` + cashInOutColumns + `
		FROM cash_in_out
		WHERE cash_in_out_id = $1;
	`
	m, err := scanCashInOut(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("CashInOut", id)
		}
		return nil, fmt.Errorf("failed to find cash in/out by ID %s: %w", id, err)
	}
	cio := toDomainCashInOut(m)
	return &cio, nil
}

// Save inserts a new request.
func (r *PgxCashInOutRepository) Save(ctx context.Context, cio domain.CashInOut) error {
	m := toModelCashInOut(cio)
	query := `
		INSERT INTO cash_in_out (` + cashInOutColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	var cashflowID sql.NullString
	if m.CashflowID != "" {
		cashflowID = sql.NullString{String: m.CashflowID, Valid: true}
	}
	_, err := r.db.Exec(ctx, query,
		m.CashInOutID,
		m.AccountID,
		m.Currency,
		m.AbsAmount,
		m.Withdrawal,
		m.RequestDay,
		m.RequestDate,
		m.EventDay,
		m.ValueDay,
		m.TargetFiCode,
		m.TargetFiAccountID,
		m.SelfFiCode,
		m.SelfFiAccountID,
		m.StatusType,
		m.UpdatedBy,
		m.UpdatedAt,
		cashflowID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: cash in/out with ID %s already exists", apperrors.ErrDuplicate, m.CashInOutID)
		}
		return fmt.Errorf("failed to save cash in/out %s: %w", m.CashInOutID, err)
	}
	return nil
}

// Update persists a state transition on an existing request.
func (r *PgxCashInOutRepository) Update(ctx context.Context, cio domain.CashInOut) error {
	query := `
		UPDATE cash_in_out
		SET status_type = $2, updated_by = $3, updated_at = $4, cashflow_id = $5
		WHERE cash_in_out_id = $1;
	`
	var cashflowID sql.NullString
	if cio.CashflowID != "" {
		cashflowID = sql.NullString{String: cio.CashflowID, Valid: true}
	}
	cmdTag, err := r.db.Exec(ctx, query, cio.ID, string(cio.StatusType), cio.UpdatedBy, cio.UpdatedAt, cashflowID)
	if err != nil {
		return fmt.Errorf("failed to update cash in/out %s: %w", cio.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFound("CashInOut", cio.ID)
	}
	return nil
}

// Find retrieves requests matching p, newest update first. Every filter is
// optional; an omitted filter matches all rows.
func (r *PgxCashInOutRepository) Find(ctx context.Context, p portsrepo.FindCashInOut) ([]domain.CashInOut, error) {
	var conds []string
	var args []any

	if p.Currency != "" {
		args = append(args, p.Currency)
		conds = append(conds, fmt.Sprintf("currency = $%d", len(args)))
	}
	if len(p.StatusTypes) > 0 {
		statuses := make([]string, len(p.StatusTypes))
		for i, st := range p.StatusTypes {
			statuses[i] = string(st)
		}
		args = append(args, statuses)
		conds = append(conds, fmt.Sprintf("status_type = ANY($%d)", len(args)))
	}
	if p.UpdFromDay != nil {
		args = append(args, *p.UpdFromDay)
		conds = append(conds, fmt.Sprintf("event_day >= $%d", len(args)))
	}
	if p.UpdToDay != nil {
		args = append(args, *p.UpdToDay)
		conds = append(conds, fmt.Sprintf("event_day <= $%d", len(args)))
	}

	query := `
		SELECT ` + cashInOutColumns + `
		FROM cash_in_out
	`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY updated_at DESC;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash in/out requests: %w", err)
	}
	return scanCashInOutRows(rows)
}

// FindDueUnprocessed retrieves every UNPROCESSED request whose event day is
// day. Errored requests are excluded so retry stays an operational decision.
func (r *PgxCashInOutRepository) FindDueUnprocessed(ctx context.Context, day time.Time) ([]domain.CashInOut, error) {
	query := `
		SELECT ` + cashInOutColumns + `
		FROM cash_in_out
		WHERE status_type = $1 AND event_day = $2
		ORDER BY cash_in_out_id;
	`
	rows, err := r.db.Query(ctx, query, string(domain.StatusUnprocessed), day)
	if err != nil {
		return nil, fmt.Errorf("failed to query due cash in/out requests: %w", err)
	}
	return scanCashInOutRows(rows)
}

// FindUnprocessedByAccount retrieves one account's still-processable
// requests, newest first.
func (r *PgxCashInOutRepository) FindUnprocessedByAccount(ctx context.Context, accountID string) ([]domain.CashInOut, error) {
	query := `
		SELECT ` + cashInOutColumns + `
		FROM cash_in_out
		WHERE account_id = $1 AND status_type = ANY($2)
		ORDER BY updated_at DESC;
	`
	rows, err := r.db.Query(ctx, query, accountID, statusStrings(domain.UnprocessedTypes))
	if err != nil {
		return nil, fmt.Errorf("failed to query unprocessed cash in/out for %s: %w", accountID, err)
	}
	return scanCashInOutRows(rows)
}

// FindUnprocessedByCurrency retrieves one account's still-processable
// requests for one currency and direction.
func (r *PgxCashInOutRepository) FindUnprocessedByCurrency(ctx context.Context, accountID, currency string, withdrawal bool) ([]domain.CashInOut, error) {
	query := `
		SELECT ` + cashInOutColumns + `
		FROM cash_in_out
		WHERE account_id = $1 AND currency = $2 AND withdrawal = $3 AND status_type = ANY($4)
		ORDER BY cash_in_out_id;
	`
	rows, err := r.db.Query(ctx, query, accountID, currency, withdrawal, statusStrings(domain.UnprocessedTypes))
	if err != nil {
		return nil, fmt.Errorf("failed to query unprocessed cash in/out for %s/%s: %w", accountID, currency, err)
	}
	return scanCashInOutRows(rows)
}

func statusStrings(types []domain.ActionStatusType) []string {
	out := make([]string, len(types))
	for i, st := range types {
		out[i] = string(st)
	}
	return out
}
