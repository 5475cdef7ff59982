package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fin-ledger/cash_ledger_app/internal/apperrors"
	"github.com/fin-ledger/cash_ledger_app/internal/core/domain"
	portsrepo "github.com/fin-ledger/cash_ledger_app/internal/core/ports/repositories"
	"github.com/fin-ledger/cash_ledger_app/internal/models"
)

type PgxAccountRepository struct {
	db DBTX
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		ID:         m.AccountID,
		Name:       m.Name,
		Mail:       m.Mail,
		StatusType: domain.AccountStatusType(m.StatusType),
	}
}

// FindByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `
		SELECT account_id, name, mail, status_type
		FROM account
		WHERE account_id = $1;
	`
	var m models.Account
	err := r.db.QueryRow(ctx, query, id).Scan(
		&m.AccountID,
		&m.Name,
		&m.Mail,
		&m.StatusType,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Account", id)
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", id, err)
	}

	acc := toDomainAccount(m)
	return &acc, nil
}

type PgxFiAccountRepository struct {
	db DBTX
}

var _ portsrepo.FiAccountRepository = (*PgxFiAccountRepository)(nil)

// FindByAccount retrieves the routing record for one account, usage category
// and currency.
func (r *PgxFiAccountRepository) FindByAccount(ctx context.Context, accountID, category, currency string) (*domain.FiAccount, error) {
	query := `
		SELECT id, account_id, category, currency, fi_code, fi_account_id
		FROM fi_account
		WHERE account_id = $1 AND category = $2 AND currency = $3;
	`
	var m models.FiAccount
	err := r.db.QueryRow(ctx, query, accountID, category, currency).Scan(
		&m.FiAccountRowID,
		&m.AccountID,
		&m.Category,
		&m.Currency,
		&m.FiCode,
		&m.FiAccountID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("FiAccount", accountID)
		}
		return nil, fmt.Errorf("failed to find fi account for %s/%s/%s: %w", accountID, category, currency, err)
	}

	return &domain.FiAccount{
		ID:          m.FiAccountRowID,
		AccountID:   m.AccountID,
		Category:    m.Category,
		Currency:    m.Currency,
		FiCode:      m.FiCode,
		FiAccountID: m.FiAccountID,
	}, nil
}

type PgxSelfFiAccountRepository struct {
	db DBTX
}

var _ portsrepo.SelfFiAccountRepository = (*PgxSelfFiAccountRepository)(nil)

// Find retrieves the service company's settlement record for one usage
// category and currency.
func (r *PgxSelfFiAccountRepository) Find(ctx context.Context, category, currency string) (*domain.SelfFiAccount, error) {
	query := `
		SELECT id, category, currency, fi_code, fi_account_id
		FROM self_fi_account
		WHERE category = $1 AND currency = $2;
	`
	var m models.SelfFiAccount
	err := r.db.QueryRow(ctx, query, category, currency).Scan(
		&m.SelfFiAccountRowID,
		&m.Category,
		&m.Currency,
		&m.FiCode,
		&m.FiAccountID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("SelfFiAccount", category)
		}
		return nil, fmt.Errorf("failed to find self fi account for %s/%s: %w", category, currency, err)
	}

	return &domain.SelfFiAccount{
		ID:          m.SelfFiAccountRowID,
		Category:    m.Category,
		Currency:    m.Currency,
		FiCode:      m.FiCode,
		FiAccountID: m.FiAccountID,
	}, nil
}
