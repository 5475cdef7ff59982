package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fin-ledger/cash_ledger_app/internal/apperrors"
	"github.com/fin-ledger/cash_ledger_app/internal/core/domain"
	portsrepo "github.com/fin-ledger/cash_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/fin-ledger/cash_ledger_app/internal/core/ports/services"
	"github.com/fin-ledger/cash_ledger_app/internal/dto"
	"github.com/fin-ledger/cash_ledger_app/internal/middleware"
)

// authService issues bearer tokens for active accounts. The sample keeps
// authentication deliberately thin, identifying the caller by account id
// only.
type authService struct {
	uow       portsrepo.UnitOfWork
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates the authentication use cases.
func NewAuthService(uow portsrepo.UnitOfWork, jwtSecret string, jwtExpiry time.Duration) portssvc.AuthSvcFacade {
	return &authService{uow: uow, jwtSecret: jwtSecret, jwtExpiry: jwtExpiry}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login loads the account, rejects inactive ones and returns a signed token
// binding the account as the actor.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	var acc *domain.Account
	err := s.uow.ReadOnly(ctx, func(ctx context.Context, r portsrepo.Repositories) error {
		var err error
		acc, err = r.Accounts().FindByID(ctx, req.AccountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if acc.StatusType.Inactive() {
		return nil, apperrors.NewValidation(domain.ErrKeyAccountInactive)
	}

	now := time.Now()
	claims := middleware.ActorClaims{
		Name:     acc.Name,
		RoleType: string(domain.RoleUser),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acc.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}
	return &dto.LoginResponse{Token: token, AccountID: acc.ID, Name: acc.Name}, nil
}
