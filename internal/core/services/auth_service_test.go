package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fin-ledger/cash_ledger_app/internal/apperrors"
	"github.com/fin-ledger/cash_ledger_app/internal/core/domain"
	"github.com/fin-ledger/cash_ledger_app/internal/core/services"
	"github.com/fin-ledger/cash_ledger_app/internal/dto"
	"github.com/fin-ledger/cash_ledger_app/internal/middleware"
)

const testSecret = "test-secret"

func TestLogin_IssuesTokenForActiveAccount(t *testing.T) {
	store := newMemStore()
	store.accounts["test"] = domain.Account{ID: "test", Name: "Test Account", StatusType: domain.AccountNormal}
	svc := services.NewAuthService(&memUow{store: store}, testSecret, time.Hour)

	res, err := svc.Login(context.Background(), dto.LoginRequest{AccountID: "test"})
	require.NoError(t, err)
	assert.Equal(t, "test", res.AccountID)
	assert.Equal(t, "Test Account", res.Name)

	claims := &middleware.ActorClaims{}
	token, err := jwt.ParseWithClaims(res.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	assert.Equal(t, "test", claims.Subject)
	assert.Equal(t, "Test Account", claims.Name)
	assert.Equal(t, string(domain.RoleUser), claims.RoleType)
}

func TestLogin_RejectsInactiveAccount(t *testing.T) {
	store := newMemStore()
	store.accounts["gone"] = domain.Account{ID: "gone", Name: "Gone", StatusType: domain.AccountWithdrawal}
	svc := services.NewAuthService(&memUow{store: store}, testSecret, time.Hour)

	_, err := svc.Login(context.Background(), dto.LoginRequest{AccountID: "gone"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, domain.ErrKeyAccountInactive, err.Error())
}

func TestLogin_UnknownAccount(t *testing.T) {
	svc := services.NewAuthService(&memUow{store: newMemStore()}, testSecret, time.Hour)

	_, err := svc.Login(context.Background(), dto.LoginRequest{AccountID: "missing"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
