package services_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fin-ledger/cash_ledger_app/internal/apperrors"
	"github.com/fin-ledger/cash_ledger_app/internal/core/domain"
	portsrepo "github.com/fin-ledger/cash_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/fin-ledger/cash_ledger_app/internal/core/ports/services"
	"github.com/fin-ledger/cash_ledger_app/internal/core/services"
	"github.com/fin-ledger/cash_ledger_app/internal/platform/idgen"
	"github.com/fin-ledger/cash_ledger_app/internal/platform/lock"
	"github.com/fin-ledger/cash_ledger_app/internal/platform/timekeeper"
)

type AssetAdminServiceTestSuite struct {
	suite.Suite
	store   *memStore
	service portssvc.AssetAdminSvcFacade
}

func (s *AssetAdminServiceTestSuite) SetupTest() {
	s.store = newMemStore()
	s.store.accounts["test"] = domain.Account{ID: "test", Name: "test", StatusType: domain.AccountNormal}

	tk := timekeeper.NewAt(baseDay, func() time.Time { return baseNow })
	s.service = services.NewAssetAdminService(&memUow{store: s.store}, lock.NewManager(), tk, idgen.NewMemory())
}

func (s *AssetAdminServiceTestSuite) balanceAmount(accountID, currency string) decimal.Decimal {
	for _, cb := range s.store.balances {
		if cb.AccountID == accountID && cb.Currency == currency && domain.SameDay(cb.BaseDay, baseDay) {
			return cb.Amount
		}
	}
	return decimal.Zero
}

func (s *AssetAdminServiceTestSuite) register(currency, amount string, valueDay time.Time) (*domain.Cashflow, error) {
	return s.service.RegisterCashflow(context.Background(), actor, domain.RegCashflow{
		AccountID:    "test",
		Currency:     currency,
		Amount:       decimal.RequireFromString(amount),
		CashflowType: domain.CashflowCashIn,
		Remark:       domain.RemarkCashIn,
		ValueDay:     valueDay,
	})
}

func (s *AssetAdminServiceTestSuite) TestRegisterCashflow_FutureValueDayStaysUnprocessed() {
	cf, err := s.register("JPY", "1000", baseDay.AddDate(0, 0, 2))
	s.Require().NoError(err)

	s.Equal(domain.StatusUnprocessed, cf.StatusType)
	s.True(cf.EventDay.Equal(baseDay))
	s.Equal(domain.StatusUnprocessed, s.store.cashflows[cf.ID].StatusType)
	s.Empty(s.store.balances)
}

func (s *AssetAdminServiceTestSuite) TestRegisterCashflow_SettlesImmediately() {
	cf, err := s.register("JPY", "1000", baseDay)
	s.Require().NoError(err)

	s.Equal(domain.StatusProcessed, cf.StatusType)
	s.True(decimal.NewFromInt(1000).Equal(s.balanceAmount("test", "JPY")))
}

func (s *AssetAdminServiceTestSuite) TestRegisterCashflow_PastValueDayRejected() {
	_, err := s.register("JPY", "1000", baseDay.AddDate(0, 0, -1))
	s.Require().Error(err)

	var ve *apperrors.ValidationError
	s.Require().ErrorAs(err, &ve)
	fe := ve.FieldError("valueDay")
	s.Require().NotNil(fe)
	s.Equal(domain.ErrKeyCashflowRegisterDay, fe.Message)
	s.Empty(s.store.cashflows)
}

func (s *AssetAdminServiceTestSuite) TestRegisterCashflow_BalanceScalePerCurrency() {
	// USD keeps two fraction digits, truncating what lies beyond.
	for _, amount := range []string{"10.02", "11.51"} {
		_, err := s.register("USD", amount, baseDay)
		s.Require().NoError(err)
	}
	s.True(decimal.RequireFromString("21.53").Equal(s.balanceAmount("test", "USD")))

	_, err := s.register("USD", "11.516", baseDay)
	s.Require().NoError(err)
	s.True(decimal.RequireFromString("33.04").Equal(s.balanceAmount("test", "USD")))

	_, err = s.register("USD", "-41.51", baseDay)
	s.Require().NoError(err)
	s.True(decimal.RequireFromString("-8.47").Equal(s.balanceAmount("test", "USD")))
}

func (s *AssetAdminServiceTestSuite) TestRegisterCashflow_RollsBalanceForward() {
	// The last snapshot lies three days back; settling today creates today's
	// snapshot from it and leaves history untouched.
	s.store.balances["cb-old"] = domain.CashBalance{
		ID: "cb-old", AccountID: "test", Currency: "JPY",
		BaseDay: baseDay.AddDate(0, 0, -3), Amount: decimal.NewFromInt(5000), UpdatedAt: baseNow,
	}

	_, err := s.register("JPY", "1000", baseDay)
	s.Require().NoError(err)

	s.True(decimal.NewFromInt(6000).Equal(s.balanceAmount("test", "JPY")))
	s.True(decimal.NewFromInt(5000).Equal(s.store.balances["cb-old"].Amount))
	s.Len(s.store.balances, 2)
}

func (s *AssetAdminServiceTestSuite) dueWithdrawal(id string, valueDay time.Time) domain.CashInOut {
	return domain.CashInOut{
		ID: id, AccountID: "test", Currency: "JPY",
		AbsAmount: decimal.NewFromInt(300), Withdrawal: true,
		RequestDay: baseDay, EventDay: baseDay, ValueDay: valueDay,
		StatusType: domain.StatusUnprocessed,
	}
}

func (s *AssetAdminServiceTestSuite) TestCloseCashOut() {
	s.store.cashInOuts["CIO1"] = s.dueWithdrawal("CIO1", baseDay.AddDate(0, 0, 3))

	result := s.service.CloseCashOut(context.Background())
	s.Equal(portssvc.BatchResult{Targets: 1, Processed: 1, Errored: 0}, result)

	cio := s.store.cashInOuts["CIO1"]
	s.Equal(domain.StatusProcessed, cio.StatusType)
	s.Require().NotEmpty(cio.CashflowID)

	cf := s.store.cashflows[cio.CashflowID]
	s.True(decimal.NewFromInt(-300).Equal(cf.Amount))
	s.Equal(domain.CashflowCashOut, cf.CashflowType)
	s.Equal(domain.RemarkCashOut, cf.Remark)
	s.Equal(domain.StatusUnprocessed, cf.StatusType)
	s.True(cf.ValueDay.Equal(baseDay.AddDate(0, 0, 3)))
}

func (s *AssetAdminServiceTestSuite) TestCloseCashOut_FailureIsolatedPerItem() {
	// CIO1 carries an already-passed settlement day, so its ledger entry is
	// refused and the request falls back to ERROR. CIO2 still goes through.
	s.store.cashInOuts["CIO1"] = s.dueWithdrawal("CIO1", baseDay.AddDate(0, 0, -1))
	s.store.cashInOuts["CIO2"] = s.dueWithdrawal("CIO2", baseDay.AddDate(0, 0, 3))

	result := s.service.CloseCashOut(context.Background())
	s.Equal(portssvc.BatchResult{Targets: 2, Processed: 1, Errored: 1}, result)

	s.Equal(domain.StatusError, s.store.cashInOuts["CIO1"].StatusType)
	s.Equal(domain.StatusProcessed, s.store.cashInOuts["CIO2"].StatusType)
}

func (s *AssetAdminServiceTestSuite) TestCloseCashOut_SkipsErroredAndFutureRequests() {
	errored := s.dueWithdrawal("CIO1", baseDay.AddDate(0, 0, 3))
	errored.StatusType = domain.StatusError
	s.store.cashInOuts["CIO1"] = errored

	future := s.dueWithdrawal("CIO2", baseDay.AddDate(0, 0, 4))
	future.EventDay = baseDay.AddDate(0, 0, 1)
	s.store.cashInOuts["CIO2"] = future

	result := s.service.CloseCashOut(context.Background())
	s.Equal(portssvc.BatchResult{}, result)
	s.Equal(domain.StatusError, s.store.cashInOuts["CIO1"].StatusType)
	s.Equal(domain.StatusUnprocessed, s.store.cashInOuts["CIO2"].StatusType)
}

func (s *AssetAdminServiceTestSuite) TestRealizeCashflow() {
	s.store.cashflows["cf1"] = domain.Cashflow{
		ID: "cf1", AccountID: "test", Currency: "JPY",
		Amount: decimal.NewFromInt(500), CashflowType: domain.CashflowCashIn,
		EventDay: baseDay.AddDate(0, 0, -2), ValueDay: baseDay,
		StatusType: domain.StatusUnprocessed,
	}
	s.store.cashflows["cf2"] = domain.Cashflow{
		ID: "cf2", AccountID: "test", Currency: "JPY",
		Amount: decimal.NewFromInt(900), CashflowType: domain.CashflowCashIn,
		EventDay: baseDay, ValueDay: baseDay.AddDate(0, 0, 2),
		StatusType: domain.StatusUnprocessed,
	}

	result := s.service.RealizeCashflow(context.Background())
	s.Equal(portssvc.BatchResult{Targets: 1, Processed: 1, Errored: 0}, result)

	s.Equal(domain.StatusProcessed, s.store.cashflows["cf1"].StatusType)
	s.Equal(domain.StatusUnprocessed, s.store.cashflows["cf2"].StatusType)
	s.True(decimal.NewFromInt(500).Equal(s.balanceAmount("test", "JPY")))

	// A second run finds nothing left to do.
	result = s.service.RealizeCashflow(context.Background())
	s.Equal(portssvc.BatchResult{}, result)
	s.True(decimal.NewFromInt(500).Equal(s.balanceAmount("test", "JPY")))
}

func (s *AssetAdminServiceTestSuite) TestFindCashInOut() {
	s.store.cashInOuts["CIO1"] = s.dueWithdrawal("CIO1", baseDay.AddDate(0, 0, 3))
	processed := s.dueWithdrawal("CIO2", baseDay.AddDate(0, 0, 3))
	processed.StatusType = domain.StatusProcessed
	s.store.cashInOuts["CIO2"] = processed
	other := s.dueWithdrawal("CIO3", baseDay.AddDate(0, 0, 3))
	other.Currency = "USD"
	s.store.cashInOuts["CIO3"] = other

	list, err := s.service.FindCashInOut(context.Background(), portsrepo.FindCashInOut{
		Currency:    "JPY",
		StatusTypes: []domain.ActionStatusType{domain.StatusUnprocessed},
	})
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("CIO1", list[0].ID)
}

func (s *AssetAdminServiceTestSuite) TestFindCashInOut_NoFiltersReturnsAll() {
	s.store.cashInOuts["CIO1"] = s.dueWithdrawal("CIO1", baseDay.AddDate(0, 0, 3))
	usd := s.dueWithdrawal("CIO2", baseDay.AddDate(0, 0, 3))
	usd.Currency = "USD"
	s.store.cashInOuts["CIO2"] = usd

	list, err := s.service.FindCashInOut(context.Background(), portsrepo.FindCashInOut{})
	s.Require().NoError(err)
	s.Len(list, 2)
}

func (s *AssetAdminServiceTestSuite) TestCloseCashOut_PanicCountedAndLogged() {
	s.store.cashInOuts["CIO1"] = s.dueWithdrawal("CIO1", baseDay.AddDate(0, 0, 3))

	uow := &hookUow{store: s.store, onDo: func(int) { panic("connection lost") }}
	tk := timekeeper.NewAt(baseDay, func() time.Time { return baseNow })
	svc := services.NewAssetAdminService(uow, lock.NewManager(), tk, idgen.NewMemory())

	handler := &recordingHandler{}
	prev := slog.Default()
	slog.SetDefault(slog.New(handler))
	defer slog.SetDefault(prev)

	result := svc.CloseCashOut(context.Background())
	s.Equal(portssvc.BatchResult{Targets: 1, Processed: 0, Errored: 1}, result)
	s.Equal(domain.StatusUnprocessed, s.store.cashInOuts["CIO1"].StatusType)
	s.True(handler.has(slog.LevelError, "Failure closing cash out"))
}

func (s *AssetAdminServiceTestSuite) TestCloseCashOut_SecondaryFailureLoggedAsWarning() {
	// CIO1 fails processing (passed settlement day); deleting the row before
	// the fallback transaction makes the ERROR transition itself fail too.
	s.store.cashInOuts["CIO1"] = s.dueWithdrawal("CIO1", baseDay.AddDate(0, 0, -1))

	uow := &hookUow{store: s.store}
	uow.onDo = func(call int) {
		if call == 2 {
			delete(s.store.cashInOuts, "CIO1")
		}
	}
	tk := timekeeper.NewAt(baseDay, func() time.Time { return baseNow })
	svc := services.NewAssetAdminService(uow, lock.NewManager(), tk, idgen.NewMemory())

	handler := &recordingHandler{}
	prev := slog.Default()
	slog.SetDefault(slog.New(handler))
	defer slog.SetDefault(prev)

	result := svc.CloseCashOut(context.Background())
	s.Equal(portssvc.BatchResult{Targets: 1, Processed: 0, Errored: 1}, result)
	s.True(handler.has(slog.LevelError, "Failure closing cash out"))
	s.True(handler.has(slog.LevelWarn, "Failure marking cash out errored"))
}

func TestAssetAdminServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AssetAdminServiceTestSuite))
}
