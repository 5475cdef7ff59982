package domain

// AccountStatusType is the lifecycle status of a customer account.
type AccountStatusType string

const (
	AccountNormal     AccountStatusType = "NORMAL"
	AccountWithdrawal AccountStatusType = "WITHDRAWAL"
)

// Inactive reports whether the account can no longer act.
func (s AccountStatusType) Inactive() bool {
	return s == AccountWithdrawal
}

// Account is a customer of the service.
type Account struct {
	ID         string
	Name       string
	Mail       string
	StatusType AccountStatusType
}

// FiAccount is the financial institution account registered for a customer,
// resolved per usage category and currency when routing a cash movement.
type FiAccount struct {
	ID          string
	AccountID   string
	Category    string
	Currency    string
	FiCode      string
	FiAccountID string
}

// SelfFiAccount is the settlement account of the service company itself,
// resolved per usage category and currency.
type SelfFiAccount struct {
	ID          string
	Category    string
	Currency    string
	FiCode      string
	FiAccountID string
}
