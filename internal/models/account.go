package models

// Account represents a customer row in the account table.
type Account struct {
	AccountID  string `db:"account_id"`
	Name       string `db:"name"`
	Mail       string `db:"mail"`
	StatusType string `db:"status_type"`
}

// FiAccount represents a customer's financial-institution routing row,
// keyed by usage category and currency.
type FiAccount struct {
	FiAccountRowID string `db:"id"`
	AccountID      string `db:"account_id"`
	Category       string `db:"category"`
	Currency       string `db:"currency"`
	FiCode         string `db:"fi_code"`
	FiAccountID    string `db:"fi_account_id"`
}

// SelfFiAccount represents the service company's own settlement account row.
type SelfFiAccount struct {
	SelfFiAccountRowID string `db:"id"`
	Category           string `db:"category"`
	Currency           string `db:"currency"`
	FiCode             string `db:"fi_code"`
	FiAccountID        string `db:"fi_account_id"`
}
