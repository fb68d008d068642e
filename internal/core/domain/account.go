package domain

// AccountType defines the fundamental accounting type of an account.
// It is used for reporting and presentation only; the ledger does not
// enforce type-specific rules.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account represents an entry in the chart of accounts.
// AccountCode is the stable external-facing identifier (e.g. "5010");
// AccountID is the internal primary key. Code, name and type become
// immutable once any journal line references the account.
type Account struct {
	AccountID   string      `json:"accountID"`   // Primary Key (UUID)
	AccountCode string      `json:"accountCode"` // Unique, stable, external-facing
	Name        string      `json:"name"`        // Display name
	AccountType AccountType `json:"accountType"` // ASSET, LIABILITY, etc.
	Description string      `json:"description"` // Nullable user description
	IsActive    bool        `json:"isActive"`
	AuditFields
}
