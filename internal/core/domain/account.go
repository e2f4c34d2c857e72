package domain

// AccountType defines the fundamental accounting type of a ledger account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValidAccountType reports whether t is one of the closed enumeration values.
func IsValidAccountType(t AccountType) bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account represents an entry in the chart of accounts.
// Only postable (leaf) accounts may receive journal lines.
type Account struct {
	AccountID   string
	AccountCode string // unique, human-assigned
	Name        string
	AccountType AccountType
	IsPostable  bool
	AuditFields
}
