package models

// Account is the persisted chart-of-accounts row.
type Account struct {
	AccountID   string `db:"account_id"`
	AccountCode string `db:"account_code"`
	Name        string `db:"name"`
	AccountType string `db:"account_type"`
	IsPostable  bool   `db:"is_postable"`
	AuditFields
}
