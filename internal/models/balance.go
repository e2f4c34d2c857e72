package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodBalance is one persisted row of a period's calculated balance report.
type PeriodBalance struct {
	PeriodID       string          `db:"period_id"`
	AccountID      string          `db:"account_id"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	TotalDebits    decimal.Decimal `db:"total_debits"`
	TotalCredits   decimal.Decimal `db:"total_credits"`
	ClosingBalance decimal.Decimal `db:"closing_balance"`
	CalculatedAt   time.Time       `db:"calculated_at"`
}
