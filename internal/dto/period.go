package dto

import (
	"time"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePeriodRequest defines the data needed to create an accounting period.
type CreatePeriodRequest struct {
	PeriodName string `json:"period_name" binding:"required"`
	StartDate  Date   `json:"start_date" binding:"required"`
	EndDate    Date   `json:"end_date" binding:"required"`
}

// UpdatePeriodRequest defines the data allowed for updating a period.
type UpdatePeriodRequest struct {
	PeriodName *string `json:"period_name"`
	StartDate  *Date   `json:"start_date"`
	EndDate    *Date   `json:"end_date"`
}

// ChangeStatusRequest carries the target status for the administrative override.
type ChangeStatusRequest struct {
	Status domain.PeriodStatus `json:"status" binding:"required,oneof=OPEN VALIDATING CALCULATING LOCKED REOPENED"`
}

// PeriodResponse defines the data returned for a period.
type PeriodResponse struct {
	ID               string              `json:"id"`
	PeriodName       string              `json:"period_name"`
	StartDate        Date                `json:"start_date"`
	EndDate          Date                `json:"end_date"`
	Status           domain.PeriodStatus `json:"status"`
	Dirty            bool                `json:"dirty"`
	LastValidatedAt  *time.Time          `json:"last_validated_at,omitempty"`
	LastCalculatedAt *time.Time          `json:"last_calculated_at,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	CreatedBy        string              `json:"created_by"`
	UpdatedAt        time.Time           `json:"updated_at"`
	UpdatedBy        string              `json:"updated_by"`
}

// ToPeriodResponse converts a domain.Period to PeriodResponse.
func ToPeriodResponse(p *domain.Period) PeriodResponse {
	return PeriodResponse{
		ID:               p.PeriodID,
		PeriodName:       p.PeriodName,
		StartDate:        NewDate(p.StartDate),
		EndDate:          NewDate(p.EndDate),
		Status:           p.Status,
		Dirty:            p.Dirty,
		LastValidatedAt:  p.LastValidatedAt,
		LastCalculatedAt: p.LastCalculatedAt,
		CreatedAt:        p.CreatedAt,
		CreatedBy:        p.CreatedBy,
		UpdatedAt:        p.LastUpdatedAt,
		UpdatedBy:        p.LastUpdatedBy,
	}
}

// ToListPeriodResponse converts a slice of domain.Period to responses.
func ToListPeriodResponse(periods []domain.Period) []PeriodResponse {
	res := make([]PeriodResponse, len(periods))
	for i := range periods {
		res[i] = ToPeriodResponse(&periods[i])
	}
	return res
}

// ViolationResponse is one consistency failure in a validation payload.
type ViolationResponse struct {
	Code        domain.ViolationCode `json:"code"`
	EntryID     string               `json:"entry_id"`
	EntryNumber string               `json:"entry_number"`
	LineID      string               `json:"line_id,omitempty"`
	Message     string               `json:"message"`
}

// ValidationResultResponse is the structured payload of a validate call.
type ValidationResultResponse struct {
	Message     string              `json:"message"`
	PeriodID    string              `json:"period_id"`
	Clean       bool                `json:"clean"`
	EntriesRead int                 `json:"entries_read"`
	ValidatedAt time.Time           `json:"validated_at"`
	Violations  []ViolationResponse `json:"violations"`
}

// ToValidationResultResponse converts a domain.ValidationResult into the
// payload shape the front end renders.
func ToValidationResultResponse(r *domain.ValidationResult) ValidationResultResponse {
	out := ValidationResultResponse{
		Message:     "Period validated successfully",
		PeriodID:    r.PeriodID,
		Clean:       r.Clean,
		EntriesRead: r.EntriesRead,
		ValidatedAt: r.ValidatedAt,
		Violations:  make([]ViolationResponse, len(r.Violations)),
	}
	if !r.Clean {
		out.Message = "Period validation found violations"
	}
	for i, v := range r.Violations {
		out.Violations[i] = ViolationResponse{
			Code:        v.Code,
			EntryID:     v.EntryID,
			EntryNumber: v.EntryNumber,
			LineID:      v.LineID,
			Message:     v.Message,
		}
	}
	return out
}

// AccountBalanceResponse is one row of a balance report payload.
type AccountBalanceResponse struct {
	AccountID      string          `json:"account_id"`
	AccountCode    string          `json:"account_code"`
	AccountName    string          `json:"account_name"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	TotalDebits    decimal.Decimal `json:"total_debits"`
	TotalCredits   decimal.Decimal `json:"total_credits"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// BalanceReportResponse is the structured payload of a calculate call.
type BalanceReportResponse struct {
	Message      string                   `json:"message"`
	PeriodID     string                   `json:"period_id"`
	CalculatedAt time.Time                `json:"calculated_at"`
	Balances     []AccountBalanceResponse `json:"balances"`
}

// ToBalanceReportResponse converts a domain.BalanceReport to the payload shape.
func ToBalanceReportResponse(r *domain.BalanceReport) BalanceReportResponse {
	out := BalanceReportResponse{
		Message:      "Period calculated successfully",
		PeriodID:     r.PeriodID,
		CalculatedAt: r.CalculatedAt,
		Balances:     make([]AccountBalanceResponse, len(r.Balances)),
	}
	for i, b := range r.Balances {
		out.Balances[i] = AccountBalanceResponse{
			AccountID:      b.AccountID,
			AccountCode:    b.AccountCode,
			AccountName:    b.AccountName,
			OpeningBalance: b.OpeningBalance,
			TotalDebits:    b.TotalDebits,
			TotalCredits:   b.TotalCredits,
			ClosingBalance: b.ClosingBalance,
		}
	}
	return out
}

// PeriodActionResponse wraps a period state change (lock, status override).
type PeriodActionResponse struct {
	Message string         `json:"message"`
	Period  PeriodResponse `json:"period"`
}
