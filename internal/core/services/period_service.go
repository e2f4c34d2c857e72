package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ikicamilo/oceanre-backend/internal/apperrors"
	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	portsrepo "github.com/ikicamilo/oceanre-backend/internal/core/ports/repositories"
	portssvc "github.com/ikicamilo/oceanre-backend/internal/core/ports/services"
	"github.com/ikicamilo/oceanre-backend/internal/dto"
	"github.com/ikicamilo/oceanre-backend/internal/middleware"
)

var (
	ErrPeriodDatesInverted   = errors.New("period start date must be before end date")
	ErrPeriodOverlap         = errors.New("period date range overlaps an existing period")
	ErrPeriodNotIdle         = errors.New("period must be OPEN or REOPENED for this operation")
	ErrValidationStale       = errors.New("period has no current clean validation")
	ErrCalculationStale      = errors.New("period has no current calculation")
	ErrTransientStatusTarget = errors.New("VALIDATING and CALCULATING are only reachable via validate/calculate")
	ErrPeriodHasEntries      = errors.New("period has journal entries posted against it")
)

// periodService owns the accounting period lifecycle: CRUD over period rows
// plus the validate/calculate/lock engine. All lifecycle work for one period
// is serialized through the shared PeriodGuard and double-checked with a
// status compare-and-swap in the repository.
type periodService struct {
	periodRepo  portsrepo.PeriodRepositoryWithTx
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	guard       *PeriodGuard
}

// NewPeriodService creates a new PeriodService.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryWithTx, journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, guard *PeriodGuard) portssvc.PeriodSvcFacade {
	return &periodService{
		periodRepo:  periodRepo,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		guard:       guard,
	}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// CreatePeriod creates a new period in OPEN status.
func (s *periodService) CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.Period, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	start := req.StartDate.Time
	end := req.EndDate.Time
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPeriodDatesInverted)
	}

	overlap, err := s.periodRepo.FindOverlappingPeriod(ctx, start, end, "")
	if err != nil {
		return nil, err
	}
	if overlap != nil {
		return nil, fmt.Errorf("%w: %s (conflicts with %q)", apperrors.ErrValidation, ErrPeriodOverlap, overlap.PeriodName)
	}

	now := time.Now().UTC()
	period := domain.Period{
		PeriodID:   uuid.NewString(),
		PeriodName: req.PeriodName,
		StartDate:  start,
		EndDate:    end,
		Status:     domain.PeriodOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: period name %q already exists", apperrors.ErrValidation, req.PeriodName)
		}
		return nil, err
	}

	logger.Info("Period created", slog.String("period_id", period.PeriodID), slog.String("period_name", period.PeriodName))
	return &period, nil
}

// GetPeriodByID retrieves a single period.
func (s *periodService) GetPeriodByID(ctx context.Context, periodID string) (*domain.Period, error) {
	return s.periodRepo.FindPeriodByID(ctx, periodID)
}

// ListPeriods retrieves all periods ordered by start date.
func (s *periodService) ListPeriods(ctx context.Context) ([]domain.Period, error) {
	return s.periodRepo.ListPeriods(ctx)
}

// UpdatePeriod changes name and/or dates of a period that is not LOCKED.
func (s *periodService) UpdatePeriod(ctx context.Context, periodID string, req dto.UpdatePeriodRequest, userID string) (*domain.Period, error) {
	unlock := s.guard.Lock(periodID)
	defer unlock()

	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status == domain.PeriodLocked || period.Status.IsTransient() {
		return nil, fmt.Errorf("%w: period %s is %s", apperrors.ErrConflict, periodID, period.Status)
	}

	if req.PeriodName != nil {
		period.PeriodName = *req.PeriodName
	}
	if req.StartDate != nil {
		period.StartDate = req.StartDate.Time
	}
	if req.EndDate != nil {
		period.EndDate = req.EndDate.Time
	}
	if !period.StartDate.Before(period.EndDate) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPeriodDatesInverted)
	}

	overlap, err := s.periodRepo.FindOverlappingPeriod(ctx, period.StartDate, period.EndDate, periodID)
	if err != nil {
		return nil, err
	}
	if overlap != nil {
		return nil, fmt.Errorf("%w: %s (conflicts with %q)", apperrors.ErrValidation, ErrPeriodOverlap, overlap.PeriodName)
	}

	period.TouchAudit(userID, time.Now().UTC())
	if err := s.periodRepo.UpdatePeriod(ctx, *period); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: period name %q already exists", apperrors.ErrValidation, period.PeriodName)
		}
		return nil, err
	}
	return period, nil
}

// DeletePeriod removes a period with no journal entries posted against it.
func (s *periodService) DeletePeriod(ctx context.Context, periodID string, userID string) error {
	unlock := s.guard.Lock(periodID)
	defer unlock()

	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return err
	}
	if period.Status == domain.PeriodLocked || period.Status.IsTransient() {
		return fmt.Errorf("%w: period %s is %s", apperrors.ErrConflict, periodID, period.Status)
	}

	entries, err := s.journalRepo.ListEntriesByPeriod(ctx, periodID)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrPeriodHasEntries)
	}

	return s.periodRepo.DeletePeriod(ctx, periodID)
}

// ValidatePeriod runs the read-only consistency pass over every entry of the
// period: per-entry double-entry balance at two decimal places, postable
// accounts, posting dates inside the period range. The period sits in
// VALIDATING while the scan runs and returns to its prior state afterwards,
// whatever the outcome. A clean pass clears the dirty flag and records the
// validation time, arming the period for calculation.
func (s *periodService) ValidatePeriod(ctx context.Context, periodID string, userID string) (*domain.ValidationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	unlock := s.guard.Lock(periodID)
	defer unlock()

	now := time.Now().UTC()
	period, err := s.periodRepo.CompareAndSwapStatus(ctx, periodID,
		[]domain.PeriodStatus{domain.PeriodOpen, domain.PeriodReopened},
		domain.PeriodValidating, userID, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrPeriodNotIdle)
		}
		return nil, err
	}
	priorStatus := period.Status // status before the swap, reported by the repo

	// Whatever happens below, the period must not be left in VALIDATING.
	// The revert runs on a cancellation-free context so a dropped client
	// cannot strand the period in a transient state.
	revertCtx := context.WithoutCancel(ctx)
	defer func() {
		if _, revertErr := s.periodRepo.CompareAndSwapStatus(revertCtx, periodID,
			[]domain.PeriodStatus{domain.PeriodValidating}, priorStatus, userID, time.Now().UTC()); revertErr != nil {
			logger.Error("Failed to revert period status after validation",
				slog.String("period_id", periodID), slog.String("error", revertErr.Error()))
		}
	}()

	result, err := s.scanPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	result.ValidatedAt = now

	if result.Clean {
		if err := s.periodRepo.SetLifecycleMarks(ctx, periodID, false, &now, period.LastCalculatedAt, userID, now); err != nil {
			return nil, err
		}
	}

	logger.Info("Period validated",
		slog.String("period_id", periodID),
		slog.Bool("clean", result.Clean),
		slog.Int("violations", len(result.Violations)),
		slog.Int("entries_read", result.EntriesRead))
	return result, nil
}

// scanPeriod performs the single bounded pass over the period's entries.
func (s *periodService) scanPeriod(ctx context.Context, period *domain.Period) (*domain.ValidationResult, error) {
	entries, err := s.journalRepo.ListEntriesByPeriod(ctx, period.PeriodID)
	if err != nil {
		return nil, err
	}

	entryIDs := make([]string, len(entries))
	for i, e := range entries {
		entryIDs[i] = e.EntryID
	}
	linesByEntry, err := s.journalRepo.FindLinesByEntryIDs(ctx, entryIDs)
	if err != nil {
		return nil, err
	}

	accountIDSet := make(map[string]struct{})
	for _, lines := range linesByEntry {
		for _, l := range lines {
			accountIDSet[l.AccountID] = struct{}{}
		}
	}
	accountIDs := make([]string, 0, len(accountIDSet))
	for id := range accountIDSet {
		accountIDs = append(accountIDs, id)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}

	result := &domain.ValidationResult{
		PeriodID:    period.PeriodID,
		EntriesRead: len(entries),
	}

	for _, entry := range entries {
		lines := linesByEntry[entry.EntryID]

		if !period.ContainsDate(entry.PostingDate) {
			result.Violations = append(result.Violations, domain.Violation{
				Code:        domain.ViolationDateOutOfRange,
				EntryID:     entry.EntryID,
				EntryNumber: entry.EntryNumber,
				Message: fmt.Sprintf("posting date %s outside period range %s..%s",
					entry.PostingDate.Format("2006-01-02"),
					period.StartDate.Format("2006-01-02"),
					period.EndDate.Format("2006-01-02")),
			})
		}

		for _, line := range lines {
			if err := line.CheckAmounts(); err != nil {
				result.Violations = append(result.Violations, domain.Violation{
					Code:        domain.ViolationMalformedLine,
					EntryID:     entry.EntryID,
					EntryNumber: entry.EntryNumber,
					LineID:      line.LineID,
					Message:     err.Error(),
				})
				continue
			}
			account, ok := accounts[line.AccountID]
			if !ok {
				result.Violations = append(result.Violations, domain.Violation{
					Code:        domain.ViolationUnknownAccountRef,
					EntryID:     entry.EntryID,
					EntryNumber: entry.EntryNumber,
					LineID:      line.LineID,
					Message:     fmt.Sprintf("line references unknown account %s", line.AccountID),
				})
				continue
			}
			if !account.IsPostable {
				result.Violations = append(result.Violations, domain.Violation{
					Code:        domain.ViolationNonPostableLine,
					EntryID:     entry.EntryID,
					EntryNumber: entry.EntryNumber,
					LineID:      line.LineID,
					Message:     fmt.Sprintf("account %s (%s) is not postable", account.AccountCode, account.Name),
				})
			}
		}

		if !domain.EntryIsBalanced(lines) {
			debits, credits := domain.EntryTotals(lines)
			result.Violations = append(result.Violations, domain.Violation{
				Code:        domain.ViolationUnbalancedEntry,
				EntryID:     entry.EntryID,
				EntryNumber: entry.EntryNumber,
				Message:     fmt.Sprintf("entry unbalanced: %s debit vs %s credit", debits.StringFixed(domain.MoneyPrecision), credits.StringFixed(domain.MoneyPrecision)),
			})
		}
	}

	result.Clean = len(result.Violations) == 0
	return result, nil
}

// CalculatePeriod aggregates per-account balances for the period, carrying
// forward closing balances from the immediately preceding period, and persists
// the report atomically. It requires a current clean validation and is
// idempotent over an unchanged entry set.
func (s *periodService) CalculatePeriod(ctx context.Context, periodID string, userID string) (*domain.BalanceReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	unlock := s.guard.Lock(periodID)
	defer unlock()

	current, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if !current.ValidationIsCurrent() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrValidationStale)
	}

	now := time.Now().UTC()
	period, err := s.periodRepo.CompareAndSwapStatus(ctx, periodID,
		[]domain.PeriodStatus{domain.PeriodOpen, domain.PeriodReopened},
		domain.PeriodCalculating, userID, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrPeriodNotIdle)
		}
		return nil, err
	}
	priorStatus := period.Status

	revertCtx := context.WithoutCancel(ctx)
	defer func() {
		if _, revertErr := s.periodRepo.CompareAndSwapStatus(revertCtx, periodID,
			[]domain.PeriodStatus{domain.PeriodCalculating}, priorStatus, userID, time.Now().UTC()); revertErr != nil {
			logger.Error("Failed to revert period status after calculation",
				slog.String("period_id", periodID), slog.String("error", revertErr.Error()))
		}
	}()

	report, err := s.buildBalanceReport(ctx, period, now)
	if err != nil {
		return nil, err
	}

	if err := s.periodRepo.ReplaceBalanceReport(ctx, *report); err != nil {
		return nil, err
	}
	if err := s.periodRepo.SetLifecycleMarks(ctx, periodID, false, period.LastValidatedAt, &now, userID, now); err != nil {
		return nil, err
	}

	logger.Info("Period calculated",
		slog.String("period_id", periodID),
		slog.Int("accounts", len(report.Balances)))
	return report, nil
}

// buildBalanceReport aggregates debit/credit sums per account and applies the
// preceding period's closing balances as openings.
func (s *periodService) buildBalanceReport(ctx context.Context, period *domain.Period, now time.Time) (*domain.BalanceReport, error) {
	entries, err := s.journalRepo.ListEntriesByPeriod(ctx, period.PeriodID)
	if err != nil {
		return nil, err
	}
	entryIDs := make([]string, len(entries))
	for i, e := range entries {
		entryIDs[i] = e.EntryID
	}
	linesByEntry, err := s.journalRepo.FindLinesByEntryIDs(ctx, entryIDs)
	if err != nil {
		return nil, err
	}

	// Closing balances of the preceding period become openings here.
	openings := map[string]domain.AccountBalance{}
	preceding, err := s.periodRepo.FindPrecedingPeriod(ctx, period.StartDate)
	if err != nil {
		return nil, err
	}
	if preceding != nil {
		openings, err = s.periodRepo.FindClosingBalances(ctx, preceding.PeriodID)
		if err != nil {
			return nil, err
		}
	}

	type movement struct {
		debits  decimal.Decimal
		credits decimal.Decimal
	}
	movements := make(map[string]movement)
	for _, lines := range linesByEntry {
		// Lines on the same account stay separate rows but pool into one aggregate.
		for _, l := range lines {
			m := movements[l.AccountID]
			m.debits = m.debits.Add(l.Debit)
			m.credits = m.credits.Add(l.Credit)
			movements[l.AccountID] = m
		}
	}

	accountIDSet := make(map[string]struct{}, len(movements)+len(openings))
	for id := range movements {
		accountIDSet[id] = struct{}{}
	}
	for id := range openings {
		accountIDSet[id] = struct{}{}
	}
	accountIDs := make([]string, 0, len(accountIDSet))
	for id := range accountIDSet {
		accountIDs = append(accountIDs, id)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}

	report := &domain.BalanceReport{
		PeriodID:     period.PeriodID,
		CalculatedAt: now,
		Balances:     make([]domain.AccountBalance, 0, len(accountIDs)),
	}
	for _, id := range accountIDs {
		m := movements[id]
		opening := decimal.Zero
		if ob, ok := openings[id]; ok {
			opening = ob.ClosingBalance
		}
		debits := m.debits.Round(domain.MoneyPrecision)
		credits := m.credits.Round(domain.MoneyPrecision)
		balance := domain.AccountBalance{
			AccountID:      id,
			OpeningBalance: opening,
			TotalDebits:    debits,
			TotalCredits:   credits,
			ClosingBalance: opening.Add(debits).Sub(credits),
		}
		if account, ok := accounts[id]; ok {
			balance.AccountCode = account.AccountCode
			balance.AccountName = account.Name
		}
		report.Balances = append(report.Balances, balance)
	}
	sort.Slice(report.Balances, func(i, j int) bool {
		return report.Balances[i].AccountCode < report.Balances[j].AccountCode
	})
	return report, nil
}

// LockPeriod transitions the period to LOCKED. It requires a calculation at
// least as recent as the last clean validation, with no mutation since.
func (s *periodService) LockPeriod(ctx context.Context, periodID string, userID string) (*domain.Period, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	unlock := s.guard.Lock(periodID)
	defer unlock()

	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if !period.CalculationIsCurrent() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrCalculationStale)
	}

	now := time.Now().UTC()
	if _, err := s.periodRepo.CompareAndSwapStatus(ctx, periodID,
		[]domain.PeriodStatus{domain.PeriodOpen, domain.PeriodReopened},
		domain.PeriodLocked, userID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrPeriodNotIdle)
		}
		return nil, err
	}

	logger.Info("Period locked", slog.String("period_id", periodID))
	return s.periodRepo.FindPeriodByID(ctx, periodID)
}

// ChangePeriodStatus force-sets the status, bypassing the normal transition
// guards. Transient targets stay rejected so an external caller cannot park a
// period in VALIDATING/CALCULATING without the corresponding work running.
func (s *periodService) ChangePeriodStatus(ctx context.Context, periodID string, status domain.PeriodStatus, userID string) (*domain.Period, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.IsValidPeriodStatus(status) {
		return nil, fmt.Errorf("%w: unknown period status %q", apperrors.ErrValidation, status)
	}
	if status.IsTransient() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTransientStatusTarget)
	}

	unlock := s.guard.Lock(periodID)
	defer unlock()

	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status == status {
		return period, nil
	}

	now := time.Now().UTC()
	if _, err := s.periodRepo.CompareAndSwapStatus(ctx, periodID,
		[]domain.PeriodStatus{period.Status}, status, userID, now); err != nil {
		return nil, err
	}

	logger.Info("Period status overridden",
		slog.String("period_id", periodID),
		slog.String("from", string(period.Status)),
		slog.String("to", string(status)))
	return s.periodRepo.FindPeriodByID(ctx, periodID)
}

// GetBalanceReport returns the persisted report of the last calculation.
func (s *periodService) GetBalanceReport(ctx context.Context, periodID string) (*domain.BalanceReport, error) {
	if _, err := s.periodRepo.FindPeriodByID(ctx, periodID); err != nil {
		return nil, err
	}
	return s.periodRepo.FindBalanceReport(ctx, periodID)
}
