package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ikicamilo/oceanre-backend/internal/apperrors"
	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	portsrepo "github.com/ikicamilo/oceanre-backend/internal/core/ports/repositories"
	portssvc "github.com/ikicamilo/oceanre-backend/internal/core/ports/services"
	"github.com/ikicamilo/oceanre-backend/internal/dto"
	"github.com/ikicamilo/oceanre-backend/internal/middleware"
)

var (
	ErrPeriodNotPostable  = errors.New("period does not accept postings")
	ErrAccountNotPostable = errors.New("account is not postable")
	ErrAccountNotFound    = errors.New("account not found")
	ErrDateOutsidePeriod  = errors.New("posting date outside the period date range")
)

const defaultEntryPageSize = 50

// journalService provides journal entry and line operations. Every mutation
// runs under the owning period's guard and marks the period dirty, which
// invalidates the lifecycle engine's last validation and calculation.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	periodRepo  portsrepo.PeriodRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	guard       *PeriodGuard
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, periodRepo portsrepo.PeriodRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, guard *PeriodGuard) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		periodRepo:  periodRepo,
		accountRepo: accountRepo,
		guard:       guard,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// checkLineAccounts verifies that every referenced account exists and is postable.
func (s *journalService) checkLineAccounts(ctx context.Context, lines []domain.JournalLine) error {
	idSet := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, seen := idSet[l.AccountID]; !seen {
			idSet[l.AccountID] = struct{}{}
			ids = append(ids, l.AccountID)
		}
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		account, ok := accounts[id]
		if !ok {
			return fmt.Errorf("%w: %s %s", apperrors.ErrValidation, ErrAccountNotFound, id)
		}
		if !account.IsPostable {
			return fmt.Errorf("%w: %s (%s)", apperrors.ErrValidation, ErrAccountNotPostable, account.AccountCode)
		}
	}
	return nil
}

// CreateEntry creates a journal entry with optional initial lines.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	unlock := s.guard.Lock(req.PeriodID)
	defer unlock()

	period, err := s.periodRepo.FindPeriodByID(ctx, req.PeriodID)
	if err != nil {
		return nil, err
	}
	if !period.Status.AcceptsPostings() {
		return nil, fmt.Errorf("%w: %s (status %s)", apperrors.ErrConflict, ErrPeriodNotPostable, period.Status)
	}
	if !period.ContainsDate(req.PostingDate.Time) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDateOutsidePeriod)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}
	entry := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		EntryNumber:     req.EntryNumber,
		PostingDate:     req.PostingDate.Time,
		Description:     req.Description,
		SourceReference: req.SourceReference,
		PeriodID:        req.PeriodID,
		AuditFields:     audit,
	}

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, lr := range req.Lines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entry.EntryID,
			AccountID:   lr.AccountID,
			Debit:       lr.Debit,
			Credit:      lr.Credit,
			AuditFields: audit,
		}
		if err := lines[i].CheckAmounts(); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
	}
	if len(lines) > 0 {
		if err := s.checkLineAccounts(ctx, lines); err != nil {
			return nil, err
		}
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: entry number %q already exists", apperrors.ErrValidation, req.EntryNumber)
		}
		return nil, err
	}
	if err := s.periodRepo.MarkDirty(ctx, req.PeriodID, creatorUserID, now); err != nil {
		return nil, err
	}

	logger.Info("Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("period_id", entry.PeriodID),
		slog.Int("lines", len(lines)))
	return &entry, nil
}

// GetEntryByID retrieves an entry together with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, []domain.JournalLine, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, nil, err
	}
	return entry, lines, nil
}

// ListEntries retrieves a page of entries, optionally filtered by period.
func (s *journalService) ListEntries(ctx context.Context, periodID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = defaultEntryPageSize
	}
	return s.journalRepo.ListEntries(ctx, periodID, limit, nextToken)
}

// UpdateEntry changes header fields of an entry under the period guards.
func (s *journalService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	unlock := s.guard.Lock(entry.PeriodID)
	defer unlock()

	period, err := s.periodRepo.FindPeriodByID(ctx, entry.PeriodID)
	if err != nil {
		return nil, err
	}
	if !period.Status.AcceptsPostings() {
		return nil, fmt.Errorf("%w: %s (status %s)", apperrors.ErrConflict, ErrPeriodNotPostable, period.Status)
	}

	if req.EntryNumber != nil {
		entry.EntryNumber = *req.EntryNumber
	}
	if req.PostingDate != nil {
		entry.PostingDate = req.PostingDate.Time
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.SourceReference != nil {
		entry.SourceReference = *req.SourceReference
	}
	if !period.ContainsDate(entry.PostingDate) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDateOutsidePeriod)
	}

	now := time.Now().UTC()
	entry.TouchAudit(userID, now)
	if err := s.journalRepo.UpdateEntry(ctx, *entry); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: entry number %q already exists", apperrors.ErrValidation, entry.EntryNumber)
		}
		return nil, err
	}
	if err := s.periodRepo.MarkDirty(ctx, entry.PeriodID, userID, now); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntry removes an entry and cascades its lines.
func (s *journalService) DeleteEntry(ctx context.Context, entryID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}

	unlock := s.guard.Lock(entry.PeriodID)
	defer unlock()

	period, err := s.periodRepo.FindPeriodByID(ctx, entry.PeriodID)
	if err != nil {
		return err
	}
	if !period.Status.AcceptsPostings() {
		return fmt.Errorf("%w: %s (status %s)", apperrors.ErrConflict, ErrPeriodNotPostable, period.Status)
	}

	if err := s.journalRepo.DeleteEntry(ctx, entryID); err != nil {
		return err
	}
	if err := s.periodRepo.MarkDirty(ctx, entry.PeriodID, userID, time.Now().UTC()); err != nil {
		return err
	}

	logger.Info("Journal entry deleted", slog.String("entry_id", entryID))
	return nil
}

// AddLine appends a line to an existing entry.
func (s *journalService) AddLine(ctx context.Context, req dto.CreateJournalLineRequest, creatorUserID string) (*domain.JournalLine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.EntryID == "" {
		return nil, fmt.Errorf("%w: journal_entry_id is required", apperrors.ErrValidation)
	}
	entry, err := s.journalRepo.FindEntryByID(ctx, req.EntryID)
	if err != nil {
		return nil, err
	}

	unlock := s.guard.Lock(entry.PeriodID)
	defer unlock()

	period, err := s.periodRepo.FindPeriodByID(ctx, entry.PeriodID)
	if err != nil {
		return nil, err
	}
	if !period.Status.AcceptsPostings() {
		return nil, fmt.Errorf("%w: %s (status %s)", apperrors.ErrConflict, ErrPeriodNotPostable, period.Status)
	}

	now := time.Now().UTC()
	line := domain.JournalLine{
		LineID:    uuid.NewString(),
		EntryID:   entry.EntryID,
		AccountID: req.AccountID,
		Debit:     req.Debit,
		Credit:    req.Credit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := line.CheckAmounts(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}
	if err := s.checkLineAccounts(ctx, []domain.JournalLine{line}); err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveLine(ctx, line); err != nil {
		return nil, err
	}
	if err := s.periodRepo.MarkDirty(ctx, entry.PeriodID, creatorUserID, now); err != nil {
		return nil, err
	}

	logger.Info("Journal line added",
		slog.String("line_id", line.LineID),
		slog.String("entry_id", entry.EntryID),
		slog.String("account_id", line.AccountID))
	return &line, nil
}

// GetLinesByEntry retrieves the lines of an entry.
func (s *journalService) GetLinesByEntry(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	if _, err := s.journalRepo.FindEntryByID(ctx, entryID); err != nil {
		return nil, err
	}
	return s.journalRepo.FindLinesByEntryID(ctx, entryID)
}

// DeleteLine removes a single line.
func (s *journalService) DeleteLine(ctx context.Context, lineID string, userID string) error {
	line, err := s.journalRepo.FindLineByID(ctx, lineID)
	if err != nil {
		return err
	}
	entry, err := s.journalRepo.FindEntryByID(ctx, line.EntryID)
	if err != nil {
		return err
	}

	unlock := s.guard.Lock(entry.PeriodID)
	defer unlock()

	period, err := s.periodRepo.FindPeriodByID(ctx, entry.PeriodID)
	if err != nil {
		return err
	}
	if !period.Status.AcceptsPostings() {
		return fmt.Errorf("%w: %s (status %s)", apperrors.ErrConflict, ErrPeriodNotPostable, period.Status)
	}

	if err := s.journalRepo.DeleteLine(ctx, lineID); err != nil {
		return err
	}
	return s.periodRepo.MarkDirty(ctx, entry.PeriodID, userID, time.Now().UTC())
}
