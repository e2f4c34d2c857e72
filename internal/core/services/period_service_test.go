package services_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ikicamilo/oceanre-backend/internal/apperrors"
	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	portssvc "github.com/ikicamilo/oceanre-backend/internal/core/ports/services"
	"github.com/ikicamilo/oceanre-backend/internal/core/services"
	"github.com/ikicamilo/oceanre-backend/internal/dto"
)

type PeriodServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo  *MockPeriodRepository
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.PeriodSvcFacade

	userID       string
	period       domain.Period
	cashAccount  domain.Account
	salesAccount domain.Account
}

func (s *PeriodServiceTestSuite) SetupTest() {
	s.mockPeriodRepo = new(MockPeriodRepository)
	s.mockJournalRepo = new(MockJournalRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.service = services.NewPeriodService(s.mockPeriodRepo, s.mockJournalRepo, s.mockAccountRepo, services.NewPeriodGuard())

	s.userID = uuid.NewString()
	s.period = domain.Period{
		PeriodID:   uuid.NewString(),
		PeriodName: "2025-01",
		StartDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:     domain.PeriodOpen,
	}
	s.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		AccountCode: "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsPostable:  true,
	}
	s.salesAccount = domain.Account{
		AccountID:   uuid.NewString(),
		AccountCode: "4000",
		Name:        "Sales Revenue",
		AccountType: domain.Revenue,
		IsPostable:  true,
	}
}

func (s *PeriodServiceTestSuite) balancedEntry() (domain.JournalEntry, []domain.JournalLine) {
	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryNumber: "JE-001",
		PostingDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		PeriodID:    s.period.PeriodID,
	}
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entry.EntryID, AccountID: s.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
		{LineID: uuid.NewString(), EntryID: entry.EntryID, AccountID: s.salesAccount.AccountID, Credit: decimal.NewFromInt(100)},
	}
	return entry, lines
}

func (s *PeriodServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		s.cashAccount.AccountID:  s.cashAccount,
		s.salesAccount.AccountID: s.salesAccount,
	}
}

func (s *PeriodServiceTestSuite) TestCreatePeriodSuccess() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		PeriodName: "2025-02",
		StartDate:  dto.NewDate(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:    dto.NewDate(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)),
	}

	s.mockPeriodRepo.On("FindOverlappingPeriod", ctx, req.StartDate.Time, req.EndDate.Time, "").Return(nil, nil).Once()
	s.mockPeriodRepo.On("SavePeriod", ctx, mock.AnythingOfType("domain.Period")).Return(nil).Once()

	created, err := s.service.CreatePeriod(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(created)
	s.NotEmpty(created.PeriodID)
	s.Equal(domain.PeriodOpen, created.Status)
	s.False(created.Dirty)
	s.Equal(s.userID, created.CreatedBy)
	s.mockPeriodRepo.AssertExpectations(s.T())
}

func (s *PeriodServiceTestSuite) TestCreatePeriodDatesInverted() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		PeriodName: "backwards",
		StartDate:  dto.NewDate(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)),
		EndDate:    dto.NewDate(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)),
	}

	_, err := s.service.CreatePeriod(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockPeriodRepo.AssertNotCalled(s.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (s *PeriodServiceTestSuite) TestCreatePeriodOverlapping() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		PeriodName: "2025-01-again",
		StartDate:  dto.NewDate(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)),
		EndDate:    dto.NewDate(time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)),
	}

	s.mockPeriodRepo.On("FindOverlappingPeriod", ctx, req.StartDate.Time, req.EndDate.Time, "").Return(&s.period, nil).Once()

	_, err := s.service.CreatePeriod(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Contains(err.Error(), s.period.PeriodName)
	s.mockPeriodRepo.AssertNotCalled(s.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (s *PeriodServiceTestSuite) TestValidatePeriodClean() {
	ctx := context.Background()
	entry, lines := s.balancedEntry()

	s.mockPeriodRepo.On("CompareAndSwapStatus", ctx, s.period.PeriodID,
		[]domain.PeriodStatus{domain.PeriodOpen, domain.PeriodReopened},
		domain.PeriodValidating, s.userID, mock.AnythingOfType("time.Time")).
		Return(&s.period, nil).Once()
	s.mockPeriodRepo.On("CompareAndSwapStatus", mock.Anything, s.period.PeriodID,
		[]domain.PeriodStatus{domain.PeriodValidating},
		domain.PeriodOpen, s.userID, mock.AnythingOfType("time.Time")).
		Return(&s.period, nil).Once()

	s.mockJournalRepo.On("ListEntriesByPeriod", ctx, s.period.PeriodID).Return([]domain.JournalEntry{entry}, nil).Once()
	s.mockJournalRepo.On("FindLinesByEntryIDs", ctx, []string{entry.EntryID}).
		Return(map[string][]domain.JournalLine{entry.EntryID: lines}, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(s.accountsMap(), nil).Once()

	s.mockPeriodRepo.On("SetLifecycleMarks", ctx, s.period.PeriodID, false,
		mock.AnythingOfType("*time.Time"), (*time.Time)(nil), s.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	result, err := s.service.ValidatePeriod(ctx, s.period.PeriodID, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(result)
	s.True(result.Clean)
	s.Equal(1, result.EntriesRead)
	s.Empty(result.Violations)
	s.mockPeriodRepo.AssertExpectations(s.T())
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *PeriodServiceTestSuite) TestValidatePeriodUnbalancedEntry() {
	ctx := context.Background()
	entry, lines := s.balancedEntry()
	// An extra debit leg tips the entry to 150 debit vs 100 credit.
	lines = append(lines, domain.JournalLine{
		LineID:    uuid.NewString(),
		EntryID:   entry.EntryID,
		AccountID: s.cashAccount.AccountID,
		Debit:     decimal.NewFromInt(50),
	})

	s.mockPeriodRepo.On("CompareAndSwapStatus", ctx, s.period.PeriodID,
		[]domain.PeriodStatus{domain.PeriodOpen, domain.PeriodReopened},
		domain.PeriodValidating, s.userID, mock.AnythingOfType("time.Time")).
		Return(&s.period, nil).Once()
	s.mockPeriodRepo.On("CompareAndSwapStatus", mock.Anything, s.period.PeriodID,
		[]domain.PeriodStatus{domain.PeriodValidating},
		domain.PeriodOpen, s.userID, mock.AnythingOfType("time.Time")).
		Return(&s.period, nil).Once()

	s.mockJournalRepo.On("ListEntriesByPeriod", ctx, s.period.PeriodID).Return([]domain.JournalEntry{entry}, nil).Once()
	s.mockJournalRepo.On("FindLinesByEntryIDs", ctx, []string{entry.EntryID}).
		Return(map[string][]domain.JournalLine{entry.EntryID: lines}, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(s.accountsMap(), nil).Once()

	result, err := s.service.ValidatePeriod(ctx, s.period.PeriodID, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(result)
	s.False(result.Clean)
	s.Require().Len(result.Violations, 1)
	s.Equal(domain.ViolationUnbalancedEntry, result.Violations[0].Code)
	s.Equal(entry.EntryID, result.Violations[0].EntryID)
	s.Contains(result.Violations[0].Message, "150.00 debit vs 100.00 credit")
	// A dirty pass must not arm the period for calculation.
	s.mockPeriodRepo.AssertNotCalled(s.T(), "SetLifecycleMarks",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PeriodServiceTestSuite) TestValidatePeriodDateOutOfRange() {
	ctx := context.Background()
	entry, lines := s.balancedEntry()
	entry.PostingDate = time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC)

	s.mockPeriodRepo.On("CompareAndSwapStatus", ctx, s.period.PeriodID,
		[]domain.PeriodStatus{domain.PeriodOpen, domain.PeriodReopened},
		domain.PeriodValidating, s.userID, mock.AnythingOfType("time.Time")).
		Return(&s.period, nil).Once()
	s.mockPeriodRepo.On("CompareAndSwapStatus", mock.Anything, s.period.PeriodID,
		[]domain.PeriodStatus{domain.PeriodValidating},
		domain.PeriodOpen, s.userID, mock.AnythingOfType("time.Time")).
		Return(&s.period, nil).Once()

	s.mockJournalRepo.On("ListEntriesByPeriod", ctx, s.period.PeriodID).Return([]domain.JournalEntry{entry}, nil).Once()
	s.mockJournalRepo.On("FindLinesByEntryIDs", ctx, []string{entry.EntryID}).
		Return(map[string][]domain.JournalLine{entry.EntryID: lines}, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(s.accountsMap(), nil).Once()

	result, err := s.service.ValidatePeriod(ctx, s.period.PeriodID, s.userID)

	s.Require().NoError(err)
	s.False(result.Clean)
	s.Require().Len(result.Violations, 1)
	s.Equal(domain.ViolationDateOutOfRange, result.Violations[0].Code)
}

func (s *PeriodServiceTestSuite) TestValidatePeriodRejectedWhenLocked() {
	ctx := context.Background()

	s.mockPeriodRepo.On("CompareAndSwapStatus", ctx, s.period.PeriodID,
		[]domain.PeriodStatus{domain.PeriodOpen, domain.PeriodReopened},
		domain.PeriodValidating, s.userID, mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrConflict).Once()

	_, err := s.service.ValidatePeriod(ctx, s.period.PeriodID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockJournalRepo.AssertNotCalled(s.T(), "ListEntriesByPeriod", mock.Anything, mock.Anything)
}

func (s *PeriodServiceTestSuite) TestCalculatePeriodSuccess() {
	ctx := context.Background()
	validatedAt := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	period := s.period
	period.LastValidatedAt = &validatedAt

	entry, lines := s.balancedEntry()

	s.mockPeriodRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(&period, nil).Once()
	s.mockPeriodRepo.On("CompareAndSwapStatus", ctx, period.PeriodID,
		[]domain.PeriodStatus{domain.PeriodOpen, domain.PeriodReopened},
		domain.PeriodCalculating, s.userID, mock.AnythingOfType("time.Time")).
		Return(&period, nil).Once()
	s.mockPeriodRepo.On("CompareAndSwapStatus", mock.Anything, period.PeriodID,
		[]domain.PeriodStatus{domain.PeriodCalculating},
		domain.PeriodOpen, s.userID, mock.AnythingOfType("time.Time")).
		Return(&period, nil).Once()

	s.mockJournalRepo.On("ListEntriesByPeriod", ctx, period.PeriodID).Return([]domain.JournalEntry{entry}, nil).Once()
	s.mockJournalRepo.On("FindLinesByEntryIDs", ctx, []string{entry.EntryID}).
		Return(map[string][]domain.JournalLine{entry.EntryID: lines}, nil).Once()
	s.mockPeriodRepo.On("FindPrecedingPeriod", ctx, period.StartDate).Return(nil, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(s.accountsMap(), nil).Once()

	s.mockPeriodRepo.On("ReplaceBalanceReport", ctx, mock.AnythingOfType("domain.BalanceReport")).Return(nil).Once()
	s.mockPeriodRepo.On("SetLifecycleMarks", ctx, period.PeriodID, false,
		&validatedAt, mock.AnythingOfType("*time.Time"), s.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	report, err := s.service.CalculatePeriod(ctx, period.PeriodID, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(report)
	s.Require().Len(report.Balances, 2)
	// Sorted by account code: cash (1000) first.
	s.Equal(s.cashAccount.AccountID, report.Balances[0].AccountID)
	s.True(report.Balances[0].ClosingBalance.Equal(decimal.NewFromInt(100)))
	s.Equal(s.salesAccount.AccountID, report.Balances[1].AccountID)
	s.True(report.Balances[1].ClosingBalance.Equal(decimal.NewFromInt(-100)))
	s.mockPeriodRepo.AssertExpectations(s.T())
}

func (s *PeriodServiceTestSuite) TestCalculatePeriodCarriesForwardOpenings() {
	ctx := context.Background()
	validatedAt := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	period := s.period
	period.LastValidatedAt = &validatedAt

	preceding := domain.Period{
		PeriodID:   uuid.NewString(),
		PeriodName: "2024-12",
		StartDate:  time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:     domain.PeriodLocked,
	}
	entry, lines := s.balancedEntry()

	s.mockPeriodRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(&period, nil).Once()
	s.mockPeriodRepo.On("CompareAndSwapStatus", ctx, period.PeriodID,
		[]domain.PeriodStatus{domain.PeriodOpen, domain.PeriodReopened},
		domain.PeriodCalculating, s.userID, mock.AnythingOfType("time.Time")).
		Return(&period, nil).Once()
	s.mockPeriodRepo.On("CompareAndSwapStatus", mock.Anything, period.PeriodID,
		[]domain.PeriodStatus{domain.PeriodCalculating},
		domain.PeriodOpen, s.userID, mock.AnythingOfType("time.Time")).
		Return(&period, nil).Once()

	s.mockJournalRepo.On("ListEntriesByPeriod", ctx, period.PeriodID).Return([]domain.JournalEntry{entry}, nil).Once()
	s.mockJournalRepo.On("FindLinesByEntryIDs", ctx, []string{entry.EntryID}).
		Return(map[string][]domain.JournalLine{entry.EntryID: lines}, nil).Once()
	s.mockPeriodRepo.On("FindPrecedingPeriod", ctx, period.StartDate).Return(&preceding, nil).Once()
	s.mockPeriodRepo.On("FindClosingBalances", ctx, preceding.PeriodID).
		Return(map[string]domain.AccountBalance{
			s.cashAccount.AccountID: {AccountID: s.cashAccount.AccountID, ClosingBalance: decimal.NewFromInt(250)},
		}, nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(s.accountsMap(), nil).Once()

	s.mockPeriodRepo.On("ReplaceBalanceReport", ctx, mock.AnythingOfType("domain.BalanceReport")).Return(nil).Once()
	s.mockPeriodRepo.On("SetLifecycleMarks", ctx, period.PeriodID, false,
		&validatedAt, mock.AnythingOfType("*time.Time"), s.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	report, err := s.service.CalculatePeriod(ctx, period.PeriodID, s.userID)

	s.Require().NoError(err)
	s.Require().Len(report.Balances, 2)
	s.True(report.Balances[0].OpeningBalance.Equal(decimal.NewFromInt(250)))
	s.True(report.Balances[0].ClosingBalance.Equal(decimal.NewFromInt(350)))
}

func (s *PeriodServiceTestSuite) TestCalculatePeriodRequiresCleanValidation() {
	ctx := context.Background()
	period := s.period
	period.Dirty = true

	s.mockPeriodRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(&period, nil).Once()

	_, err := s.service.CalculatePeriod(ctx, period.PeriodID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockPeriodRepo.AssertNotCalled(s.T(), "CompareAndSwapStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PeriodServiceTestSuite) TestLockPeriodSuccess() {
	ctx := context.Background()
	validatedAt := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	calculatedAt := validatedAt.Add(time.Minute)
	period := s.period
	period.LastValidatedAt = &validatedAt
	period.LastCalculatedAt = &calculatedAt

	locked := period
	locked.Status = domain.PeriodLocked

	s.mockPeriodRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(&period, nil).Once()
	s.mockPeriodRepo.On("CompareAndSwapStatus", ctx, period.PeriodID,
		[]domain.PeriodStatus{domain.PeriodOpen, domain.PeriodReopened},
		domain.PeriodLocked, s.userID, mock.AnythingOfType("time.Time")).
		Return(&period, nil).Once()
	s.mockPeriodRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(&locked, nil).Once()

	result, err := s.service.LockPeriod(ctx, period.PeriodID, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.PeriodLocked, result.Status)
	s.mockPeriodRepo.AssertExpectations(s.T())
}

func (s *PeriodServiceTestSuite) TestLockPeriodWithoutCurrentCalculation() {
	ctx := context.Background()
	validatedAt := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	period := s.period
	period.LastValidatedAt = &validatedAt // calculated never ran

	s.mockPeriodRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(&period, nil).Once()

	_, err := s.service.LockPeriod(ctx, period.PeriodID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *PeriodServiceTestSuite) TestChangeStatusRejectsTransientTarget() {
	ctx := context.Background()

	_, err := s.service.ChangePeriodStatus(ctx, s.period.PeriodID, domain.PeriodValidating, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockPeriodRepo.AssertNotCalled(s.T(), "FindPeriodByID", mock.Anything, mock.Anything)
}

func (s *PeriodServiceTestSuite) TestChangeStatusReopensLockedPeriod() {
	ctx := context.Background()
	locked := s.period
	locked.Status = domain.PeriodLocked
	reopened := s.period
	reopened.Status = domain.PeriodReopened

	s.mockPeriodRepo.On("FindPeriodByID", ctx, locked.PeriodID).Return(&locked, nil).Once()
	s.mockPeriodRepo.On("CompareAndSwapStatus", ctx, locked.PeriodID,
		[]domain.PeriodStatus{domain.PeriodLocked},
		domain.PeriodReopened, s.userID, mock.AnythingOfType("time.Time")).
		Return(&locked, nil).Once()
	s.mockPeriodRepo.On("FindPeriodByID", ctx, locked.PeriodID).Return(&reopened, nil).Once()

	result, err := s.service.ChangePeriodStatus(ctx, locked.PeriodID, domain.PeriodReopened, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.PeriodReopened, result.Status)
	s.mockPeriodRepo.AssertExpectations(s.T())
}

func (s *PeriodServiceTestSuite) TestChangeStatusNoopWhenAlreadyThere() {
	ctx := context.Background()

	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.period.PeriodID).Return(&s.period, nil).Once()

	result, err := s.service.ChangePeriodStatus(ctx, s.period.PeriodID, domain.PeriodOpen, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.PeriodOpen, result.Status)
	s.mockPeriodRepo.AssertNotCalled(s.T(), "CompareAndSwapStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PeriodServiceTestSuite) TestDeletePeriodWithEntries() {
	ctx := context.Background()

	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.period.PeriodID).Return(&s.period, nil).Once()
	s.mockJournalRepo.On("ListEntriesByPeriod", ctx, s.period.PeriodID).
		Return([]domain.JournalEntry{{EntryID: uuid.NewString()}}, nil).Once()

	err := s.service.DeletePeriod(ctx, s.period.PeriodID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockPeriodRepo.AssertNotCalled(s.T(), "DeletePeriod", mock.Anything, mock.Anything)
}

func (s *PeriodServiceTestSuite) TestConcurrentValidateCallsSerialize() {
	entry, lines := s.balancedEntry()

	var inFlight int32
	var overlapped atomic.Bool

	s.mockPeriodRepo.On("CompareAndSwapStatus", mock.Anything, s.period.PeriodID,
		[]domain.PeriodStatus{domain.PeriodOpen, domain.PeriodReopened},
		domain.PeriodValidating, s.userID, mock.AnythingOfType("time.Time")).
		Return(&s.period, nil).Times(2)
	s.mockPeriodRepo.On("CompareAndSwapStatus", mock.Anything, s.period.PeriodID,
		[]domain.PeriodStatus{domain.PeriodValidating},
		domain.PeriodOpen, s.userID, mock.AnythingOfType("time.Time")).
		Return(&s.period, nil).Times(2)

	s.mockJournalRepo.On("ListEntriesByPeriod", mock.Anything, s.period.PeriodID).
		Run(func(args mock.Arguments) {
			if atomic.AddInt32(&inFlight, 1) > 1 {
				overlapped.Store(true)
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
		}).
		Return([]domain.JournalEntry{entry}, nil).Times(2)
	s.mockJournalRepo.On("FindLinesByEntryIDs", mock.Anything, []string{entry.EntryID}).
		Return(map[string][]domain.JournalLine{entry.EntryID: lines}, nil).Times(2)
	s.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.AnythingOfType("[]string")).
		Return(s.accountsMap(), nil).Times(2)
	s.mockPeriodRepo.On("SetLifecycleMarks", mock.Anything, s.period.PeriodID, false,
		mock.AnythingOfType("*time.Time"), (*time.Time)(nil), s.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Times(2)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.service.ValidatePeriod(context.Background(), s.period.PeriodID, s.userID)
		}(i)
	}
	wg.Wait()

	s.Require().NoError(errs[0])
	s.Require().NoError(errs[1])
	s.False(overlapped.Load(), "two validation scans of the same period ran at the same time")
	s.mockPeriodRepo.AssertExpectations(s.T())
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *PeriodServiceTestSuite) TestCalculatePeriodIdempotent() {
	ctx := context.Background()
	validatedAt := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	period := s.period
	period.LastValidatedAt = &validatedAt

	entry, lines := s.balancedEntry()

	s.mockPeriodRepo.On("FindPeriodByID", ctx, period.PeriodID).Return(&period, nil).Times(2)
	s.mockPeriodRepo.On("CompareAndSwapStatus", ctx, period.PeriodID,
		[]domain.PeriodStatus{domain.PeriodOpen, domain.PeriodReopened},
		domain.PeriodCalculating, s.userID, mock.AnythingOfType("time.Time")).
		Return(&period, nil).Times(2)
	s.mockPeriodRepo.On("CompareAndSwapStatus", mock.Anything, period.PeriodID,
		[]domain.PeriodStatus{domain.PeriodCalculating},
		domain.PeriodOpen, s.userID, mock.AnythingOfType("time.Time")).
		Return(&period, nil).Times(2)

	s.mockJournalRepo.On("ListEntriesByPeriod", ctx, period.PeriodID).
		Return([]domain.JournalEntry{entry}, nil).Times(2)
	s.mockJournalRepo.On("FindLinesByEntryIDs", ctx, []string{entry.EntryID}).
		Return(map[string][]domain.JournalLine{entry.EntryID: lines}, nil).Times(2)
	s.mockPeriodRepo.On("FindPrecedingPeriod", ctx, period.StartDate).Return(nil, nil).Times(2)
	s.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(s.accountsMap(), nil).Times(2)
	s.mockPeriodRepo.On("ReplaceBalanceReport", ctx, mock.AnythingOfType("domain.BalanceReport")).
		Return(nil).Times(2)
	s.mockPeriodRepo.On("SetLifecycleMarks", ctx, period.PeriodID, false,
		&validatedAt, mock.AnythingOfType("*time.Time"), s.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Times(2)

	first, err := s.service.CalculatePeriod(ctx, period.PeriodID, s.userID)
	s.Require().NoError(err)
	second, err := s.service.CalculatePeriod(ctx, period.PeriodID, s.userID)
	s.Require().NoError(err)

	s.Require().Len(second.Balances, len(first.Balances))
	for i := range first.Balances {
		s.Equal(first.Balances[i].AccountID, second.Balances[i].AccountID)
		s.True(first.Balances[i].OpeningBalance.Equal(second.Balances[i].OpeningBalance))
		s.True(first.Balances[i].TotalDebits.Equal(second.Balances[i].TotalDebits))
		s.True(first.Balances[i].TotalCredits.Equal(second.Balances[i].TotalCredits))
		s.True(first.Balances[i].ClosingBalance.Equal(second.Balances[i].ClosingBalance))
	}
	s.mockPeriodRepo.AssertExpectations(s.T())
}

func (s *PeriodServiceTestSuite) TestValidatePeriodRevertsWhenCallerDisconnects() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.mockPeriodRepo.On("CompareAndSwapStatus", ctx, s.period.PeriodID,
		[]domain.PeriodStatus{domain.PeriodOpen, domain.PeriodReopened},
		domain.PeriodValidating, s.userID, mock.AnythingOfType("time.Time")).
		Return(&s.period, nil).Once()

	// The client drops mid-scan.
	s.mockJournalRepo.On("ListEntriesByPeriod", ctx, s.period.PeriodID).
		Run(func(args mock.Arguments) { cancel() }).
		Return(nil, context.Canceled).Once()

	// The revert must still run, on a context the cancellation cannot reach.
	s.mockPeriodRepo.On("CompareAndSwapStatus",
		mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil }),
		s.period.PeriodID,
		[]domain.PeriodStatus{domain.PeriodValidating},
		domain.PeriodOpen, s.userID, mock.AnythingOfType("time.Time")).
		Return(&s.period, nil).Once()

	_, err := s.service.ValidatePeriod(ctx, s.period.PeriodID, s.userID)

	s.Require().Error(err)
	s.mockPeriodRepo.AssertExpectations(s.T())
	s.mockPeriodRepo.AssertNotCalled(s.T(), "SetLifecycleMarks",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}
