package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	portsrepo "github.com/ikicamilo/oceanre-backend/internal/core/ports/repositories"
)

// --- Mock PeriodRepository ---

type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepositoryWithTx = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.Period, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context) ([]domain.Period, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) FindOverlappingPeriod(ctx context.Context, start, end time.Time, excludeID string) (*domain.Period, error) {
	args := m.Called(ctx, start, end, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) FindPrecedingPeriod(ctx context.Context, start time.Time) (*domain.Period, error) {
	args := m.Called(ctx, start)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.Period) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) UpdatePeriod(ctx context.Context, period domain.Period) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) DeletePeriod(ctx context.Context, periodID string) error {
	args := m.Called(ctx, periodID)
	return args.Error(0)
}

func (m *MockPeriodRepository) CompareAndSwapStatus(ctx context.Context, periodID string, expected []domain.PeriodStatus, next domain.PeriodStatus, updatedBy string, at time.Time) (*domain.Period, error) {
	args := m.Called(ctx, periodID, expected, next, updatedBy, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) SetLifecycleMarks(ctx context.Context, periodID string, dirty bool, validatedAt, calculatedAt *time.Time, updatedBy string, at time.Time) error {
	args := m.Called(ctx, periodID, dirty, validatedAt, calculatedAt, updatedBy, at)
	return args.Error(0)
}

func (m *MockPeriodRepository) MarkDirty(ctx context.Context, periodID string, updatedBy string, at time.Time) error {
	args := m.Called(ctx, periodID, updatedBy, at)
	return args.Error(0)
}

func (m *MockPeriodRepository) FindBalanceReport(ctx context.Context, periodID string) (*domain.BalanceReport, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceReport), args.Error(1)
}

func (m *MockPeriodRepository) FindClosingBalances(ctx context.Context, periodID string) (map[string]domain.AccountBalance, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.AccountBalance), args.Error(1)
}

func (m *MockPeriodRepository) ReplaceBalanceReport(ctx context.Context, report domain.BalanceReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockPeriodRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockPeriodRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPeriodRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByNumber(ctx context.Context, entryNumber string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, periodID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, periodID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedToken, args.Error(2)
}

func (m *MockJournalRepository) ListEntriesByPeriod(ctx context.Context, periodID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockJournalRepository) FindLineByID(ctx context.Context, lineID string) (*domain.JournalLine, error) {
	args := m.Called(ctx, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) SaveLine(ctx context.Context, line domain.JournalLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteLine(ctx context.Context, lineID string) error {
	args := m.Called(ctx, lineID)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error) {
	args := m.Called(ctx, accountCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) HasPostedLines(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}
