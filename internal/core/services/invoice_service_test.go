package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ikicamilo/oceanre-backend/internal/apperrors"
	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	portsrepo "github.com/ikicamilo/oceanre-backend/internal/core/ports/repositories"
	portssvc "github.com/ikicamilo/oceanre-backend/internal/core/ports/services"
	"github.com/ikicamilo/oceanre-backend/internal/core/services"
	"github.com/ikicamilo/oceanre-backend/internal/dto"
)

// --- Mock InvoiceRepository ---

type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

// --- Mock CustomerRepository ---

type MockCustomerRepository struct {
	mock.Mock
}

var _ portsrepo.CustomerRepositoryFacade = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

func (m *MockCustomerRepository) HasSalesDocuments(ctx context.Context, customerID string) (bool, error) {
	args := m.Called(ctx, customerID)
	return args.Bool(0), args.Error(1)
}

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo  *MockInvoiceRepository
	mockCustomerRepo *MockCustomerRepository
	mockPeriodRepo   *MockPeriodRepository
	service          portssvc.InvoiceSvcFacade

	userID       string
	customer     domain.Customer
	openPeriod   domain.Period
	lockedPeriod domain.Period
}

func (s *InvoiceServiceTestSuite) SetupTest() {
	s.mockInvoiceRepo = new(MockInvoiceRepository)
	s.mockCustomerRepo = new(MockCustomerRepository)
	s.mockPeriodRepo = new(MockPeriodRepository)
	s.service = services.NewInvoiceService(s.mockInvoiceRepo, s.mockCustomerRepo, s.mockPeriodRepo)

	s.userID = uuid.NewString()
	s.customer = domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       "Harbor Logistics",
		Email:      "billing@harborlogistics.example",
	}
	s.openPeriod = domain.Period{
		PeriodID:   uuid.NewString(),
		PeriodName: "2025-01",
		StartDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:     domain.PeriodOpen,
	}
	s.lockedPeriod = domain.Period{
		PeriodID:   uuid.NewString(),
		PeriodName: "2024-12",
		StartDate:  time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:     domain.PeriodLocked,
	}
}

func (s *InvoiceServiceTestSuite) createRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-2025-001",
		IssueDate:     dto.NewDate(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)),
		DueDate:       dto.NewDate(time.Date(2025, 1, 24, 0, 0, 0, 0, time.UTC)),
		CustomerID:    s.customer.CustomerID,
		TotalAmount:   decimal.NewFromFloat(1499.995),
		Currency:      "EUR",
		PeriodID:      s.openPeriod.PeriodID,
	}
}

func (s *InvoiceServiceTestSuite) TestCreateInvoiceSuccess() {
	ctx := context.Background()
	req := s.createRequest()

	s.mockCustomerRepo.On("FindCustomerByID", ctx, s.customer.CustomerID).Return(&s.customer, nil).Once()
	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.openPeriod.PeriodID).Return(&s.openPeriod, nil).Once()
	s.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	invoice, err := s.service.CreateInvoice(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(invoice)
	s.Equal(domain.InvoiceOpen, invoice.Status)
	// Amounts are stored at two decimal places.
	s.True(invoice.TotalAmount.Equal(decimal.NewFromFloat(1500.00)))
	s.mockInvoiceRepo.AssertExpectations(s.T())
}

func (s *InvoiceServiceTestSuite) TestCreateInvoiceInLockedPeriod() {
	ctx := context.Background()
	req := s.createRequest()
	req.PeriodID = s.lockedPeriod.PeriodID

	s.mockCustomerRepo.On("FindCustomerByID", ctx, s.customer.CustomerID).Return(&s.customer, nil).Once()
	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.lockedPeriod.PeriodID).Return(&s.lockedPeriod, nil).Once()

	_, err := s.service.CreateInvoice(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockInvoiceRepo.AssertNotCalled(s.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (s *InvoiceServiceTestSuite) TestCreateInvoiceNonPositiveAmount() {
	ctx := context.Background()
	req := s.createRequest()
	req.TotalAmount = decimal.Zero

	_, err := s.service.CreateInvoice(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockCustomerRepo.AssertNotCalled(s.T(), "FindCustomerByID", mock.Anything, mock.Anything)
}

func (s *InvoiceServiceTestSuite) TestCreateInvoiceDueBeforeIssue() {
	ctx := context.Background()
	req := s.createRequest()
	req.DueDate = dto.NewDate(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))

	_, err := s.service.CreateInvoice(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *InvoiceServiceTestSuite) TestCreateInvoiceUnknownCustomer() {
	ctx := context.Background()
	req := s.createRequest()

	s.mockCustomerRepo.On("FindCustomerByID", ctx, s.customer.CustomerID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.CreateInvoice(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *InvoiceServiceTestSuite) TestUpdateInvoiceInLockedPeriod() {
	ctx := context.Background()
	invoice := domain.Invoice{
		InvoiceID: uuid.NewString(),
		PeriodID:  s.lockedPeriod.PeriodID,
	}
	newNumber := "INV-2025-002"

	s.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(&invoice, nil).Once()
	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.lockedPeriod.PeriodID).Return(&s.lockedPeriod, nil).Once()

	_, err := s.service.UpdateInvoice(ctx, invoice.InvoiceID, dto.UpdateInvoiceRequest{InvoiceNumber: &newNumber}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockInvoiceRepo.AssertNotCalled(s.T(), "UpdateInvoice", mock.Anything, mock.Anything)
}

func (s *InvoiceServiceTestSuite) TestDeleteInvoiceInLockedPeriod() {
	ctx := context.Background()
	invoice := domain.Invoice{
		InvoiceID: uuid.NewString(),
		PeriodID:  s.lockedPeriod.PeriodID,
	}

	s.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(&invoice, nil).Once()
	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.lockedPeriod.PeriodID).Return(&s.lockedPeriod, nil).Once()

	err := s.service.DeleteInvoice(ctx, invoice.InvoiceID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockInvoiceRepo.AssertNotCalled(s.T(), "DeleteInvoice", mock.Anything, mock.Anything)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
