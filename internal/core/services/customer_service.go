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

// ErrCustomerReferenced signals a deletion attempt on a customer that still
// appears on invoices or receipts.
var ErrCustomerReferenced = errors.New("customer has invoices or receipts")

type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: customerRepo}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       req.Name,
		Email:      req.Email,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		return nil, err
	}
	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, customerID)
}

func (s *customerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customerRepo.ListCustomers(ctx)
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	customer.TouchAudit(userID, time.Now().UTC())

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID string, userID string) error {
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return err
	}
	referenced, err := s.customerRepo.HasSalesDocuments(ctx, customerID)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrCustomerReferenced)
	}
	return s.customerRepo.DeleteCustomer(ctx, customerID)
}
