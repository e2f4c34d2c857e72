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
	ErrPeriodLocked         = errors.New("period is locked")
	ErrInvoiceNumberTaken   = errors.New("invoice number already in use")
	ErrInvoiceDatesInverted = errors.New("due date precedes issue date")
	ErrAmountNotPositive    = errors.New("amount must be positive")
)

type invoiceService struct {
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	periodRepo   portsrepo.PeriodRepositoryFacade
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade, periodRepo portsrepo.PeriodRepositoryFacade) portssvc.InvoiceSvcFacade {
	return &invoiceService{invoiceRepo: invoiceRepo, customerRepo: customerRepo, periodRepo: periodRepo}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// checkPeriodUnlocked rejects sales mutations against a locked or
// mid-lifecycle period.
func checkPeriodUnlocked(ctx context.Context, periodRepo portsrepo.PeriodRepositoryFacade, periodID string) error {
	period, err := periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: period %s not found", apperrors.ErrValidation, periodID)
		}
		return err
	}
	if period.Status == domain.PeriodLocked || period.Status.IsTransient() {
		return fmt.Errorf("%w: %s (period %s is %s)", apperrors.ErrConflict, ErrPeriodLocked, periodID, period.Status)
	}
	return nil
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.TotalAmount.IsNegative() || req.TotalAmount.IsZero() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}
	if req.DueDate.Time.Before(req.IssueDate.Time) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrInvoiceDatesInverted)
	}
	if _, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer %s not found", apperrors.ErrValidation, req.CustomerID)
		}
		return nil, err
	}
	if err := checkPeriodUnlocked(ctx, s.periodRepo, req.PeriodID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = domain.InvoiceOpen
	}

	now := time.Now().UTC()
	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: req.InvoiceNumber,
		IssueDate:     req.IssueDate.Time,
		DueDate:       req.DueDate.Time,
		CustomerID:    req.CustomerID,
		TotalAmount:   req.TotalAmount.Round(domain.MoneyPrecision),
		Currency:      req.Currency,
		Status:        status,
		PeriodID:      req.PeriodID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrInvoiceNumberTaken)
		}
		return nil, err
	}
	logger.Info("Invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_number", invoice.InvoiceNumber),
		slog.String("period_id", invoice.PeriodID))
	return &invoice, nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
}

func (s *invoiceService) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	return s.invoiceRepo.ListInvoices(ctx)
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := checkPeriodUnlocked(ctx, s.periodRepo, invoice.PeriodID); err != nil {
		return nil, err
	}

	if req.InvoiceNumber != nil {
		invoice.InvoiceNumber = *req.InvoiceNumber
	}
	if req.IssueDate != nil {
		invoice.IssueDate = req.IssueDate.Time
	}
	if req.DueDate != nil {
		invoice.DueDate = req.DueDate.Time
	}
	if req.CustomerID != nil {
		if _, err := s.customerRepo.FindCustomerByID(ctx, *req.CustomerID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: customer %s not found", apperrors.ErrValidation, *req.CustomerID)
			}
			return nil, err
		}
		invoice.CustomerID = *req.CustomerID
	}
	if req.TotalAmount != nil {
		if req.TotalAmount.IsNegative() || req.TotalAmount.IsZero() {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
		}
		invoice.TotalAmount = req.TotalAmount.Round(domain.MoneyPrecision)
	}
	if req.Currency != nil {
		invoice.Currency = *req.Currency
	}
	if req.Status != nil {
		if !domain.IsValidInvoiceStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown invoice status %q", apperrors.ErrValidation, *req.Status)
		}
		invoice.Status = *req.Status
	}
	if invoice.DueDate.Before(invoice.IssueDate) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrInvoiceDatesInverted)
	}
	invoice.TouchAudit(userID, time.Now().UTC())

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrInvoiceNumberTaken)
		}
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID string, userID string) error {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if err := checkPeriodUnlocked(ctx, s.periodRepo, invoice.PeriodID); err != nil {
		return err
	}
	return s.invoiceRepo.DeleteInvoice(ctx, invoiceID)
}
