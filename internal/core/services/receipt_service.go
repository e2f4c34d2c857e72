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

var ErrReceiptNumberTaken = errors.New("receipt number already in use")

type receiptService struct {
	receiptRepo  portsrepo.ReceiptRepositoryFacade
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	periodRepo   portsrepo.PeriodRepositoryFacade
}

// NewReceiptService creates a new ReceiptService.
func NewReceiptService(receiptRepo portsrepo.ReceiptRepositoryFacade, invoiceRepo portsrepo.InvoiceRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade, periodRepo portsrepo.PeriodRepositoryFacade) portssvc.ReceiptSvcFacade {
	return &receiptService{receiptRepo: receiptRepo, invoiceRepo: invoiceRepo, customerRepo: customerRepo, periodRepo: periodRepo}
}

var _ portssvc.ReceiptSvcFacade = (*receiptService)(nil)

// checkReceiptInvoice verifies the referenced invoice exists and belongs to
// the same customer.
func (s *receiptService) checkReceiptInvoice(ctx context.Context, invoiceID, customerID string) error {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: invoice %s not found", apperrors.ErrValidation, invoiceID)
		}
		return err
	}
	if invoice.CustomerID != customerID {
		return fmt.Errorf("%w: invoice %s belongs to another customer", apperrors.ErrValidation, invoiceID)
	}
	return nil
}

func (s *receiptService) CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest, creatorUserID string) (*domain.Receipt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}
	if _, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer %s not found", apperrors.ErrValidation, req.CustomerID)
		}
		return nil, err
	}
	if req.InvoiceID != "" {
		if err := s.checkReceiptInvoice(ctx, req.InvoiceID, req.CustomerID); err != nil {
			return nil, err
		}
	}
	if err := checkPeriodUnlocked(ctx, s.periodRepo, req.PeriodID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	receipt := domain.Receipt{
		ReceiptID:     uuid.NewString(),
		ReceiptNumber: req.ReceiptNumber,
		PaymentDate:   req.PaymentDate.Time,
		Amount:        req.Amount.Round(domain.MoneyPrecision),
		Currency:      req.Currency,
		CustomerID:    req.CustomerID,
		InvoiceID:     req.InvoiceID,
		PeriodID:      req.PeriodID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.receiptRepo.SaveReceipt(ctx, receipt); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrReceiptNumberTaken)
		}
		return nil, err
	}
	logger.Info("Receipt created",
		slog.String("receipt_id", receipt.ReceiptID),
		slog.String("receipt_number", receipt.ReceiptNumber),
		slog.String("period_id", receipt.PeriodID))
	return &receipt, nil
}

func (s *receiptService) GetReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	return s.receiptRepo.FindReceiptByID(ctx, receiptID)
}

func (s *receiptService) ListReceipts(ctx context.Context) ([]domain.Receipt, error) {
	return s.receiptRepo.ListReceipts(ctx)
}

func (s *receiptService) UpdateReceipt(ctx context.Context, receiptID string, req dto.UpdateReceiptRequest, userID string) (*domain.Receipt, error) {
	receipt, err := s.receiptRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if err := checkPeriodUnlocked(ctx, s.periodRepo, receipt.PeriodID); err != nil {
		return nil, err
	}

	if req.ReceiptNumber != nil {
		receipt.ReceiptNumber = *req.ReceiptNumber
	}
	if req.PaymentDate != nil {
		receipt.PaymentDate = req.PaymentDate.Time
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() || req.Amount.IsZero() {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
		}
		receipt.Amount = req.Amount.Round(domain.MoneyPrecision)
	}
	if req.Currency != nil {
		receipt.Currency = *req.Currency
	}
	if req.CustomerID != nil {
		if _, err := s.customerRepo.FindCustomerByID(ctx, *req.CustomerID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: customer %s not found", apperrors.ErrValidation, *req.CustomerID)
			}
			return nil, err
		}
		receipt.CustomerID = *req.CustomerID
	}
	if req.InvoiceID != nil {
		if *req.InvoiceID != "" {
			if err := s.checkReceiptInvoice(ctx, *req.InvoiceID, receipt.CustomerID); err != nil {
				return nil, err
			}
		}
		receipt.InvoiceID = *req.InvoiceID
	}
	receipt.TouchAudit(userID, time.Now().UTC())

	if err := s.receiptRepo.UpdateReceipt(ctx, *receipt); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrReceiptNumberTaken)
		}
		return nil, err
	}
	return receipt, nil
}

func (s *receiptService) DeleteReceipt(ctx context.Context, receiptID string, userID string) error {
	receipt, err := s.receiptRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		return err
	}
	if err := checkPeriodUnlocked(ctx, s.periodRepo, receipt.PeriodID); err != nil {
		return err
	}
	return s.receiptRepo.DeleteReceipt(ctx, receiptID)
}
