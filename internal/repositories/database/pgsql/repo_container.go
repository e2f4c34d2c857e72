package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/ikicamilo/oceanre-backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	periodRepo := newPgxPeriodRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	customerRepo := newPgxCustomerRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	receiptRepo := newPgxReceiptRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:  accountRepo,
		PeriodRepo:   periodRepo,
		JournalRepo:  journalRepo,
		UserRepo:     userRepo,
		CustomerRepo: customerRepo,
		InvoiceRepo:  invoiceRepo,
		ReceiptRepo:  receiptRepo,
	}
}
