package services

import (
	portsrepo "github.com/ikicamilo/oceanre-backend/internal/core/ports/repositories"
	portssvc "github.com/ikicamilo/oceanre-backend/internal/core/ports/services"
	"github.com/ikicamilo/oceanre-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// One guard shared between the period engine and the journal store so
	// postings and lifecycle runs on the same period serialize.
	guard := NewPeriodGuard()

	container.Account = NewAccountService(repos.AccountRepo)
	container.Period = NewPeriodService(repos.PeriodRepo, repos.JournalRepo, repos.AccountRepo, guard)
	container.Journal = NewJournalService(repos.JournalRepo, repos.PeriodRepo, repos.AccountRepo, guard)

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg, repos.UserRepo)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	container.Customer = NewCustomerService(repos.CustomerRepo)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.CustomerRepo, repos.PeriodRepo)
	container.Receipt = NewReceiptService(repos.ReceiptRepo, repos.InvoiceRepo, repos.CustomerRepo, repos.PeriodRepo)

	return container
}
