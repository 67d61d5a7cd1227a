package services

import (
	"context"

	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	"github.com/SscSPs/abbis_ledger/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves the chart of accounts ordered by type then code.
	ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's name or parent. Code and type are fixed.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error

	// ActivateAccount marks an account as active again.
	ActivateAccount(ctx context.Context, accountID string, userID string) error
}

// AccountSeederSvc installs the default chart of accounts.
type AccountSeederSvc interface {
	// SeedDefaultAccounts creates every default account whose code is not yet taken
	// and returns how many were created.
	SeedDefaultAccounts(ctx context.Context, userID string) (int, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountSeederSvc
}
