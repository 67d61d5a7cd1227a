package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/abbis_ledger/internal/apperrors"
	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/abbis_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/abbis_ledger/internal/core/ports/services"
	"github.com/SscSPs/abbis_ledger/internal/dto"
	"github.com/google/uuid"
)

// maxAccountDepth bounds the parent walk used for cycle detection.
const maxAccountDepth = 64

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	parentID := ""
	if req.ParentAccountID != nil && strings.TrimSpace(*req.ParentAccountID) != "" {
		parentID = strings.TrimSpace(*req.ParentAccountID)
		if _, err := s.accountRepo.FindAccountByID(ctx, parentID); err != nil {
			s.LogError(ctx, err, "Failed to find parent account", slog.String("parent_id", parentID))
			return nil, fmt.Errorf("parent account %s: %w", parentID, err)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            code,
		Name:            name,
		AccountType:     req.AccountType,
		ParentAccountID: parentID,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %q is already in use: %w", apperrors.ErrValidation, code, err)
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("account_code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("account_code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves the chart of accounts, optionally only active accounts.
func (s *accountService) ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.Bool("active_only", activeOnly))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	s.LogDebug(ctx, "Accounts listed successfully", slog.Int("count", len(accounts)))
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
		}
		account.Name = name
	}

	if req.ParentAccountID != nil {
		parentID := strings.TrimSpace(*req.ParentAccountID)
		if parentID != "" {
			if err := s.checkParent(ctx, accountID, parentID); err != nil {
				return nil, err
			}
		}
		account.ParentAccountID = parentID
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

// checkParent makes sure parentID exists and that accountID is not among its ancestors.
func (s *accountService) checkParent(ctx context.Context, accountID, parentID string) error {
	current := parentID
	for depth := 0; current != ""; depth++ {
		if current == accountID {
			return fmt.Errorf("%w: parent %s would create a cycle", apperrors.ErrValidation, parentID)
		}
		if depth >= maxAccountDepth {
			return fmt.Errorf("%w: account hierarchy deeper than %d levels", apperrors.ErrValidation, maxAccountDepth)
		}
		ancestor, err := s.accountRepo.FindAccountByID(ctx, current)
		if err != nil {
			if current == parentID {
				return fmt.Errorf("parent account %s: %w", parentID, err)
			}
			return err
		}
		current = ancestor.ParentAccountID
	}
	return nil
}

// DeactivateAccount marks an account as inactive. Posted history is kept.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	return s.setActive(ctx, accountID, false, userID)
}

// ActivateAccount marks an account as active again.
func (s *accountService) ActivateAccount(ctx context.Context, accountID string, userID string) error {
	return s.setActive(ctx, accountID, true, userID)
}

func (s *accountService) setActive(ctx context.Context, accountID string, active bool, userID string) error {
	err := s.accountRepo.SetAccountActive(ctx, accountID, active, userID, time.Now().UTC())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to change account status",
				slog.String("account_id", accountID),
				slog.Bool("active", active))
		}
		return err
	}
	s.LogInfo(ctx, "Account status changed", slog.String("account_id", accountID), slog.Bool("active", active))
	return nil
}

// SeedDefaultAccounts creates the default chart, skipping codes that already exist.
func (s *accountService) SeedDefaultAccounts(ctx context.Context, userID string) (int, error) {
	existing, err := s.accountRepo.ListAccounts(ctx, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts before seeding")
		return 0, fmt.Errorf("failed to list accounts: %w", err)
	}
	taken := make(map[string]bool, len(existing))
	for _, acc := range existing {
		taken[acc.Code] = true
	}

	created := 0
	now := time.Now().UTC()
	for _, tmpl := range domain.DefaultChartOfAccounts {
		if taken[tmpl.Code] {
			continue
		}
		account := domain.Account{
			AccountID:   uuid.NewString(),
			Code:        tmpl.Code,
			Name:        tmpl.Name,
			AccountType: tmpl.AccountType,
			IsActive:    true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			s.LogError(ctx, err, "Failed to seed account", slog.String("account_code", tmpl.Code))
			return created, err
		}
		created++
	}

	s.LogInfo(ctx, "Default chart of accounts seeded", slog.Int("created", created))
	return created, nil
}
