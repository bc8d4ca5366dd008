package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"steward/socialhub/internal/model"
	"steward/socialhub/internal/repository"
)

type AccountService interface {
	// Upsert stores account under the organization resolved from, in order,
	// organizationOverride, account.OrganizationID and the linked brand.
	// It reports false without error when no organization can be resolved;
	// nothing is written in that case.
	Upsert(ctx context.Context, account *model.SocialAccount, organizationOverride string) (bool, error)
	Get(ctx context.Context, id string) (*model.SocialAccount, error)
	ListEligible(ctx context.Context, platform string) ([]model.EligibleAccount, error)
}

type accountService struct {
	accounts repository.SocialAccountRepository
	brands   repository.BrandRepository
	logger   *zap.Logger
}

var _ AccountService = (*accountService)(nil)

func NewAccountService(accounts repository.SocialAccountRepository, brands repository.BrandRepository, logger *zap.Logger) AccountService {
	return &accountService{
		accounts: accounts,
		brands:   brands,
		logger:   logger,
	}
}

func (s *accountService) Upsert(ctx context.Context, account *model.SocialAccount, organizationOverride string) (bool, error) {
	if account == nil || account.ID == "" || account.Platform == "" || account.AccessToken == "" {
		return false, ErrInvalidAccount
	}

	orgID, err := s.resolveOrganization(ctx, account, organizationOverride)
	if err != nil {
		return false, err
	}
	if orgID == "" {
		s.logger.Warn("social account upsert skipped: organization unresolved",
			zap.String("account_id", account.ID),
			zap.String("platform", account.Platform),
			zap.String("brand_id", account.BrandID),
		)
		return false, nil
	}

	record := *account
	record.OrganizationID = orgID
	if record.ExternalAccountID == "" {
		record.ExternalAccountID = record.ID
	}
	if record.Status == "" {
		record.Status = model.AccountStatusActive
	}

	if err := s.accounts.Upsert(ctx, &record); err != nil {
		return false, fmt.Errorf("upsert social account: %w", err)
	}
	*account = record
	return true, nil
}

func (s *accountService) resolveOrganization(ctx context.Context, account *model.SocialAccount, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if account.OrganizationID != "" {
		return account.OrganizationID, nil
	}
	if account.BrandID == "" {
		return "", nil
	}

	brand, err := s.brands.GetByID(ctx, account.BrandID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("resolve brand organization: %w", err)
	}
	return brand.OrganizationID, nil
}

func (s *accountService) Get(ctx context.Context, id string) (*model.SocialAccount, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("get social account: %w", err)
	}
	return account, nil
}

func (s *accountService) ListEligible(ctx context.Context, platform string) ([]model.EligibleAccount, error) {
	accounts, err := s.accounts.ListEligible(ctx, platform)
	if err != nil {
		return nil, fmt.Errorf("list eligible accounts: %w", err)
	}
	return accounts, nil
}
