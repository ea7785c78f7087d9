package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"inventory-tracker/internal/domain/entity"
	domainErrors "inventory-tracker/internal/domain/errors"
)

type AccountUsecase interface {
	ListAccounts(ctx context.Context) ([]*entity.Account, error)
	AddAccount(ctx context.Context, input AddAccountInput) (*entity.Account, error)
	ChangeRole(ctx context.Context, username, newRole string) (*entity.Account, error)
}

type AddAccountInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type accountUsecase struct {
	accountRepo AccountRepository
	logger      *slog.Logger

	mu sync.Mutex
}

func NewAccountUsecase(accountRepo AccountRepository, opts ...Option) AccountUsecase {
	o := buildOptions(opts)
	return &accountUsecase{
		accountRepo: accountRepo,
		logger:      o.logger,
	}
}

func (u *accountUsecase) ListAccounts(ctx context.Context) ([]*entity.Account, error) {
	accounts, err := u.accountRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve accounts: %w", err)
	}

	return accounts, nil
}

// AddAccount checks, in order: empty username, duplicate username, empty password, role.
func (u *accountUsecase) AddAccount(ctx context.Context, input AddAccountInput) (*entity.Account, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, domainErrors.NewValidationError(domainErrors.EmptyUsername)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	accounts, err := u.accountRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve accounts: %w", err)
	}

	if findAccount(accounts, username) != nil {
		return nil, domainErrors.NewValidationError(domainErrors.DuplicateUsername)
	}

	account, err := entity.NewAccount(username, input.Password, input.Role)
	if err != nil {
		return nil, err
	}

	if err := u.accountRepo.ReplaceAll(ctx, append(accounts, account)); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	u.logger.Info("account added", "username", account.Username, "role", account.Role)

	return account, nil
}

func (u *accountUsecase) ChangeRole(ctx context.Context, username, newRole string) (*entity.Account, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	accounts, err := u.accountRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve accounts: %w", err)
	}

	account := findAccount(accounts, strings.TrimSpace(username))
	if account == nil {
		return nil, domainErrors.NewValidationError(domainErrors.UnknownUser)
	}

	role, err := entity.ParseRole(newRole)
	if err != nil {
		return nil, err
	}

	previous := account.Role
	account.Role = role

	if err := u.accountRepo.ReplaceAll(ctx, accounts); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	u.logger.Info("account role changed",
		"username", account.Username,
		"from", previous,
		"to", account.Role)

	return account, nil
}

// findAccount is an exact, case-sensitive lookup.
func findAccount(accounts []*entity.Account, username string) *entity.Account {
	for _, a := range accounts {
		if a.Username == username {
			return a
		}
	}
	return nil
}
