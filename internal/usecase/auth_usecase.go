package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"inventory-tracker/internal/domain/entity"
	domainErrors "inventory-tracker/internal/domain/errors"
)

// Identity is the result of a successful login.
type Identity struct {
	Username string      `json:"username"`
	Role     entity.Role `json:"role"`
}

type Authenticator interface {
	// Login evaluates one username/password attempt. Retrying is the caller's concern.
	Login(ctx context.Context, username, password string) (*Identity, error)
}

type authenticator struct {
	accountRepo AccountRepository
	logger      *slog.Logger
}

func NewAuthenticator(accountRepo AccountRepository, opts ...Option) Authenticator {
	o := buildOptions(opts)
	return &authenticator{
		accountRepo: accountRepo,
		logger:      o.logger,
	}
}

func (a *authenticator) Login(ctx context.Context, username, password string) (*Identity, error) {
	accounts, err := a.accountRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve accounts: %w", err)
	}

	for _, account := range accounts {
		if account.Username == username && account.Password == password {
			a.logger.Info("login succeeded", "username", account.Username, "role", account.Role)
			return &Identity{Username: account.Username, Role: account.Role}, nil
		}
	}

	a.logger.Warn("login failed", "username", username)
	return nil, domainErrors.ErrAuthenticationFailed
}
