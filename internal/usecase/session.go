package usecase

import (
	"context"
	"fmt"

	"inventory-tracker/internal/domain/entity"
	domainErrors "inventory-tracker/internal/domain/errors"
	"inventory-tracker/internal/domain/policy"
)

// Session gates every operation of an authenticated identity through the policy.
// The role is captured at login; a later role change applies from the next login.
type Session struct {
	identity Identity
	items    ItemUsecase
	accounts AccountUsecase
}

func NewSession(identity Identity, items ItemUsecase, accounts AccountUsecase) *Session {
	return &Session{
		identity: identity,
		items:    items,
		accounts: accounts,
	}
}

func (s *Session) Identity() Identity {
	return s.identity
}

// Can reports whether the session's role may run op.
func (s *Session) Can(op policy.Operation) bool {
	return policy.IsPermitted(s.identity.Role, op)
}

// Operations lists what the session's role may run, in menu order.
func (s *Session) Operations() []policy.Operation {
	return policy.Operations(s.identity.Role)
}

func (s *Session) authorize(op policy.Operation) error {
	if !s.Can(op) {
		return fmt.Errorf("%s as %s: %w", op, s.identity.Role, domainErrors.ErrPermissionDenied)
	}
	return nil
}

// AddItem records the session's username as added_by, ignoring input.AddedBy.
func (s *Session) AddItem(ctx context.Context, input AddItemInput) (*entity.Item, error) {
	if err := s.authorize(policy.OpAddItem); err != nil {
		return nil, err
	}
	input.AddedBy = s.identity.Username
	return s.items.AddItem(ctx, input)
}

func (s *Session) ListItems(ctx context.Context) ([]*entity.Item, error) {
	if err := s.authorize(policy.OpListItems); err != nil {
		return nil, err
	}
	return s.items.ListItems(ctx)
}

func (s *Session) DeleteItem(ctx context.Context, id string) (bool, error) {
	if err := s.authorize(policy.OpDeleteItem); err != nil {
		return false, err
	}
	return s.items.DeleteItem(ctx, id)
}

func (s *Session) ListAccounts(ctx context.Context) ([]*entity.Account, error) {
	if err := s.authorize(policy.OpListAccounts); err != nil {
		return nil, err
	}
	return s.accounts.ListAccounts(ctx)
}

func (s *Session) AddAccount(ctx context.Context, input AddAccountInput) (*entity.Account, error) {
	if err := s.authorize(policy.OpAddAccount); err != nil {
		return nil, err
	}
	return s.accounts.AddAccount(ctx, input)
}

func (s *Session) ChangeRole(ctx context.Context, username, newRole string) (*entity.Account, error) {
	if err := s.authorize(policy.OpChangeRole); err != nil {
		return nil, err
	}
	return s.accounts.ChangeRole(ctx, username, newRole)
}
