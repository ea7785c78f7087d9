// Package memstore provides in-memory item and account tables with the same
// semantics as the file-backed stores. Records are copied on the way in and
// out so callers never share memory with the store.
package memstore

import (
	"context"
	"strconv"
	"sync"

	"inventory-tracker/internal/domain/entity"
)

type ItemStore struct {
	mu    sync.Mutex
	items []entity.Item
}

func NewItemStore(items ...*entity.Item) *ItemStore {
	s := &ItemStore{}
	for _, item := range items {
		s.items = append(s.items, *item)
	}
	return s
}

func (s *ItemStore) EnsureReady(ctx context.Context) error {
	return ctx.Err()
}

func (s *ItemStore) FindAll(ctx context.Context) ([]*entity.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entity.Item, 0, len(s.items))
	for _, item := range s.items {
		item := item
		out = append(out, &item)
	}
	return out, nil
}

func (s *ItemStore) Append(ctx context.Context, item *entity.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, *item)
	return nil
}

func (s *ItemStore) ReplaceAll(ctx context.Context, items []*entity.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]entity.Item, 0, len(items))
	for _, item := range items {
		s.items = append(s.items, *item)
	}
	return nil
}

func (s *ItemStore) NextID(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	highest := 0
	for i := range s.items {
		if n := s.items[i].NumericID(); n > highest {
			highest = n
		}
	}
	return strconv.Itoa(highest + 1), nil
}

// AccountStore seeds the default admin whenever it is read while empty.
type AccountStore struct {
	mu       sync.Mutex
	accounts []entity.Account
}

func NewAccountStore(accounts ...*entity.Account) *AccountStore {
	s := &AccountStore{}
	for _, account := range accounts {
		s.accounts = append(s.accounts, *account)
	}
	return s
}

func (s *AccountStore) EnsureReady(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureSeeded()
	return nil
}

func (s *AccountStore) ensureSeeded() {
	if len(s.accounts) == 0 {
		s.accounts = append(s.accounts, *entity.DefaultAdmin())
	}
}

func (s *AccountStore) FindAll(ctx context.Context) ([]*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureSeeded()
	out := make([]*entity.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		account := account
		out = append(out, &account)
	}
	return out, nil
}

func (s *AccountStore) ReplaceAll(ctx context.Context, accounts []*entity.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = make([]entity.Account, 0, len(accounts))
	for _, account := range accounts {
		s.accounts = append(s.accounts, *account)
	}
	return nil
}
