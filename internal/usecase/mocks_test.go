package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"inventory-tracker/internal/domain/entity"
)

// MockItemRepository is a testify mock standing in for the item table.
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) EnsureReady(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockItemRepository) FindAll(ctx context.Context) ([]*entity.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Item), args.Error(1)
}

func (m *MockItemRepository) Append(ctx context.Context, item *entity.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) ReplaceAll(ctx context.Context, items []*entity.Item) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockItemRepository) NextID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockAccountRepository is a testify mock standing in for the account table.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) EnsureReady(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAll(ctx context.Context) ([]*entity.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) ReplaceAll(ctx context.Context, accounts []*entity.Account) error {
	args := m.Called(ctx, accounts)
	return args.Error(0)
}

func sampleAccounts() []*entity.Account {
	return []*entity.Account{
		{Username: "admin", Password: "admin123", Role: entity.RoleAdmin},
		{Username: "bob", Password: "hunter2", Role: entity.RolePrivileged},
		{Username: "eve", Password: "letmein", Role: entity.RoleUnprivileged},
	}
}

func sampleItems() []*entity.Item {
	return []*entity.Item{
		{ID: "1", Name: "Widget", Quantity: 3, Unit: "pcs", AddedBy: "bob", DateAdded: "2024-01-01"},
		{ID: "2", Name: "Bolt", Quantity: 100, Unit: "box", AddedBy: "admin", DateAdded: "2024-01-02"},
		{ID: "3", Name: "Nut", Quantity: 40, Unit: "pcs", AddedBy: "bob", DateAdded: "2024-01-03"},
	}
}
