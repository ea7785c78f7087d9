package usecase

import (
	"context"

	"inventory-tracker/internal/domain/entity"
)

// ItemRepository defines the interface for the inventory record table.
// Every call re-reads durable storage; implementations keep no cache between calls.
type ItemRepository interface {
	// EnsureReady creates the table with its header row if it is missing or empty
	EnsureReady(ctx context.Context) error

	// FindAll retrieves all items in insertion order
	FindAll(ctx context.Context) ([]*entity.Item, error)

	// Append adds one item at the end of the table
	Append(ctx context.Context, item *entity.Item) error

	// ReplaceAll overwrites the whole table with the given items
	ReplaceAll(ctx context.Context, items []*entity.Item) error

	// NextID returns 1 + the largest numeric item ID, or "1" when none parse
	NextID(ctx context.Context) (string, error)
}

// AccountRepository defines the interface for the account table.
type AccountRepository interface {
	// EnsureReady creates the table seeded with the default admin if it is missing or empty
	EnsureReady(ctx context.Context) error

	// FindAll retrieves all accounts in file order
	FindAll(ctx context.Context) ([]*entity.Account, error)

	// ReplaceAll overwrites the whole table with the given accounts
	ReplaceAll(ctx context.Context, accounts []*entity.Account) error
}
