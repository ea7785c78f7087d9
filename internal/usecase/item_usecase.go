package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"inventory-tracker/internal/domain/entity"
)

type ItemUsecase interface {
	AddItem(ctx context.Context, input AddItemInput) (*entity.Item, error)
	ListItems(ctx context.Context) ([]*entity.Item, error)
	DeleteItem(ctx context.Context, id string) (bool, error)
}

// AddItemInput carries raw user input; Quantity is parsed here, not by the caller.
type AddItemInput struct {
	AddedBy  string `json:"-"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

type itemUsecase struct {
	itemRepo ItemRepository
	logger   *slog.Logger
	now      func() time.Time

	// mu serializes read-modify-write sequences within this process.
	mu sync.Mutex
}

func NewItemUsecase(itemRepo ItemRepository, opts ...Option) ItemUsecase {
	o := buildOptions(opts)
	return &itemUsecase{
		itemRepo: itemRepo,
		logger:   o.logger,
		now:      o.now,
	}
}

func (u *itemUsecase) AddItem(ctx context.Context, input AddItemInput) (*entity.Item, error) {
	item, err := entity.NewItem(input.Name, input.Quantity, input.Unit, input.AddedBy, u.now())
	if err != nil {
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	id, err := u.itemRepo.NextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to assign item id: %w", err)
	}
	item.ID = id

	if err := u.itemRepo.Append(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	u.logger.Info("item added",
		"item_id", item.ID,
		"item_name", item.Name,
		"quantity", item.Quantity,
		"added_by", item.AddedBy)

	return item, nil
}

func (u *itemUsecase) ListItems(ctx context.Context) ([]*entity.Item, error) {
	items, err := u.itemRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve items: %w", err)
	}

	return items, nil
}

// DeleteItem removes every record whose ID equals id.
// A missing ID is reported as false and nothing is written.
func (u *itemUsecase) DeleteItem(ctx context.Context, id string) (bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	items, err := u.itemRepo.FindAll(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to retrieve items: %w", err)
	}

	kept := make([]*entity.Item, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}

	if len(kept) == len(items) {
		return false, nil
	}

	if err := u.itemRepo.ReplaceAll(ctx, kept); err != nil {
		return false, fmt.Errorf("failed to delete item: %w", err)
	}

	u.logger.Info("item deleted", "item_id", id, "removed", len(items)-len(kept))

	return true, nil
}
