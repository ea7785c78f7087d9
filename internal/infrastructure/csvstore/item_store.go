package csvstore

import (
	"context"
	"strconv"

	"inventory-tracker/internal/domain/entity"
)

// ItemColumns is the header of the items table.
var ItemColumns = []string{"item_id", "item_name", "quantity", "unit", "added_by", "date_added"}

// ItemStore is the file-backed item table.
type ItemStore struct {
	table *table
}

func NewItemStore(path string) *ItemStore {
	return &ItemStore{table: newTable(path, ItemColumns)}
}

func (s *ItemStore) Path() string {
	return s.table.path
}

func (s *ItemStore) EnsureReady(ctx context.Context) error {
	s.table.mu.Lock()
	defer s.table.mu.Unlock()

	return s.table.ensureReady(ctx)
}

func (s *ItemStore) FindAll(ctx context.Context) ([]*entity.Item, error) {
	s.table.mu.Lock()
	defer s.table.mu.Unlock()

	return s.findAll(ctx)
}

func (s *ItemStore) findAll(ctx context.Context) ([]*entity.Item, error) {
	rows, err := s.table.readRows(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*entity.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, itemFromRow(row))
	}
	return items, nil
}

func (s *ItemStore) Append(ctx context.Context, item *entity.Item) error {
	s.table.mu.Lock()
	defer s.table.mu.Unlock()

	return s.table.appendRow(ctx, itemToRow(item))
}

func (s *ItemStore) ReplaceAll(ctx context.Context, items []*entity.Item) error {
	s.table.mu.Lock()
	defer s.table.mu.Unlock()

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, itemToRow(item))
	}
	return s.table.replaceRows(ctx, rows)
}

// NextID ignores IDs that are missing or not numeric.
func (s *ItemStore) NextID(ctx context.Context) (string, error) {
	s.table.mu.Lock()
	defer s.table.mu.Unlock()

	items, err := s.findAll(ctx)
	if err != nil {
		return "", err
	}
	return nextID(items), nil
}

func nextID(items []*entity.Item) string {
	highest := 0
	for _, item := range items {
		if n := item.NumericID(); n > highest {
			highest = n
		}
	}
	return strconv.Itoa(highest + 1)
}

// itemFromRow keeps every field as stored, quantity included, so a rewrite
// reproduces rows it did not touch. Quantity is only validated on AddItem.
func itemFromRow(row []string) *entity.Item {
	item := &entity.Item{
		ID:        row[0],
		Name:      row[1],
		Unit:      row[3],
		AddedBy:   row[4],
		DateAdded: row[5],
	}
	item.SetStoredQuantity(row[2])
	return item
}

func itemToRow(item *entity.Item) []string {
	return []string{
		item.ID,
		item.Name,
		item.StoredQuantity(),
		item.Unit,
		item.AddedBy,
		item.DateAdded,
	}
}
