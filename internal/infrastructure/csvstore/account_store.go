package csvstore

import (
	"context"

	"inventory-tracker/internal/domain/entity"
)

// AccountColumns is the header of the accounts table.
var AccountColumns = []string{"username", "password", "role"}

// AccountStore is the file-backed account table. A missing or empty file is
// created holding the default admin account.
type AccountStore struct {
	table *table
}

func NewAccountStore(path string) *AccountStore {
	return &AccountStore{table: newTable(path, AccountColumns, accountToRow(entity.DefaultAdmin()))}
}

func (s *AccountStore) Path() string {
	return s.table.path
}

func (s *AccountStore) EnsureReady(ctx context.Context) error {
	s.table.mu.Lock()
	defer s.table.mu.Unlock()

	return s.table.ensureReady(ctx)
}

// FindAll keeps stored roles verbatim. A role outside the known set is not
// rewritten here; the policy grants it nothing.
func (s *AccountStore) FindAll(ctx context.Context) ([]*entity.Account, error) {
	s.table.mu.Lock()
	defer s.table.mu.Unlock()

	rows, err := s.table.readRows(ctx)
	if err != nil {
		return nil, err
	}

	accounts := make([]*entity.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, &entity.Account{
			Username: row[0],
			Password: row[1],
			Role:     entity.Role(row[2]),
		})
	}
	return accounts, nil
}

func (s *AccountStore) ReplaceAll(ctx context.Context, accounts []*entity.Account) error {
	s.table.mu.Lock()
	defer s.table.mu.Unlock()

	rows := make([][]string, 0, len(accounts))
	for _, account := range accounts {
		rows = append(rows, accountToRow(account))
	}
	return s.table.replaceRows(ctx, rows)
}

func accountToRow(account *entity.Account) []string {
	return []string{account.Username, account.Password, string(account.Role)}
}
