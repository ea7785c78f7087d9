package terminal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-tracker/internal/domain/entity"
	domainErrors "inventory-tracker/internal/domain/errors"
	"inventory-tracker/internal/infrastructure/memstore"
	"inventory-tracker/internal/usecase"
)

type harness struct {
	items    *memstore.ItemStore
	accounts *memstore.AccountStore
	out      bytes.Buffer
}

func newHarness() *harness {
	return &harness{
		items: memstore.NewItemStore(
			&entity.Item{ID: "1", Name: "Widget", Quantity: 3, Unit: "pcs", AddedBy: "admin", DateAdded: "2024-01-01"},
		),
		accounts: memstore.NewAccountStore(
			entity.DefaultAdmin(),
			&entity.Account{Username: "bob", Password: "pw", Role: entity.RolePrivileged},
			&entity.Account{Username: "eve", Password: "pw", Role: entity.RoleUnprivileged},
		),
	}
}

func (h *harness) run(t *testing.T, lines ...string) error {
	t.Helper()
	clock := func() time.Time { return time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC) }
	ui := New(
		strings.NewReader(strings.Join(lines, "\n")+"\n"),
		&h.out,
		usecase.NewAuthenticator(h.accounts),
		usecase.NewItemUsecase(h.items, usecase.WithClock(clock)),
		usecase.NewAccountUsecase(h.accounts),
	)
	return ui.Run(context.Background())
}

func TestUI_LoginRetriesUntilSuccess(t *testing.T) {
	h := newHarness()

	err := h.run(t,
		"bob", "wrong",
		"nobody", "pw",
		"bob", "pw",
		"5", // Exit: add, list, delete, logout, exit
	)

	require.NoError(t, err)
	out := h.out.String()
	assert.Equal(t, 2, strings.Count(out, "Invalid username or password."))
	assert.Contains(t, out, "Welcome, bob (privileged).")
	assert.Contains(t, out, "Goodbye.")
}

func TestUI_EndOfInputDuringLogin(t *testing.T) {
	h := newHarness()

	err := h.run(t, "bob")

	assert.NoError(t, err)
}

func TestUI_UnprivilegedMenu(t *testing.T) {
	h := newHarness()

	err := h.run(t, "eve", "pw", "1", "3")

	require.NoError(t, err)
	out := h.out.String()
	assert.Contains(t, out, "1) List items")
	assert.Contains(t, out, "2) Logout")
	assert.NotContains(t, out, "Add item")
	assert.NotContains(t, out, "Delete item")
	assert.Contains(t, out, "Widget")
}

func TestUI_AddListDelete(t *testing.T) {
	h := newHarness()

	err := h.run(t,
		"bob", "pw",
		"1", "", "5", "pcs", // empty name is rejected, menu continues
		"1", "Bolt", "abc", "", // bad quantity
		"1", "Bolt", "12", "", // unit defaults
		"2",
		"3", "42",
		"3", "1",
		"5",
	)

	require.NoError(t, err)
	out := h.out.String()
	assert.Contains(t, out, "Error: item name cannot be empty")
	assert.Contains(t, out, "Error: quantity must be a whole number")
	assert.Contains(t, out, "Added item #2: Bolt (12 pcs).")
	assert.Contains(t, out, "Item #42 not found.")
	assert.Contains(t, out, "Deleted item #1.")

	items, err := h.items.FindAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []*entity.Item{{ID: "2", Name: "Bolt", Quantity: 12, Unit: "pcs", AddedBy: "bob", DateAdded: "2024-07-04"}}, items)
}

func TestUI_AdminManagesAccounts(t *testing.T) {
	h := newHarness()

	err := h.run(t,
		"admin", "admin123",
		"5", "carol", "secret", "Privileged", // add account
		"5", "bob", "x", "admin", // duplicate
		"6", "nobody", "admin", // unknown user
		"6", "eve", "privileged",
		"4",
		"7", // logout
		"carol", "secret",
		"5", // exit for privileged
	)

	require.NoError(t, err)
	out := h.out.String()
	assert.Contains(t, out, "Created carol with role privileged.")
	assert.Contains(t, out, "Error: username already exists")
	assert.Contains(t, out, "Error: user not found")
	assert.Contains(t, out, "eve is now privileged.")
	assert.Contains(t, out, "Welcome, carol (privileged).")
	assert.NotContains(t, out, "secret")

	accounts, err := h.accounts.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 4)
	assert.Equal(t, entity.RolePrivileged, accounts[2].Role)
}

func TestUI_InvalidChoice(t *testing.T) {
	h := newHarness()

	err := h.run(t, "eve", "pw", "9", "abc", "3")

	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(h.out.String(), "Invalid choice."))
}

func TestUI_ChoiceByName(t *testing.T) {
	h := newHarness()

	err := h.run(t, "eve", "pw", "delete item", "List Items", "exit")

	require.NoError(t, err)
	out := h.out.String()
	assert.Equal(t, 1, strings.Count(out, "Permission denied."))
	assert.Contains(t, out, "Widget")
	assert.Contains(t, out, "Goodbye.")
	assert.NotContains(t, out, "Invalid choice.")
}

func TestUI_RolePromptListsRoles(t *testing.T) {
	h := newHarness()

	err := h.run(t, "admin", "admin123", "change role", "eve", "privileged", "exit")

	require.NoError(t, err)
	assert.Contains(t, h.out.String(), "New role (admin/privileged/unprivileged): ")
	assert.Contains(t, h.out.String(), "eve is now privileged.")
}

func TestUI_PasswordReader(t *testing.T) {
	h := newHarness()
	ui := New(
		strings.NewReader("admin\n8\n"),
		&h.out,
		usecase.NewAuthenticator(h.accounts),
		usecase.NewItemUsecase(h.items),
		usecase.NewAccountUsecase(h.accounts),
		WithPasswordReader(func() (string, error) { return "admin123", nil }),
	)

	require.NoError(t, ui.Run(context.Background()))
	assert.Contains(t, h.out.String(), "Welcome, admin (admin).")
}

type failingItems struct {
	usecase.ItemRepository
}

func (failingItems) FindAll(context.Context) ([]*entity.Item, error) {
	return nil, &domainErrors.StorageError{Op: "read", Path: "data.csv", Err: errors.New("permission denied")}
}

func TestUI_StorageErrorAborts(t *testing.T) {
	h := newHarness()
	ui := New(
		strings.NewReader("eve\npw\n1\n"),
		&h.out,
		usecase.NewAuthenticator(h.accounts),
		usecase.NewItemUsecase(failingItems{}),
		usecase.NewAccountUsecase(h.accounts),
	)

	err := ui.Run(context.Background())

	assert.True(t, domainErrors.IsStorageError(err))
}
