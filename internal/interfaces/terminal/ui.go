// Package terminal is the interactive menu driver. It owns every prompt and
// retry loop; the usecase layer only ever sees single-shot calls.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"inventory-tracker/internal/domain/entity"
	domainErrors "inventory-tracker/internal/domain/errors"
	"inventory-tracker/internal/domain/policy"
	"inventory-tracker/internal/usecase"
)

// errExit ends the program from inside the menu loop.
var errExit = errors.New("exit requested")

// PasswordReader reads a secret without echoing it.
type PasswordReader func() (string, error)

type UI struct {
	in           *bufio.Scanner
	out          io.Writer
	readPassword PasswordReader
	styles       styles
	logger       *slog.Logger

	auth     usecase.Authenticator
	items    usecase.ItemUsecase
	accounts usecase.AccountUsecase
}

type Option func(*UI)

// WithPasswordReader replaces line-based password input, e.g. with term.ReadPassword.
func WithPasswordReader(r PasswordReader) Option {
	return func(u *UI) {
		u.readPassword = r
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(u *UI) {
		if logger != nil {
			u.logger = logger
		}
	}
}

func New(in io.Reader, out io.Writer, auth usecase.Authenticator, items usecase.ItemUsecase, accounts usecase.AccountUsecase, opts ...Option) *UI {
	u := &UI{
		in:       bufio.NewScanner(in),
		out:      out,
		styles:   newStyles(out),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		auth:     auth,
		items:    items,
		accounts: accounts,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Run alternates login and menu until the user exits or input ends.
// Only storage and unexpected errors are returned.
func (u *UI) Run(ctx context.Context) error {
	u.println(u.styles.title.Render("Inventory Tracker"))

	for {
		identity, err := u.login(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			u.logger.Error("login aborted", "error", err)
			return err
		}

		session := usecase.NewSession(*identity, u.items, u.accounts)
		err = u.menu(ctx, session)
		switch {
		case errors.Is(err, errExit), errors.Is(err, io.EOF):
			u.println("Goodbye.")
			return nil
		case err != nil:
			u.logger.Error("session aborted", "username", identity.Username, "error", err)
			return err
		}
		u.logger.Info("logout", "username", identity.Username)
	}
}

// login repeats single login attempts until one succeeds.
func (u *UI) login(ctx context.Context) (*usecase.Identity, error) {
	for {
		u.println("")
		username, err := u.prompt("Username: ")
		if err != nil {
			return nil, err
		}
		password, err := u.promptSecret("Password: ")
		if err != nil {
			return nil, err
		}

		identity, err := u.auth.Login(ctx, strings.TrimSpace(username), password)
		if err == nil {
			u.println(u.styles.okText.Render(fmt.Sprintf("Welcome, %s (%s).", identity.Username, identity.Role)))
			return identity, nil
		}
		if !domainErrors.IsAuthenticationError(err) {
			return nil, err
		}
		u.println(u.styles.errText.Render("Invalid username or password. Please try again."))
	}
}

type menuEntry struct {
	label  string
	op     policy.Operation
	action func(context.Context, *usecase.Session) error
}

// menu returns nil on logout, errExit on exit.
func (u *UI) menu(ctx context.Context, session *usecase.Session) error {
	entries := u.menuEntries(session)

	for {
		u.println("")
		u.println(u.styles.title.Render("Main menu") + u.styles.muted.Render(" ["+session.Identity().Username+"]"))
		for i, e := range entries {
			u.printf("  %d) %s\n", i+1, e.label)
		}

		choice, err := u.prompt("Choose an option: ")
		if err != nil {
			return err
		}
		entry, ok := pickEntry(entries, choice)
		if !ok {
			if op, named := policy.ParseOperation(choice); named && !session.Can(op) {
				u.println(u.styles.errText.Render("Permission denied."))
			} else {
				u.println(u.styles.errText.Render("Invalid choice."))
			}
			continue
		}
		if entry.action == nil {
			return nil
		}
		if err := u.report(entry.action(ctx, session)); err != nil {
			return err
		}
	}
}

func (u *UI) menuEntries(session *usecase.Session) []menuEntry {
	actions := map[policy.Operation]func(context.Context, *usecase.Session) error{
		policy.OpAddItem:      u.addItem,
		policy.OpListItems:    u.listItems,
		policy.OpDeleteItem:   u.deleteItem,
		policy.OpListAccounts: u.listAccounts,
		policy.OpAddAccount:   u.addAccount,
		policy.OpChangeRole:   u.changeRole,
	}

	var entries []menuEntry
	for _, op := range session.Operations() {
		entries = append(entries, menuEntry{label: capitalize(op.String()), op: op, action: actions[op]})
	}
	entries = append(entries,
		menuEntry{label: "Logout"},
		menuEntry{label: "Exit", action: func(context.Context, *usecase.Session) error { return errExit }},
	)
	return entries
}

// pickEntry accepts a menu number or an entry's name, e.g. "3" or "delete item".
func pickEntry(entries []menuEntry, choice string) (menuEntry, bool) {
	choice = strings.TrimSpace(choice)
	if n, err := strconv.Atoi(choice); err == nil {
		if n < 1 || n > len(entries) {
			return menuEntry{}, false
		}
		return entries[n-1], true
	}

	op, named := policy.ParseOperation(choice)
	for _, e := range entries {
		if (named && e.op == op) || strings.EqualFold(e.label, choice) {
			return e, true
		}
	}
	return menuEntry{}, false
}

// report prints caller-correctable errors and passes the rest through.
func (u *UI) report(err error) error {
	switch {
	case err == nil:
		return nil
	case domainErrors.IsValidationError(err):
		u.println(u.styles.errText.Render("Error: " + err.Error()))
		return nil
	case domainErrors.IsPermissionError(err):
		u.println(u.styles.errText.Render("Permission denied."))
		return nil
	default:
		return err
	}
}

func (u *UI) addItem(ctx context.Context, session *usecase.Session) error {
	var input usecase.AddItemInput
	var err error
	if input.Name, err = u.prompt("Item name: "); err != nil {
		return err
	}
	if input.Quantity, err = u.prompt("Quantity: "); err != nil {
		return err
	}
	if input.Unit, err = u.prompt("Unit [" + entity.DefaultUnit + "]: "); err != nil {
		return err
	}

	item, err := session.AddItem(ctx, input)
	if err != nil {
		return err
	}
	u.println(u.styles.okText.Render(fmt.Sprintf("Added item #%s: %s (%d %s).", item.ID, item.Name, item.Quantity, item.Unit)))
	return nil
}

func (u *UI) listItems(ctx context.Context, session *usecase.Session) error {
	items, err := session.ListItems(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		u.println("No items in inventory.")
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.ID,
			item.Name,
			item.StoredQuantity(),
			item.Unit,
			item.AddedBy,
			item.DateAdded,
		})
	}
	u.printf("%s", u.styles.table([]string{"ID", "Name", "Qty", "Unit", "Added by", "Date"}, rows))
	return nil
}

func (u *UI) deleteItem(ctx context.Context, session *usecase.Session) error {
	id, err := u.prompt("Item ID to delete: ")
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)

	deleted, err := session.DeleteItem(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		u.println(u.styles.errText.Render(fmt.Sprintf("Item #%s not found.", id)))
		return nil
	}
	u.println(u.styles.okText.Render(fmt.Sprintf("Deleted item #%s.", id)))
	return nil
}

func (u *UI) listAccounts(ctx context.Context, session *usecase.Session) error {
	accounts, err := session.ListAccounts(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, []string{a.Username, a.Role.String()})
	}
	u.printf("%s", u.styles.table([]string{"Username", "Role"}, rows))
	return nil
}

func (u *UI) addAccount(ctx context.Context, session *usecase.Session) error {
	var input usecase.AddAccountInput
	var err error
	if input.Username, err = u.prompt("New username: "); err != nil {
		return err
	}
	if input.Password, err = u.promptSecret("Password: "); err != nil {
		return err
	}
	if input.Role, err = u.prompt("Role (" + roleChoices() + "): "); err != nil {
		return err
	}

	account, err := session.AddAccount(ctx, input)
	if err != nil {
		return err
	}
	u.println(u.styles.okText.Render(fmt.Sprintf("Created %s with role %s.", account.Username, account.Role)))
	return nil
}

func (u *UI) changeRole(ctx context.Context, session *usecase.Session) error {
	username, err := u.prompt("Username: ")
	if err != nil {
		return err
	}
	role, err := u.prompt("New role (" + roleChoices() + "): ")
	if err != nil {
		return err
	}

	account, err := session.ChangeRole(ctx, username, role)
	if err != nil {
		return err
	}
	u.println(u.styles.okText.Render(fmt.Sprintf("%s is now %s.", account.Username, account.Role)))
	if account.Username == session.Identity().Username {
		u.println(u.styles.muted.Render("Your new role applies from your next login."))
	}
	return nil
}

func (u *UI) prompt(label string) (string, error) {
	u.printf("%s", label)
	if !u.in.Scan() {
		if err := u.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(u.in.Text(), "\r"), nil
}

func (u *UI) promptSecret(label string) (string, error) {
	if u.readPassword == nil {
		return u.prompt(label)
	}
	u.printf("%s", label)
	return u.readPassword()
}

func (u *UI) println(s string) {
	fmt.Fprintln(u.out, s)
}

func (u *UI) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format, args...)
}

func roleChoices() string {
	roles := entity.GetValidRoles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	return strings.Join(names, "/")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
