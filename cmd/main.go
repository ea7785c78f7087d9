package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"inventory-tracker/internal/infrastructure/config"
	"inventory-tracker/internal/infrastructure/csvstore"
	"inventory-tracker/internal/infrastructure/logging"
	"inventory-tracker/internal/infrastructure/server"
	"inventory-tracker/internal/interfaces/terminal"
	"inventory-tracker/internal/usecase"
)

const (
	appName = "inventory"
	Version = "0.1.0"
)

type flags struct {
	envFile   string
	itemsPath string
	usersPath string
	logLevel  string
	logFormat string
	addr      string
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Role-gated inventory tracker backed by CSV files",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTerminal(cmd.Context(), f)
		},
	}

	cmd.PersistentFlags().StringVar(&f.envFile, "env-file", ".env", "Optional dotenv file")
	cmd.PersistentFlags().StringVar(&f.itemsPath, "items", "", "Items CSV path (overrides INVENTORY_ITEMS_PATH)")
	cmd.PersistentFlags().StringVar(&f.usersPath, "users", "", "Users CSV path (overrides INVENTORY_USERS_PATH)")
	cmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&f.logFormat, "log-format", "", "Log format (text, json)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the inventory over HTTP with basic auth",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), f)
		},
	}
	serveCmd.Flags().StringVar(&f.addr, "addr", "", "Listen address (overrides INVENTORY_HTTP_ADDR)")
	cmd.AddCommand(serveCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	})

	return cmd
}

// app holds the wired core shared by both drivers.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	auth     usecase.Authenticator
	items    usecase.ItemUsecase
	accounts usecase.AccountUsecase
}

func setup(ctx context.Context, f flags) (*app, error) {
	cfg, err := config.Load(f.envFile)
	if err != nil {
		return nil, err
	}
	applyFlags(cfg, f)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	slog.SetDefault(logger)

	itemStore := csvstore.NewItemStore(cfg.ItemsPath)
	accountStore := csvstore.NewAccountStore(cfg.UsersPath)
	if err := itemStore.EnsureReady(ctx); err != nil {
		return nil, fmt.Errorf("prepare items table: %w", err)
	}
	if err := accountStore.EnsureReady(ctx); err != nil {
		return nil, fmt.Errorf("prepare users table: %w", err)
	}
	logger.Debug("stores ready", "items", itemStore.Path(), "users", accountStore.Path())

	return &app{
		cfg:      cfg,
		logger:   logger,
		auth:     usecase.NewAuthenticator(accountStore, usecase.WithLogger(logger)),
		items:    usecase.NewItemUsecase(itemStore, usecase.WithLogger(logger)),
		accounts: usecase.NewAccountUsecase(accountStore, usecase.WithLogger(logger)),
	}, nil
}

func applyFlags(cfg *config.Config, f flags) {
	if f.itemsPath != "" {
		cfg.ItemsPath = f.itemsPath
	}
	if f.usersPath != "" {
		cfg.UsersPath = f.usersPath
	}
	if f.logLevel != "" {
		cfg.LogLevel = strings.ToLower(f.logLevel)
	}
	if f.logFormat != "" {
		cfg.LogFormat = strings.ToLower(f.logFormat)
	}
	if f.addr != "" {
		cfg.HTTPAddr = f.addr
	}
}

func runTerminal(ctx context.Context, f flags) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx, f)
	if err != nil {
		return err
	}

	opts := []terminal.Option{terminal.WithLogger(a.logger)}
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		opts = append(opts, terminal.WithPasswordReader(func() (string, error) {
			password, err := term.ReadPassword(fd)
			fmt.Fprintln(os.Stdout)
			if err != nil {
				return "", fmt.Errorf("failed to read password: %w", err)
			}
			return string(password), nil
		}))
	}

	ui := terminal.New(os.Stdin, os.Stdout, a.auth, a.items, a.accounts, opts...)
	return ui.Run(ctx)
}

func runServer(ctx context.Context, f flags) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx, f)
	if err != nil {
		return err
	}

	srv := server.NewServer(a.cfg.HTTPAddr, a.auth, a.items, a.accounts, a.logger)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
