package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	domainErrors "inventory-tracker/internal/domain/errors"
	"inventory-tracker/internal/interfaces/controller"
	accountsController "inventory-tracker/internal/interfaces/controller/accounts"
	itemsController "inventory-tracker/internal/interfaces/controller/items"
	"inventory-tracker/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

// Server exposes the inventory operations over HTTP behind basic auth.
// Every request is authenticated and runs through its own usecase.Session.
type Server struct {
	addr     string
	echo     *echo.Echo
	auth     usecase.Authenticator
	items    usecase.ItemUsecase
	accounts usecase.AccountUsecase
	logger   *slog.Logger
}

func NewServer(addr string, auth usecase.Authenticator, items usecase.ItemUsecase, accounts usecase.AccountUsecase, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		addr:     addr,
		echo:     echo.New(),
		auth:     auth,
		items:    items,
		accounts: accounts,
		logger:   logger,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Handler returns the underlying http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			s.logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	}))
	s.echo.Use(middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Realm:     "inventory",
		Validator: s.validateCredentials,
	}))
}

// validateCredentials stores a session on success. A storage failure is
// returned as an error (500), not reported as bad credentials.
func (s *Server) validateCredentials(username, password string, c echo.Context) (bool, error) {
	identity, err := s.auth.Login(c.Request().Context(), username, password)
	if err != nil {
		if domainErrors.IsAuthenticationError(err) {
			return false, nil
		}
		return false, err
	}

	c.Set(controller.SessionKey, usecase.NewSession(*identity, s.items, s.accounts))
	return true, nil
}

func (s *Server) setupRoutes() {
	itemHandler := itemsController.NewItemHandler()
	accountHandler := accountsController.NewAccountHandler()

	s.echo.GET("/me", accountHandler.GetMe)

	s.echo.GET("/items", itemHandler.GetItems)
	s.echo.POST("/items", itemHandler.CreateItem)
	s.echo.DELETE("/items/:id", itemHandler.DeleteItem)

	s.echo.GET("/accounts", accountHandler.GetAccounts)
	s.echo.POST("/accounts", accountHandler.CreateAccount)
	s.echo.PATCH("/accounts/:username/role", accountHandler.ChangeRole)
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.addr)
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("http server shutting down")
	return s.echo.Shutdown(shutdownCtx)
}
