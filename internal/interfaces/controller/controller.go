// Package controller holds the pieces shared by the echo handlers.
package controller

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	domainErrors "inventory-tracker/internal/domain/errors"
	"inventory-tracker/internal/usecase"
)

// SessionKey is the echo context key under which the auth middleware stores the *usecase.Session.
const SessionKey = "session"

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// SessionFrom returns the authenticated session placed in c by the auth middleware.
func SessionFrom(c echo.Context) (*usecase.Session, bool) {
	session, ok := c.Get(SessionKey).(*usecase.Session)
	return session, ok && session != nil
}

// RespondError maps the domain error taxonomy onto HTTP status codes.
// fallback is the message used for storage and unexpected errors.
func RespondError(c echo.Context, err error, fallback string) error {
	switch {
	case domainErrors.IsValidationError(err):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: []string{err.Error()},
		})
	case domainErrors.IsAuthenticationError(err):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "authentication required",
		})
	case domainErrors.IsPermissionError(err):
		return c.JSON(http.StatusForbidden, ErrorResponse{
			Error: "permission denied",
		})
	case domainErrors.IsNotFoundError(err):
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error: err.Error(),
		})
	default:
		slog.Error(fallback, "error", err, "path", c.Path())
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: fallback,
		})
	}
}

// Forbidden is returned before binding a request body the caller may not submit.
func Forbidden(c echo.Context) error {
	return RespondError(c, domainErrors.ErrPermissionDenied, "")
}

// Unauthenticated is returned when a handler runs without a session.
func Unauthenticated(c echo.Context) error {
	return RespondError(c, domainErrors.ErrAuthenticationFailed, "")
}
