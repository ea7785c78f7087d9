package accounts

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"inventory-tracker/internal/domain/entity"
	"inventory-tracker/internal/domain/policy"
	"inventory-tracker/internal/interfaces/controller"
	"inventory-tracker/internal/usecase"
)

type AccountHandler struct{}

func NewAccountHandler() *AccountHandler {
	return &AccountHandler{}
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// MeResponse describes the caller and what it may do.
type MeResponse struct {
	Username   string      `json:"username"`
	Role       entity.Role `json:"role"`
	Operations []string    `json:"operations"`
}

func (h *AccountHandler) GetMe(c echo.Context) error {
	session, ok := controller.SessionFrom(c)
	if !ok {
		return controller.Unauthenticated(c)
	}

	identity := session.Identity()
	ops := make([]string, 0)
	for _, op := range session.Operations() {
		ops = append(ops, op.String())
	}

	return c.JSON(http.StatusOK, MeResponse{
		Username:   identity.Username,
		Role:       identity.Role,
		Operations: ops,
	})
}

// GetAccounts lists accounts; Account.Password is never serialized.
func (h *AccountHandler) GetAccounts(c echo.Context) error {
	session, ok := controller.SessionFrom(c)
	if !ok {
		return controller.Unauthenticated(c)
	}

	accounts, err := session.ListAccounts(c.Request().Context())
	if err != nil {
		return controller.RespondError(c, err, "failed to retrieve accounts")
	}

	return c.JSON(http.StatusOK, accounts)
}

func (h *AccountHandler) CreateAccount(c echo.Context) error {
	session, ok := controller.SessionFrom(c)
	if !ok {
		return controller.Unauthenticated(c)
	}
	if !session.Can(policy.OpAddAccount) {
		return controller.Forbidden(c)
	}

	var input usecase.AddAccountInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, controller.ErrorResponse{
			Error: "invalid request format",
		})
	}

	account, err := session.AddAccount(c.Request().Context(), input)
	if err != nil {
		return controller.RespondError(c, err, "failed to create account")
	}

	return c.JSON(http.StatusCreated, account)
}

func (h *AccountHandler) ChangeRole(c echo.Context) error {
	session, ok := controller.SessionFrom(c)
	if !ok {
		return controller.Unauthenticated(c)
	}

	if !session.Can(policy.OpChangeRole) {
		return controller.Forbidden(c)
	}

	var req ChangeRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, controller.ErrorResponse{
			Error: "invalid request format",
		})
	}

	account, err := session.ChangeRole(c.Request().Context(), c.Param("username"), req.Role)
	if err != nil {
		return controller.RespondError(c, err, "failed to change role")
	}

	return c.JSON(http.StatusOK, account)
}
