package items

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	domainErrors "inventory-tracker/internal/domain/errors"
	"inventory-tracker/internal/domain/policy"
	"inventory-tracker/internal/interfaces/controller"
	"inventory-tracker/internal/usecase"
)

type ItemHandler struct{}

func NewItemHandler() *ItemHandler {
	return &ItemHandler{}
}

// CreateItemRequest carries quantity as text so parsing errors surface as validation errors.
type CreateItemRequest struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

func (h *ItemHandler) GetItems(c echo.Context) error {
	session, ok := controller.SessionFrom(c)
	if !ok {
		return controller.Unauthenticated(c)
	}

	items, err := session.ListItems(c.Request().Context())
	if err != nil {
		return controller.RespondError(c, err, "failed to retrieve items")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) CreateItem(c echo.Context) error {
	session, ok := controller.SessionFrom(c)
	if !ok {
		return controller.Unauthenticated(c)
	}

	if !session.Can(policy.OpAddItem) {
		return controller.Forbidden(c)
	}

	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, controller.ErrorResponse{
			Error: "invalid request format",
		})
	}

	item, err := session.AddItem(c.Request().Context(), usecase.AddItemInput{
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
	})
	if err != nil {
		return controller.RespondError(c, err, "failed to create item")
	}

	return c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) DeleteItem(c echo.Context) error {
	session, ok := controller.SessionFrom(c)
	if !ok {
		return controller.Unauthenticated(c)
	}

	id := strings.TrimSpace(c.Param("id"))
	deleted, err := session.DeleteItem(c.Request().Context(), id)
	if err != nil {
		return controller.RespondError(c, err, "failed to delete item")
	}
	if !deleted {
		return controller.RespondError(c, domainErrors.ErrItemNotFound, "")
	}

	return c.NoContent(http.StatusNoContent)
}
