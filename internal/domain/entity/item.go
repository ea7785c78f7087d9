package entity

import (
	"strconv"
	"strings"
	"time"

	domainErrors "inventory-tracker/internal/domain/errors"
)

// DefaultUnit is applied when an item is added without a unit.
const DefaultUnit = "pcs"

// DateLayout is the on-disk format of Item.DateAdded.
const DateLayout = "2006-01-02"

// Item is one row of the inventory table. Records are never mutated after creation.
type Item struct {
	ID        string `json:"item_id"`
	Name      string `json:"item_name"`
	Quantity  int    `json:"quantity"`
	Unit      string `json:"unit"`
	AddedBy   string `json:"added_by"`
	DateAdded string `json:"date_added"`

	// QuantityText holds the stored quantity verbatim when it is not the
	// plain decimal form of a positive Quantity, e.g. "007" or " 5".
	QuantityText string `json:"quantity_text,omitempty"`
}

// NewItem validates raw input and builds an Item without an ID.
// Name and unit are trimmed; an empty unit becomes DefaultUnit.
func NewItem(name, quantityText, unit, addedBy string, addedAt time.Time) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainErrors.NewValidationError(domainErrors.EmptyName)
	}

	quantity, err := ParseQuantity(quantityText)
	if err != nil {
		return nil, err
	}

	unit = strings.TrimSpace(unit)
	if unit == "" {
		unit = DefaultUnit
	}

	return &Item{
		Name:      name,
		Quantity:  quantity,
		Unit:      unit,
		AddedBy:   addedBy,
		DateAdded: addedAt.Format(DateLayout),
	}, nil
}

// ParseQuantity accepts a base-10 integer greater than zero.
func ParseQuantity(s string) (int, error) {
	q, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, domainErrors.NewValidationError(domainErrors.NotAnInteger)
	}
	if q <= 0 {
		return 0, domainErrors.NewValidationError(domainErrors.NonPositiveQuantity)
	}
	return q, nil
}

// SetStoredQuantity fills Quantity and QuantityText from a stored field.
// Text that does not parse leaves Quantity at 0; it is never rejected here.
func (i *Item) SetStoredQuantity(text string) {
	if n, err := strconv.Atoi(text); err == nil && n > 0 && strconv.Itoa(n) == text {
		i.Quantity, i.QuantityText = n, ""
		return
	}

	i.Quantity = 0
	if n, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
		i.Quantity = n
	}
	i.QuantityText = text
}

// StoredQuantity is the inverse of SetStoredQuantity: the exact text to
// persist. An item with no positive Quantity and no QuantityText stores an
// empty field.
func (i *Item) StoredQuantity() string {
	if i.QuantityText != "" || i.Quantity <= 0 {
		return i.QuantityText
	}
	return strconv.Itoa(i.Quantity)
}

// NumericID returns the item's ID as a number, or 0 when it does not parse.
func (i *Item) NumericID() int {
	n, err := strconv.Atoi(strings.TrimSpace(i.ID))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
