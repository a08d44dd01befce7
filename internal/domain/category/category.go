package category

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidCategoryType = errors.New("invalid category type")

// Type classifies a category as income or expense
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// ParseType validates a caller-supplied category type string
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeIncome, TypeExpense:
		return Type(s), nil
	}
	return "", ErrInvalidCategoryType
}

// Category classifies transactions for reporting.
// It never affects balances; transactions merely reference it.
type Category struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Type  Type      `json:"type"`
	Color string    `json:"color"` // Display color, hex string
}

// New creates a category
func New(name string, categoryType Type, color string) (*Category, error) {
	if _, err := ParseType(string(categoryType)); err != nil {
		return nil, err
	}
	if color == "" {
		color = "#000000"
	}

	return &Category{
		ID:    uuid.New(),
		Name:  name,
		Type:  categoryType,
		Color: color,
	}, nil
}
