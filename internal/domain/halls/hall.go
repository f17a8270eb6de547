package halls

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrHallNotFound = errors.New("halls: not found")
	ErrInvalidHall  = errors.New("halls: name and slug required")
	ErrNegativeBase = errors.New("halls: base price cannot be negative")
)

type HallID string

// Hall is a bookable wedding hall. BasePrice is the undiscounted, unruled
// nightly rate that the pricing resolver starts from; every pricing rule,
// override and discount in the system is scoped to exactly one hall.
type Hall struct {
	ID         HallID
	Name       string
	Slug       string
	ThemeColor string
	BasePrice  decimal.Decimal
}

type Repository interface {
	ByID(ctx context.Context, id HallID) (*Hall, error)
	BySlug(ctx context.Context, slug string) (*Hall, error)
	List(ctx context.Context) ([]*Hall, error)
	Save(ctx context.Context, hall *Hall) error
}

// NewHall validates and builds a hall.
func NewHall(id HallID, name, slug, themeColor string, basePrice decimal.Decimal) (*Hall, error) {
	name = strings.TrimSpace(name)
	slug = strings.TrimSpace(strings.ToLower(slug))
	if name == "" || slug == "" {
		return nil, ErrInvalidHall
	}
	if basePrice.IsNegative() {
		return nil, ErrNegativeBase
	}
	return &Hall{ID: id, Name: name, Slug: slug, ThemeColor: themeColor, BasePrice: basePrice}, nil
}
