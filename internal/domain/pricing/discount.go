package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrDiscountKind = errors.New("pricing: unknown discount kind")

// DiscountKind selects how a discount reduces the current price.
type DiscountKind string

const (
	DiscountPercent DiscountKind = "percent"
	DiscountFlat    DiscountKind = "flat"
)

// Discount is a hall-scoped, toggleable reduction gated on booking lead time.
type Discount struct {
	ID             string
	HallID         string
	Name           string
	Kind           DiscountKind
	Value          decimal.Decimal
	MinAdvanceDays int
	Active         bool
}

// AmountOff returns the reduction computed against the current price.
// Percent discounts compound: the amount depends on the already-discounted
// price, not the original base.
func (d Discount) AmountOff(current decimal.Decimal) decimal.Decimal {
	switch d.Kind {
	case DiscountFlat:
		return d.Value
	case DiscountPercent:
		return current.Mul(d.Value).Div(decimal.NewFromInt(100))
	}
	return decimal.Zero
}

// Validate checks authoring invariants.
func (d Discount) Validate() error {
	if d.Name == "" {
		return errors.New("pricing: discount name required")
	}
	switch d.Kind {
	case DiscountPercent, DiscountFlat:
	default:
		return ErrDiscountKind
	}
	return nil
}
