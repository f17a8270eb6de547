package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Override is a manual per-date price pin. When present for a date it
// bypasses rule evaluation entirely; discounts still apply on top.
// The data gateway guarantees at most one override per (hall, date).
type Override struct {
	ID     string
	HallID string
	Date   time.Time
	Price  decimal.Decimal
}

// AppliesTo reports whether the override pins exactly the given calendar day.
func (o Override) AppliesTo(day time.Time) bool {
	return Midnight(o.Date).Equal(Midnight(day))
}
