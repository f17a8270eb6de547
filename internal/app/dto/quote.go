package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"hajez/internal/domain/pricing"
)

// DateLayout is the wire format for calendar dates throughout the API.
const DateLayout = "2006-01-02"

type AppliedRule struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Tier            int             `json:"tier"`
	AdjustmentKind  string          `json:"adjustment_kind"`
	AdjustmentValue decimal.Decimal `json:"adjustment_value"`
}

type AppliedOverride struct {
	ID    string          `json:"id"`
	Date  string          `json:"date"`
	Price decimal.Decimal `json:"price"`
}

type AppliedDiscount struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Kind           string          `json:"kind"`
	Value          decimal.Decimal `json:"value"`
	MinAdvanceDays int             `json:"min_advance_days"`
}

// Quote is the resolved price for one hall on one date.
type Quote struct {
	HallID           string            `json:"hall_id"`
	Date             string            `json:"date"`
	BasePrice        decimal.Decimal   `json:"base_price"`
	FinalPrice       decimal.Decimal   `json:"final_price"`
	AppliedRule      *AppliedRule      `json:"applied_rule,omitempty"`
	AppliedOverride  *AppliedOverride  `json:"applied_override,omitempty"`
	AppliedDiscounts []AppliedDiscount `json:"applied_discounts"`
}

// MapQuote flattens a price breakdown into its wire form.
func MapQuote(hallID string, date time.Time, pb pricing.PriceBreakdown) Quote {
	q := Quote{
		HallID:           hallID,
		Date:             date.Format(DateLayout),
		BasePrice:        pb.BasePrice,
		FinalPrice:       pb.FinalPrice,
		AppliedDiscounts: make([]AppliedDiscount, 0, len(pb.AppliedDiscounts)),
	}
	if pb.AppliedRule != nil {
		q.AppliedRule = &AppliedRule{
			ID:              pb.AppliedRule.ID,
			Name:            pb.AppliedRule.Name,
			Tier:            int(pb.AppliedRule.Tier),
			AdjustmentKind:  string(pb.AppliedRule.AdjustmentKind),
			AdjustmentValue: pb.AppliedRule.AdjustmentValue,
		}
	}
	if pb.AppliedOverride != nil {
		q.AppliedOverride = &AppliedOverride{
			ID:    pb.AppliedOverride.ID,
			Date:  pb.AppliedOverride.Date.Format(DateLayout),
			Price: pb.AppliedOverride.Price,
		}
	}
	for _, d := range pb.AppliedDiscounts {
		q.AppliedDiscounts = append(q.AppliedDiscounts, AppliedDiscount{
			ID:             d.ID,
			Name:           d.Name,
			Kind:           string(d.Kind),
			Value:          d.Value,
			MinAdvanceDays: d.MinAdvanceDays,
		})
	}
	return q
}
