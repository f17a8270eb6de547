package dto

import (
	"github.com/shopspring/decimal"

	"hajez/internal/domain/calendar"
	"hajez/internal/domain/pricing"
)

type PricingRule struct {
	ID              string          `json:"id"`
	HallID          string          `json:"hall_id"`
	Name            string          `json:"name"`
	Tier            int             `json:"tier"`
	StartDate       string          `json:"start_date,omitempty"`
	EndDate         string          `json:"end_date,omitempty"`
	DaysOfWeek      []int           `json:"days_of_week,omitempty"`
	AdjustmentKind  string          `json:"adjustment_kind"`
	AdjustmentValue decimal.Decimal `json:"adjustment_value"`
}

func MapRule(r pricing.Rule) PricingRule {
	out := PricingRule{
		ID:              r.ID,
		HallID:          r.HallID,
		Name:            r.Name,
		Tier:            int(r.Tier),
		AdjustmentKind:  string(r.AdjustmentKind),
		AdjustmentValue: r.AdjustmentValue,
	}
	if !r.StartDate.IsZero() {
		out.StartDate = r.StartDate.Format(DateLayout)
	}
	if !r.EndDate.IsZero() {
		out.EndDate = r.EndDate.Format(DateLayout)
	}
	for _, wd := range r.DaysOfWeek {
		out.DaysOfWeek = append(out.DaysOfWeek, int(wd))
	}
	return out
}

type PricingOverride struct {
	ID     string          `json:"id"`
	HallID string          `json:"hall_id"`
	Date   string          `json:"date"`
	Price  decimal.Decimal `json:"price"`
}

func MapOverride(o pricing.Override) PricingOverride {
	return PricingOverride{
		ID:     o.ID,
		HallID: o.HallID,
		Date:   o.Date.Format(DateLayout),
		Price:  o.Price,
	}
}

type PricingDiscount struct {
	ID             string          `json:"id"`
	HallID         string          `json:"hall_id"`
	Name           string          `json:"name"`
	Kind           string          `json:"kind"`
	Value          decimal.Decimal `json:"value"`
	MinAdvanceDays int             `json:"min_advance_days"`
	Active         bool            `json:"active"`
}

func MapDiscount(d pricing.Discount) PricingDiscount {
	return PricingDiscount{
		ID:             d.ID,
		HallID:         d.HallID,
		Name:           d.Name,
		Kind:           string(d.Kind),
		Value:          d.Value,
		MinAdvanceDays: d.MinAdvanceDays,
		Active:         d.Active,
	}
}

type DayRecord struct {
	ID          string           `json:"id"`
	HallID      string           `json:"hall_id"`
	Date        string           `json:"date"`
	Status      string           `json:"status"`
	ManualPrice *decimal.Decimal `json:"manual_price,omitempty"`
}

func MapDayRecord(d calendar.Day) DayRecord {
	return DayRecord{
		ID:          d.ID,
		HallID:      string(d.HallID),
		Date:        d.Date.Format(DateLayout),
		Status:      string(d.Status),
		ManualPrice: d.ManualPrice,
	}
}
