package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hajez/internal/domain/halls"
	"hajez/internal/domain/pricing"
)

// CreateRuleCommand adds a pricing rule to a hall.
type CreateRuleCommand struct {
	HallID          string
	Name            string
	Tier            pricing.RuleTier
	StartDate       time.Time
	EndDate         time.Time
	DaysOfWeek      []time.Weekday
	AdjustmentKind  pricing.AdjustmentKind
	AdjustmentValue decimal.Decimal
}

type CreateRuleHandler struct {
	Halls   halls.Repository
	Pricing pricing.Repository
	Logger  *slog.Logger
}

func (h *CreateRuleHandler) Handle(ctx context.Context, cmd CreateRuleCommand) (pricing.Rule, error) {
	if _, err := h.Halls.ByID(ctx, halls.HallID(cmd.HallID)); err != nil {
		return pricing.Rule{}, err
	}
	rule := pricing.Rule{
		ID:              uuid.NewString(),
		HallID:          cmd.HallID,
		Name:            cmd.Name,
		Tier:            cmd.Tier,
		StartDate:       cmd.StartDate,
		EndDate:         cmd.EndDate,
		DaysOfWeek:      cmd.DaysOfWeek,
		AdjustmentKind:  cmd.AdjustmentKind,
		AdjustmentValue: cmd.AdjustmentValue,
	}
	if err := rule.Validate(); err != nil {
		return pricing.Rule{}, err
	}
	if rule.IsCatchAll() && h.Logger != nil {
		// Legal but suspicious: a rule without criteria matches every date
		// and will shadow every lower-tier rule for this hall.
		h.Logger.Warn("pricing rule has no criteria and matches all dates",
			"hall_id", rule.HallID, "rule_id", rule.ID, "name", rule.Name)
	}
	if err := h.Pricing.SaveRule(ctx, rule); err != nil {
		return pricing.Rule{}, err
	}
	return rule, nil
}

// DeleteRuleCommand removes a rule from a hall.
type DeleteRuleCommand struct {
	HallID string
	RuleID string
}

type DeleteRuleHandler struct {
	Pricing pricing.Repository
}

func (h *DeleteRuleHandler) Handle(ctx context.Context, cmd DeleteRuleCommand) error {
	return h.Pricing.DeleteRule(ctx, cmd.HallID, cmd.RuleID)
}

// UpsertOverrideCommand pins a manual price on a single date. The repository
// guarantees at most one override per (hall, date): writing to an already
// pinned date replaces the pin.
type UpsertOverrideCommand struct {
	HallID string
	Date   time.Time
	Price  decimal.Decimal
}

type UpsertOverrideHandler struct {
	Halls   halls.Repository
	Pricing pricing.Repository
}

func (h *UpsertOverrideHandler) Handle(ctx context.Context, cmd UpsertOverrideCommand) (pricing.Override, error) {
	if _, err := h.Halls.ByID(ctx, halls.HallID(cmd.HallID)); err != nil {
		return pricing.Override{}, err
	}
	if cmd.Price.IsNegative() {
		return pricing.Override{}, halls.ErrNegativeBase
	}
	ov := pricing.Override{
		ID:     uuid.NewString(),
		HallID: cmd.HallID,
		Date:   pricing.Midnight(cmd.Date),
		Price:  cmd.Price,
	}
	if err := h.Pricing.UpsertOverride(ctx, ov); err != nil {
		return pricing.Override{}, err
	}
	return ov, nil
}

// DeleteOverrideCommand releases a pinned date back to rule pricing.
type DeleteOverrideCommand struct {
	HallID     string
	OverrideID string
}

type DeleteOverrideHandler struct {
	Pricing pricing.Repository
}

func (h *DeleteOverrideHandler) Handle(ctx context.Context, cmd DeleteOverrideCommand) error {
	return h.Pricing.DeleteOverride(ctx, cmd.HallID, cmd.OverrideID)
}

// CreateDiscountCommand adds a lead-time gated discount to a hall.
type CreateDiscountCommand struct {
	HallID         string
	Name           string
	Kind           pricing.DiscountKind
	Value          decimal.Decimal
	MinAdvanceDays int
	Active         bool
}

type CreateDiscountHandler struct {
	Halls   halls.Repository
	Pricing pricing.Repository
}

func (h *CreateDiscountHandler) Handle(ctx context.Context, cmd CreateDiscountCommand) (pricing.Discount, error) {
	if _, err := h.Halls.ByID(ctx, halls.HallID(cmd.HallID)); err != nil {
		return pricing.Discount{}, err
	}
	d := pricing.Discount{
		ID:             uuid.NewString(),
		HallID:         cmd.HallID,
		Name:           cmd.Name,
		Kind:           cmd.Kind,
		Value:          cmd.Value,
		MinAdvanceDays: cmd.MinAdvanceDays,
		Active:         cmd.Active,
	}
	if err := d.Validate(); err != nil {
		return pricing.Discount{}, err
	}
	if err := h.Pricing.SaveDiscount(ctx, d); err != nil {
		return pricing.Discount{}, err
	}
	return d, nil
}

// ToggleDiscountCommand flips a discount's active flag without touching the
// rest of its configuration.
type ToggleDiscountCommand struct {
	HallID     string
	DiscountID string
	Active     bool
}

type ToggleDiscountHandler struct {
	Pricing pricing.Repository
}

func (h *ToggleDiscountHandler) Handle(ctx context.Context, cmd ToggleDiscountCommand) (pricing.Discount, error) {
	discounts, err := h.Pricing.DiscountsByHall(ctx, cmd.HallID)
	if err != nil {
		return pricing.Discount{}, err
	}
	for _, d := range discounts {
		if d.ID != cmd.DiscountID {
			continue
		}
		d.Active = cmd.Active
		if err := h.Pricing.SaveDiscount(ctx, d); err != nil {
			return pricing.Discount{}, err
		}
		return d, nil
	}
	return pricing.Discount{}, pricing.ErrDiscountNotFound
}
