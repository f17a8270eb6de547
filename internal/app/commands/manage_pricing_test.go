package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hajez/internal/domain/pricing"
)

func TestCreateRule(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	h := &CreateRuleHandler{Halls: f.halls, Pricing: f.pricing}
	rule, err := h.Handle(ctx, CreateRuleCommand{
		HallID:          "hall-1",
		Name:            "Weekend",
		Tier:            pricing.TierDayOfWeek,
		DaysOfWeek:      []time.Weekday{time.Friday, time.Saturday},
		AdjustmentKind:  pricing.AdjustPercent,
		AdjustmentValue: decimal.NewFromInt(15),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, rule.ID)

	stored, err := f.pricing.RulesByHall(ctx, "hall-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Weekend", stored[0].Name)
}

func TestCreateRuleRejectsInvalid(t *testing.T) {
	f := newFixtures(t)

	h := &CreateRuleHandler{Halls: f.halls, Pricing: f.pricing}
	_, err := h.Handle(context.Background(), CreateRuleCommand{
		HallID:         "hall-1",
		Name:           "Broken",
		Tier:           pricing.TierSeason,
		StartDate:      cmdDay,
		AdjustmentKind: pricing.AdjustFlat,
	})

	assert.ErrorIs(t, err, pricing.ErrRuleHalfRange)
}

func TestCreateRuleWarnsOnCatchAll(t *testing.T) {
	f := newFixtures(t)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := &CreateRuleHandler{Halls: f.halls, Pricing: f.pricing, Logger: logger}
	_, err := h.Handle(context.Background(), CreateRuleCommand{
		HallID:          "hall-1",
		Name:            "Everything",
		Tier:            pricing.TierSpecial,
		AdjustmentKind:  pricing.AdjustFlat,
		AdjustmentValue: decimal.NewFromInt(100),
	})

	require.NoError(t, err, "catch-alls are stored, only warned about")
	assert.Contains(t, buf.String(), "matches all dates")
}

func TestUpsertOverrideReplacesSameDate(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	h := &UpsertOverrideHandler{Halls: f.halls, Pricing: f.pricing}
	_, err := h.Handle(ctx, UpsertOverrideCommand{HallID: "hall-1", Date: cmdDay, Price: decimal.NewFromInt(4000)})
	require.NoError(t, err)
	second, err := h.Handle(ctx, UpsertOverrideCommand{HallID: "hall-1", Date: cmdDay, Price: decimal.NewFromInt(5000)})
	require.NoError(t, err)

	overrides, err := f.pricing.OverridesInRange(ctx, "hall-1", cmdDay, cmdDay)
	require.NoError(t, err)
	require.Len(t, overrides, 1, "at most one override per (hall, date)")
	assert.Equal(t, second.ID, overrides[0].ID)
	assert.True(t, overrides[0].Price.Equal(decimal.NewFromInt(5000)))
}

func TestCreateDiscount(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	h := &CreateDiscountHandler{Halls: f.halls, Pricing: f.pricing}
	d, err := h.Handle(ctx, CreateDiscountCommand{
		HallID:         "hall-1",
		Name:           "Early Bird",
		Kind:           pricing.DiscountPercent,
		Value:          decimal.NewFromInt(10),
		MinAdvanceDays: 20,
		Active:         true,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, d.ID)

	_, err = h.Handle(ctx, CreateDiscountCommand{HallID: "hall-1", Name: "Bad", Kind: "bogus"})
	assert.ErrorIs(t, err, pricing.ErrDiscountKind)
}

func TestToggleDiscount(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	create := &CreateDiscountHandler{Halls: f.halls, Pricing: f.pricing}
	d, err := create.Handle(ctx, CreateDiscountCommand{
		HallID: "hall-1", Name: "Early Bird",
		Kind: pricing.DiscountPercent, Value: decimal.NewFromInt(10),
		MinAdvanceDays: 20, Active: true,
	})
	require.NoError(t, err)

	toggle := &ToggleDiscountHandler{Pricing: f.pricing}
	toggled, err := toggle.Handle(ctx, ToggleDiscountCommand{HallID: "hall-1", DiscountID: d.ID, Active: false})
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	stored, err := f.pricing.DiscountsByHall(ctx, "hall-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.False(t, stored[0].Active)

	_, err = toggle.Handle(ctx, ToggleDiscountCommand{HallID: "hall-1", DiscountID: "missing", Active: true})
	assert.ErrorIs(t, err, pricing.ErrDiscountNotFound)
}

func TestDeleteRule(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	create := &CreateRuleHandler{Halls: f.halls, Pricing: f.pricing}
	rule, err := create.Handle(ctx, CreateRuleCommand{
		HallID: "hall-1", Name: "Temp", Tier: pricing.TierSeason,
		StartDate: cmdDay, EndDate: cmdDay,
		AdjustmentKind: pricing.AdjustFlat, AdjustmentValue: decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	del := &DeleteRuleHandler{Pricing: f.pricing}
	require.NoError(t, del.Handle(ctx, DeleteRuleCommand{HallID: "hall-1", RuleID: rule.ID}))
	assert.ErrorIs(t, del.Handle(ctx, DeleteRuleCommand{HallID: "hall-1", RuleID: rule.ID}), pricing.ErrRuleNotFound)
}
