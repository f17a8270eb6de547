package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainpricing "hajez/internal/domain/pricing"
)

func TestUpsertOverrideReplacesSameDate(t *testing.T) {
	repo := NewPricingRepository()
	ctx := context.Background()
	date := time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.UpsertOverride(ctx, domainpricing.Override{
		ID: "ov-1", HallID: "hall-1", Date: date, Price: decimal.NewFromInt(3000),
	}))
	require.NoError(t, repo.UpsertOverride(ctx, domainpricing.Override{
		ID: "ov-2", HallID: "hall-1", Date: date.Add(10 * time.Hour), Price: decimal.NewFromInt(3500),
	}))

	overrides, err := repo.OverridesInRange(ctx, "hall-1", date, date)
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	assert.Equal(t, "ov-2", overrides[0].ID)
	assert.True(t, overrides[0].Price.Equal(decimal.NewFromInt(3500)))
}

func TestOverridesInRangeFiltersByWindow(t *testing.T) {
	repo := NewPricingRepository()
	ctx := context.Background()

	for i, day := range []int{24, 25, 26} {
		require.NoError(t, repo.UpsertOverride(ctx, domainpricing.Override{
			ID:     string(rune('a' + i)),
			HallID: "hall-1",
			Date:   time.Date(2025, time.December, day, 0, 0, 0, 0, time.UTC),
			Price:  decimal.NewFromInt(1000),
		}))
	}

	overrides, err := repo.OverridesInRange(ctx, "hall-1",
		time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.December, 26, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, overrides, 2)
}

func TestDeleteRuleNotFound(t *testing.T) {
	repo := NewPricingRepository()

	err := repo.DeleteRule(context.Background(), "hall-1", "missing")
	assert.ErrorIs(t, err, domainpricing.ErrRuleNotFound)
}

func TestDeleteOverrideNotFound(t *testing.T) {
	repo := NewPricingRepository()

	err := repo.DeleteOverride(context.Background(), "hall-1", "missing")
	assert.ErrorIs(t, err, domainpricing.ErrOverrideNotFound)
}

func TestSaveRuleUpdatesInPlace(t *testing.T) {
	repo := NewPricingRepository()
	ctx := context.Background()

	rule := domainpricing.Rule{
		ID: "r-1", HallID: "hall-1", Name: "weekend",
		Tier:           domainpricing.TierDayOfWeek,
		DaysOfWeek:     []time.Weekday{time.Friday},
		AdjustmentKind: domainpricing.AdjustPercent, AdjustmentValue: decimal.NewFromInt(10),
	}
	require.NoError(t, repo.SaveRule(ctx, rule))

	rule.Name = "weekend v2"
	require.NoError(t, repo.SaveRule(ctx, rule))

	rules, err := repo.RulesByHall(ctx, "hall-1")
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "weekend v2", rules[0].Name)
}
