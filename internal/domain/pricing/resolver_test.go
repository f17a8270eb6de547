package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	// 2025-12-25 is a Thursday.
	targetDay = time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC)
	// Fixed "now" well ahead of the target so lead-time gates stay predictable.
	clockNow = time.Date(2025, time.November, 1, 10, 30, 0, 0, time.UTC)
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func resolve(base int64, rules []Rule, overrides []Override, discounts []Discount) PriceBreakdown {
	return Resolve(Input{
		TargetDate: targetDay,
		Now:        clockNow,
		BasePrice:  dec(base),
		Rules:      rules,
		Overrides:  overrides,
		Discounts:  discounts,
	})
}

func thursdayRule(value int64) Rule {
	return Rule{
		ID:              "rule-dow",
		Name:            "Thursday Special",
		Tier:            TierDayOfWeek,
		DaysOfWeek:      []time.Weekday{time.Thursday},
		AdjustmentKind:  AdjustFixed,
		AdjustmentValue: dec(value),
	}
}

func seasonRule() Rule {
	return Rule{
		ID:              "rule-season",
		Name:            "Winter Season",
		Tier:            TierSeason,
		StartDate:       time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
		AdjustmentKind:  AdjustPercent,
		AdjustmentValue: dec(20),
	}
}

func specialRule() Rule {
	return Rule{
		ID:              "rule-special",
		Name:            "Holiday",
		Tier:            TierSpecial,
		StartDate:       targetDay,
		EndDate:         targetDay,
		AdjustmentKind:  AdjustFlat,
		AdjustmentValue: dec(500),
	}
}

func TestResolveNoConfig(t *testing.T) {
	out := resolve(1000, nil, nil, nil)

	require.True(t, out.FinalPrice.Equal(dec(1000)), "got %s", out.FinalPrice)
	assert.Nil(t, out.AppliedRule)
	assert.Nil(t, out.AppliedOverride)
	assert.Empty(t, out.AppliedDiscounts)
}

func TestResolveTierPrecedence(t *testing.T) {
	// A day-of-week rule alone pins the Thursday price.
	out := resolve(1000, []Rule{thursdayRule(1200)}, nil, nil)
	require.True(t, out.FinalPrice.Equal(dec(1200)), "got %s", out.FinalPrice)
	require.NotNil(t, out.AppliedRule)
	assert.Equal(t, "rule-dow", out.AppliedRule.ID)

	// A season rule covering the same date suppresses the day-of-week rule
	// no matter how the input is ordered or what the lower tier pays.
	out = resolve(1000, []Rule{thursdayRule(1500), seasonRule()}, nil, nil)
	require.True(t, out.FinalPrice.Equal(dec(1200)), "got %s", out.FinalPrice)
	require.NotNil(t, out.AppliedRule)
	assert.Equal(t, "rule-season", out.AppliedRule.ID)

	// A special rule on the exact date overrides both.
	out = resolve(1000, []Rule{thursdayRule(1500), seasonRule(), specialRule()}, nil, nil)
	require.True(t, out.FinalPrice.Equal(dec(1500)), "got %s", out.FinalPrice)
	require.NotNil(t, out.AppliedRule)
	assert.Equal(t, "rule-special", out.AppliedRule.ID)
}

func TestResolveOverrideBeatsEverything(t *testing.T) {
	override := Override{ID: "ov-1", Date: targetDay, Price: dec(5000)}

	out := resolve(1000, []Rule{thursdayRule(1500), seasonRule(), specialRule()}, []Override{override}, nil)

	require.True(t, out.FinalPrice.Equal(dec(5000)), "got %s", out.FinalPrice)
	require.NotNil(t, out.AppliedOverride)
	assert.Equal(t, "ov-1", out.AppliedOverride.ID)
	assert.Nil(t, out.AppliedRule, "rule evaluation must be skipped entirely")
}

func TestResolveOverrideIgnoresOtherDates(t *testing.T) {
	other := Override{ID: "ov-2", Date: targetDay.AddDate(0, 0, 1), Price: dec(5000)}

	out := resolve(1000, nil, []Override{other}, nil)

	require.True(t, out.FinalPrice.Equal(dec(1000)))
	assert.Nil(t, out.AppliedOverride)
}

func TestResolveDiscountLeadTime(t *testing.T) {
	early := Discount{ID: "d-early", Name: "Early Bird", Kind: DiscountPercent, Value: dec(10), MinAdvanceDays: 20, Active: true}

	out := resolve(1000, nil, nil, []Discount{early})
	require.True(t, out.FinalPrice.Equal(dec(900)), "got %s", out.FinalPrice)
	require.Len(t, out.AppliedDiscounts, 1)

	// Same discount, unreachable lead-time requirement: no reduction.
	early.MinAdvanceDays = 9999
	out = resolve(1000, nil, nil, []Discount{early})
	require.True(t, out.FinalPrice.Equal(dec(1000)), "got %s", out.FinalPrice)
	assert.Empty(t, out.AppliedDiscounts)
}

func TestResolveInactiveDiscountSkipped(t *testing.T) {
	d := Discount{ID: "d-off", Name: "Disabled", Kind: DiscountPercent, Value: dec(50), MinAdvanceDays: 0, Active: false}

	out := resolve(1000, nil, nil, []Discount{d})

	require.True(t, out.FinalPrice.Equal(dec(1000)))
	assert.Empty(t, out.AppliedDiscounts)
}

func TestResolveDiscountsApplyOnTopOfOverride(t *testing.T) {
	override := Override{ID: "ov-1", Date: targetDay, Price: dec(2000)}
	d := Discount{ID: "d-1", Name: "Early Bird", Kind: DiscountPercent, Value: dec(10), MinAdvanceDays: 0, Active: true}

	out := resolve(1000, []Rule{specialRule()}, []Override{override}, []Discount{d})

	require.True(t, out.FinalPrice.Equal(dec(1800)), "got %s", out.FinalPrice)
	require.NotNil(t, out.AppliedOverride)
	require.Len(t, out.AppliedDiscounts, 1)
}

func TestResolveDiscountOrderIsObservable(t *testing.T) {
	percent := Discount{ID: "d-pct", Name: "Ten Percent", Kind: DiscountPercent, Value: dec(10), Active: true}
	flat := Discount{ID: "d-flat", Name: "Fifty Off", Kind: DiscountFlat, Value: dec(50), Active: true}

	// 1000 -> -10% = 900 -> -50 = 850
	first := resolve(1000, nil, nil, []Discount{percent, flat})
	require.True(t, first.FinalPrice.Equal(dec(850)), "got %s", first.FinalPrice)

	// 1000 -> -50 = 950 -> -10% = 855
	second := resolve(1000, nil, nil, []Discount{flat, percent})
	require.True(t, second.FinalPrice.Equal(dec(855)), "got %s", second.FinalPrice)

	assert.False(t, first.FinalPrice.Equal(second.FinalPrice),
		"discounts must compound sequentially, not against a fixed base")
}

func TestResolveZeroFloor(t *testing.T) {
	cases := []struct {
		name      string
		rules     []Rule
		discounts []Discount
	}{
		{
			name: "negative flat adjustment",
			rules: []Rule{{
				ID:              "r-neg",
				Name:            "Bad Flat",
				Tier:            TierSpecial,
				StartDate:       targetDay,
				EndDate:         targetDay,
				AdjustmentKind:  AdjustFlat,
				AdjustmentValue: dec(-2500),
			}},
		},
		{
			name: "compounding flat discounts",
			discounts: []Discount{
				{ID: "d1", Name: "Big", Kind: DiscountFlat, Value: dec(800), Active: true},
				{ID: "d2", Name: "Bigger", Kind: DiscountFlat, Value: dec(800), Active: true},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := resolve(1000, tc.rules, nil, tc.discounts)
			require.True(t, out.FinalPrice.Equal(decimal.Zero), "got %s", out.FinalPrice)
			assert.False(t, out.FinalPrice.IsNegative())
		})
	}
}

func TestResolveFixedIgnoresBase(t *testing.T) {
	rule := thursdayRule(777)
	for _, base := range []int64{0, 100, 1000, 99999} {
		out := resolve(base, []Rule{rule}, nil, nil)
		require.True(t, out.FinalPrice.Equal(dec(777)), "base %d: got %s", base, out.FinalPrice)
	}
}

func TestResolvePercentAgainstBaseOnly(t *testing.T) {
	// Only one rule ever applies, so percent math always sees the raw base.
	out := resolve(1000, []Rule{thursdayRule(9999), seasonRule()}, nil, nil)
	require.True(t, out.FinalPrice.Equal(dec(1200)), "got %s", out.FinalPrice)
}

func TestResolveDeterministic(t *testing.T) {
	rules := []Rule{thursdayRule(1500), seasonRule()}
	overrides := []Override{{ID: "ov", Date: targetDay.AddDate(0, 0, 3), Price: dec(4000)}}
	discounts := []Discount{{ID: "d", Name: "Early", Kind: DiscountPercent, Value: dec(5), MinAdvanceDays: 10, Active: true}}

	a := resolve(1000, rules, overrides, discounts)
	b := resolve(1000, rules, overrides, discounts)

	assert.Equal(t, a, b)
}

func TestResolvePastDateNegativeLead(t *testing.T) {
	// Booking a past date is not rejected; only discounts with a negative
	// threshold could ever pass the gate.
	past := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	d := Discount{ID: "d", Name: "Early", Kind: DiscountPercent, Value: dec(10), MinAdvanceDays: 0, Active: true}

	out := Resolve(Input{
		TargetDate: past,
		Now:        clockNow,
		BasePrice:  dec(1000),
		Discounts:  []Discount{d},
	})

	require.True(t, out.FinalPrice.Equal(dec(1000)))
	assert.Empty(t, out.AppliedDiscounts)
}

func TestResolveInputOrderIrrelevantForRules(t *testing.T) {
	forward := []Rule{thursdayRule(1500), seasonRule(), specialRule()}
	backward := []Rule{specialRule(), seasonRule(), thursdayRule(1500)}

	a := resolve(1000, forward, nil, nil)
	b := resolve(1000, backward, nil, nil)

	require.True(t, a.FinalPrice.Equal(b.FinalPrice))
	assert.Equal(t, a.AppliedRule.ID, b.AppliedRule.ID)
}

func TestDaysInAdvance(t *testing.T) {
	now := time.Date(2025, time.November, 1, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysInAdvance(now, time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, DaysInAdvance(now, time.Date(2025, time.November, 2, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, 54, DaysInAdvance(now, targetDay))
	assert.Equal(t, -1, DaysInAdvance(now, time.Date(2025, time.October, 31, 12, 0, 0, 0, time.UTC)))
}
