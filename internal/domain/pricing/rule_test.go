package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleMatches(t *testing.T) {
	// 2025-12-25 is a Thursday.
	day := time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC)
	dec1 := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	dec31 := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		rule Rule
		want bool
	}{
		{
			name: "range only, inside",
			rule: Rule{StartDate: dec1, EndDate: dec31},
			want: true,
		},
		{
			name: "range only, inclusive start boundary",
			rule: Rule{StartDate: day, EndDate: dec31},
			want: true,
		},
		{
			name: "range only, inclusive end boundary",
			rule: Rule{StartDate: dec1, EndDate: day},
			want: true,
		},
		{
			name: "range only, outside",
			rule: Rule{StartDate: dec1, EndDate: time.Date(2025, time.December, 24, 0, 0, 0, 0, time.UTC)},
			want: false,
		},
		{
			name: "weekday only, hit",
			rule: Rule{DaysOfWeek: []time.Weekday{time.Thursday}},
			want: true,
		},
		{
			name: "weekday only, miss",
			rule: Rule{DaysOfWeek: []time.Weekday{time.Friday, time.Saturday}},
			want: false,
		},
		{
			name: "range and weekday both required",
			rule: Rule{StartDate: dec1, EndDate: dec31, DaysOfWeek: []time.Weekday{time.Thursday}},
			want: true,
		},
		{
			name: "range hit but weekday miss",
			rule: Rule{StartDate: dec1, EndDate: dec31, DaysOfWeek: []time.Weekday{time.Monday}},
			want: false,
		},
		{
			name: "weekday hit but range miss",
			rule: Rule{StartDate: dec1, EndDate: time.Date(2025, time.December, 20, 0, 0, 0, 0, time.UTC), DaysOfWeek: []time.Weekday{time.Thursday}},
			want: false,
		},
		{
			name: "no criteria: catch-all",
			rule: Rule{},
			want: true,
		},
		{
			name: "half range without weekdays never matches",
			rule: Rule{StartDate: dec1},
			want: false,
		},
		{
			name: "half range with matching weekday never matches",
			rule: Rule{EndDate: dec31, DaysOfWeek: []time.Weekday{time.Thursday}},
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.rule.Matches(day))
		})
	}
}

func TestRuleMatchesNormalizesTime(t *testing.T) {
	rule := Rule{
		StartDate: time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC),
	}
	evening := time.Date(2025, time.December, 25, 21, 45, 12, 0, time.UTC)

	assert.True(t, rule.Matches(evening))
}

func TestRuleApply(t *testing.T) {
	base := decimal.NewFromInt(1000)

	fixed := Rule{AdjustmentKind: AdjustFixed, AdjustmentValue: decimal.NewFromInt(777)}
	assert.True(t, fixed.Apply(base).Equal(decimal.NewFromInt(777)))

	flat := Rule{AdjustmentKind: AdjustFlat, AdjustmentValue: decimal.NewFromInt(-250)}
	assert.True(t, flat.Apply(base).Equal(decimal.NewFromInt(750)))

	percent := Rule{AdjustmentKind: AdjustPercent, AdjustmentValue: decimal.NewFromInt(20)}
	assert.True(t, percent.Apply(base).Equal(decimal.NewFromInt(1200)))
}

func TestRuleValidate(t *testing.T) {
	valid := Rule{
		Name:            "Weekend",
		Tier:            TierDayOfWeek,
		DaysOfWeek:      []time.Weekday{time.Friday, time.Saturday},
		AdjustmentKind:  AdjustPercent,
		AdjustmentValue: decimal.NewFromInt(15),
	}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name string
		mut  func(*Rule)
		want error
	}{
		{"missing name", func(r *Rule) { r.Name = "" }, ErrRuleName},
		{"bad tier", func(r *Rule) { r.Tier = 7 }, ErrRuleTier},
		{"bad adjustment", func(r *Rule) { r.AdjustmentKind = "double" }, ErrRuleAdjustment},
		{"half range", func(r *Rule) { r.StartDate = time.Now() }, ErrRuleHalfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := valid
			tc.mut(&r)
			assert.ErrorIs(t, r.Validate(), tc.want)
		})
	}
}

func TestRuleIsCatchAll(t *testing.T) {
	catchAll := Rule{Name: "Everything", Tier: TierSpecial, AdjustmentKind: AdjustFlat, AdjustmentValue: decimal.NewFromInt(100)}

	require.NoError(t, catchAll.Validate(), "catch-alls are legal, only flagged")
	assert.True(t, catchAll.IsCatchAll())

	scoped := catchAll
	scoped.DaysOfWeek = []time.Weekday{time.Sunday}
	assert.False(t, scoped.IsCatchAll())
}
