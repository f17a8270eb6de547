package pricing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PriceBreakdown is the result of a single resolution call. It is built
// fresh on every call and never mutated afterwards.
type PriceBreakdown struct {
	BasePrice        decimal.Decimal
	FinalPrice       decimal.Decimal
	AppliedRule      *Rule
	AppliedOverride  *Override
	AppliedDiscounts []Discount
}

// Input bundles everything Resolve needs. Now is an explicit parameter so
// that discount lead-time gating stays deterministic under test; it is the
// only clock the resolver ever sees.
type Input struct {
	TargetDate time.Time
	Now        time.Time
	BasePrice  decimal.Decimal
	Rules      []Rule
	Overrides  []Override
	Discounts  []Discount
}

// Resolve computes the bookable price for a single calendar day.
//
// Precedence: a date-exact override wins outright and skips rule evaluation;
// otherwise rules are scanned by tier descending and the first match applies
// its adjustment to the base price. Discounts then run in input order,
// each gated on lead time and each compounding on the current price, and the
// result is clamped at zero. Pure: no I/O, no hidden clock, inputs are
// treated as read-only snapshots.
func Resolve(in Input) PriceBreakdown {
	day := Midnight(in.TargetDate)
	current := in.BasePrice
	out := PriceBreakdown{
		BasePrice:        in.BasePrice,
		AppliedDiscounts: []Discount{},
	}

	if ov, ok := overrideFor(in.Overrides, day); ok {
		current = ov.Price
		out.AppliedOverride = &ov
	} else if rule, ok := firstMatch(in.Rules, day); ok {
		current = rule.Apply(in.BasePrice)
		out.AppliedRule = &rule
	}

	// May be negative for past dates; that flows through the comparison
	// rather than being rejected here. Date validity is a caller concern.
	lead := DaysInAdvance(in.Now, day)

	for _, d := range in.Discounts {
		if !d.Active {
			continue
		}
		if lead < d.MinAdvanceDays {
			continue
		}
		current = current.Sub(d.AmountOff(current))
		out.AppliedDiscounts = append(out.AppliedDiscounts, d)
	}

	if current.IsNegative() {
		current = decimal.Zero
	}
	out.FinalPrice = current
	return out
}

// DaysInAdvance is the whole number of days between now's calendar day and
// the target day. Negative when the target lies in the past.
func DaysInAdvance(now, target time.Time) int {
	return int(Midnight(target).Sub(Midnight(now)).Hours() / 24)
}

func overrideFor(overrides []Override, day time.Time) (Override, bool) {
	for _, ov := range overrides {
		if ov.AppliesTo(day) {
			return ov, true
		}
	}
	return Override{}, false
}

// firstMatch returns the first structurally matching rule after a stable
// sort by tier descending. Caller ordering within a tier is preserved, and
// callers do not need to pre-sort at all.
func firstMatch(rules []Rule, day time.Time) (Rule, bool) {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Tier > sorted[j].Tier
	})
	for _, rule := range sorted {
		if rule.Matches(day) {
			return rule, true
		}
	}
	return Rule{}, false
}
