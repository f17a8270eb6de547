package pricing

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrRuleName       = errors.New("pricing: rule name required")
	ErrRuleTier       = errors.New("pricing: rule tier must be 1, 2 or 3")
	ErrRuleAdjustment = errors.New("pricing: unknown adjustment kind")
	ErrRuleHalfRange  = errors.New("pricing: rule date range needs both start and end")
	ErrRuleWeekday    = errors.New("pricing: weekday out of range")
)

// RuleTier orders rules by priority: higher tiers suppress lower ones entirely.
type RuleTier int

const (
	TierDayOfWeek RuleTier = 1
	TierSeason    RuleTier = 2
	TierSpecial   RuleTier = 3
)

// AdjustmentKind selects how a matched rule modifies the base price.
type AdjustmentKind string

const (
	// AdjustFixed replaces the base price outright.
	AdjustFixed AdjustmentKind = "fixed"
	// AdjustFlat adds a constant amount to the base price.
	AdjustFlat AdjustmentKind = "flat"
	// AdjustPercent adds a percentage of the base price.
	AdjustPercent AdjustmentKind = "percent"
)

// Rule is a hall-scoped pricing rule. A zero StartDate/EndDate means the
// bound is unset; an empty DaysOfWeek leaves the rule unconstrained by weekday.
type Rule struct {
	ID              string
	HallID          string
	Name            string
	Tier            RuleTier
	StartDate       time.Time
	EndDate         time.Time
	DaysOfWeek      []time.Weekday
	AdjustmentKind  AdjustmentKind
	AdjustmentValue decimal.Decimal
}

// HasDateRange reports whether both range bounds are set. A rule with only
// one bound can never match a date.
func (r Rule) HasDateRange() bool {
	return !r.StartDate.IsZero() && !r.EndDate.IsZero()
}

// IsCatchAll reports whether the rule has no criteria at all and therefore
// matches every date. Allowed, but almost always an authoring mistake, so
// creation surfaces should warn when they see one.
func (r Rule) IsCatchAll() bool {
	return r.StartDate.IsZero() && r.EndDate.IsZero() && len(r.DaysOfWeek) == 0
}

// Matches reports whether the rule applies to the given calendar day.
// The day is compared at midnight UTC; the range is inclusive on both ends.
func (r Rule) Matches(day time.Time) bool {
	day = Midnight(day)
	matched := false

	if r.HasDateRange() {
		start := Midnight(r.StartDate)
		end := Midnight(r.EndDate)
		matched = !day.Before(start) && !day.After(end)
	}

	if len(r.DaysOfWeek) > 0 {
		weekdayHit := false
		for _, wd := range r.DaysOfWeek {
			if wd == day.Weekday() {
				weekdayHit = true
				break
			}
		}
		if !r.StartDate.IsZero() || !r.EndDate.IsZero() {
			// A rule carrying dates must satisfy both the range and the weekday.
			matched = matched && weekdayHit
		} else {
			matched = weekdayHit
		}
	} else if r.StartDate.IsZero() && r.EndDate.IsZero() {
		// No criteria at all: universal catch-all.
		matched = true
	}

	return matched
}

// Apply computes the rule-adjusted price. Adjustments are always relative to
// the unmodified base price, never to another rule's output.
func (r Rule) Apply(base decimal.Decimal) decimal.Decimal {
	switch r.AdjustmentKind {
	case AdjustFixed:
		return r.AdjustmentValue
	case AdjustFlat:
		return base.Add(r.AdjustmentValue)
	case AdjustPercent:
		return base.Add(base.Mul(r.AdjustmentValue).Div(decimal.NewFromInt(100)))
	}
	return base
}

// Validate checks authoring invariants. It rejects half-specified ranges and
// out-of-range weekdays; a criteria-less catch-all passes validation (the
// resolver honors it) and is reported separately via IsCatchAll.
func (r Rule) Validate() error {
	if r.Name == "" {
		return ErrRuleName
	}
	switch r.Tier {
	case TierDayOfWeek, TierSeason, TierSpecial:
	default:
		return ErrRuleTier
	}
	switch r.AdjustmentKind {
	case AdjustFixed, AdjustFlat, AdjustPercent:
	default:
		return ErrRuleAdjustment
	}
	if r.StartDate.IsZero() != r.EndDate.IsZero() {
		return ErrRuleHalfRange
	}
	for _, wd := range r.DaysOfWeek {
		if wd < time.Sunday || wd > time.Saturday {
			return ErrRuleWeekday
		}
	}
	return nil
}

// Midnight truncates a timestamp to its calendar day in UTC.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
