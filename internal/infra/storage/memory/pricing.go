package memory

import (
	"context"
	"sync"
	"time"

	domainpricing "hajez/internal/domain/pricing"
)

// PricingRepository holds a hall's pricing configuration in memory. Reads
// hand back copies so resolver inputs stay immutable snapshots.
type PricingRepository struct {
	mu        sync.RWMutex
	rules     map[string][]domainpricing.Rule     // keyed by hall id
	overrides map[string][]domainpricing.Override // at most one per (hall, date)
	discounts map[string][]domainpricing.Discount
}

func NewPricingRepository() *PricingRepository {
	return &PricingRepository{
		rules:     make(map[string][]domainpricing.Rule),
		overrides: make(map[string][]domainpricing.Override),
		discounts: make(map[string][]domainpricing.Discount),
	}
}

func (r *PricingRepository) RulesByHall(ctx context.Context, hallID string) ([]domainpricing.Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domainpricing.Rule(nil), r.rules[hallID]...), nil
}

func (r *PricingRepository) OverridesInRange(ctx context.Context, hallID string, from, to time.Time) ([]domainpricing.Override, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fromDay := domainpricing.Midnight(from)
	toDay := domainpricing.Midnight(to)
	var out []domainpricing.Override
	for _, ov := range r.overrides[hallID] {
		day := domainpricing.Midnight(ov.Date)
		if day.Before(fromDay) || day.After(toDay) {
			continue
		}
		out = append(out, ov)
	}
	return out, nil
}

func (r *PricingRepository) DiscountsByHall(ctx context.Context, hallID string) ([]domainpricing.Discount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domainpricing.Discount(nil), r.discounts[hallID]...), nil
}

func (r *PricingRepository) SaveRule(ctx context.Context, rule domainpricing.Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.rules[rule.HallID] {
		if existing.ID == rule.ID {
			r.rules[rule.HallID][i] = rule
			return nil
		}
	}
	r.rules[rule.HallID] = append(r.rules[rule.HallID], rule)
	return nil
}

func (r *PricingRepository) DeleteRule(ctx context.Context, hallID, ruleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rules := r.rules[hallID]
	for i, rule := range rules {
		if rule.ID == ruleID {
			r.rules[hallID] = append(rules[:i], rules[i+1:]...)
			return nil
		}
	}
	return domainpricing.ErrRuleNotFound
}

// UpsertOverride replaces any existing pin on the same date, keeping the
// one-override-per-date invariant the resolver relies on.
func (r *PricingRepository) UpsertOverride(ctx context.Context, override domainpricing.Override) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	day := domainpricing.Midnight(override.Date)
	overrides := r.overrides[override.HallID]
	for i, existing := range overrides {
		if domainpricing.Midnight(existing.Date).Equal(day) {
			overrides[i] = override
			return nil
		}
	}
	r.overrides[override.HallID] = append(overrides, override)
	return nil
}

func (r *PricingRepository) DeleteOverride(ctx context.Context, hallID, overrideID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	overrides := r.overrides[hallID]
	for i, ov := range overrides {
		if ov.ID == overrideID {
			r.overrides[hallID] = append(overrides[:i], overrides[i+1:]...)
			return nil
		}
	}
	return domainpricing.ErrOverrideNotFound
}

func (r *PricingRepository) SaveDiscount(ctx context.Context, discount domainpricing.Discount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.discounts[discount.HallID] {
		if existing.ID == discount.ID {
			r.discounts[discount.HallID][i] = discount
			return nil
		}
	}
	r.discounts[discount.HallID] = append(r.discounts[discount.HallID], discount)
	return nil
}

var _ domainpricing.Repository = (*PricingRepository)(nil)
