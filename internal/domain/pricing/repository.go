package pricing

import (
	"context"
	"errors"
	"time"
)

var (
	ErrRuleNotFound     = errors.New("pricing: rule not found")
	ErrOverrideNotFound = errors.New("pricing: override not found")
	ErrDiscountNotFound = errors.New("pricing: discount not found")
)

// Repository supplies and stores a hall's pricing configuration. Reads are
// always pre-filtered by hall; the resolver never reaches across halls.
type Repository interface {
	RulesByHall(ctx context.Context, hallID string) ([]Rule, error)
	OverridesInRange(ctx context.Context, hallID string, from, to time.Time) ([]Override, error)
	DiscountsByHall(ctx context.Context, hallID string) ([]Discount, error)

	SaveRule(ctx context.Context, rule Rule) error
	DeleteRule(ctx context.Context, hallID, ruleID string) error
	UpsertOverride(ctx context.Context, override Override) error
	DeleteOverride(ctx context.Context, hallID, overrideID string) error
	SaveDiscount(ctx context.Context, discount Discount) error
}
