package queries

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"hajez/internal/app/dto"
	"hajez/internal/domain/halls"
	"hajez/internal/domain/pricing"
)

// GetQuoteQuery asks for the bookable price of one hall on one date.
type GetQuoteQuery struct {
	HallID string
	Date   time.Time
}

// GetQuoteHandler is the fetch side of the fetch/compute split: it fans out
// the four gateway reads concurrently, then makes a single pure Resolve call.
type GetQuoteHandler struct {
	Halls   halls.Repository
	Pricing pricing.Repository
	Clock   func() time.Time
}

func (h *GetQuoteHandler) Handle(ctx context.Context, q GetQuoteQuery) (dto.Quote, error) {
	day := pricing.Midnight(q.Date)

	var (
		hall      *halls.Hall
		rules     []pricing.Rule
		overrides []pricing.Override
		discounts []pricing.Discount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		hall, err = h.Halls.ByID(gctx, halls.HallID(q.HallID))
		return err
	})
	g.Go(func() error {
		var err error
		rules, err = h.Pricing.RulesByHall(gctx, q.HallID)
		return err
	})
	g.Go(func() error {
		var err error
		overrides, err = h.Pricing.OverridesInRange(gctx, q.HallID, day, day)
		return err
	})
	g.Go(func() error {
		var err error
		discounts, err = h.Pricing.DiscountsByHall(gctx, q.HallID)
		return err
	})
	if err := g.Wait(); err != nil {
		return dto.Quote{}, err
	}

	breakdown := pricing.Resolve(pricing.Input{
		TargetDate: day,
		Now:        h.now(),
		BasePrice:  hall.BasePrice,
		Rules:      rules,
		Overrides:  overrides,
		Discounts:  discounts,
	})
	return dto.MapQuote(q.HallID, day, breakdown), nil
}

func (h *GetQuoteHandler) now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return time.Now()
}
