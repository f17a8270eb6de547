package queries

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"hajez/internal/app/dto"
	"hajez/internal/domain/booking"
	"hajez/internal/domain/calendar"
	"hajez/internal/domain/halls"
	"hajez/internal/domain/pricing"
)

var ErrInvalidWindow = errors.New("queries: calendar window end precedes start")

// GetCalendarQuery asks for the day-by-day availability view of a hall.
type GetCalendarQuery struct {
	HallID string
	From   time.Time
	To     time.Time
}

// GetCalendarHandler assembles the availability calendar: every day in the
// window gets a resolved price, then booking and maintenance state is
// layered on top and non-available days have their price hidden.
type GetCalendarHandler struct {
	Halls    halls.Repository
	Pricing  pricing.Repository
	Days     calendar.Repository
	Bookings booking.Repository
	Clock    func() time.Time
}

func (h *GetCalendarHandler) Handle(ctx context.Context, q GetCalendarQuery) (dto.Calendar, error) {
	from := pricing.Midnight(q.From)
	to := pricing.Midnight(q.To)
	if to.Before(from) {
		return dto.Calendar{}, ErrInvalidWindow
	}

	hall, err := h.Halls.ByID(ctx, halls.HallID(q.HallID))
	if err != nil {
		return dto.Calendar{}, err
	}

	var (
		rules     []pricing.Rule
		overrides []pricing.Override
		discounts []pricing.Discount
		days      []calendar.Day
		bookings  []*booking.Booking
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rules, err = h.Pricing.RulesByHall(gctx, q.HallID)
		return err
	})
	g.Go(func() error {
		var err error
		overrides, err = h.Pricing.OverridesInRange(gctx, q.HallID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		discounts, err = h.Pricing.DiscountsByHall(gctx, q.HallID)
		return err
	})
	g.Go(func() error {
		var err error
		days, err = h.Days.DaysInRange(gctx, hall.ID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		bookings, err = h.Bookings.ByHallInRange(gctx, hall.ID, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return dto.Calendar{}, err
	}

	recordByDay := make(map[time.Time]*calendar.Day, len(days))
	for i := range days {
		recordByDay[pricing.Midnight(days[i].Date)] = &days[i]
	}
	bookedDays := make(map[time.Time]bool, len(bookings))
	for _, b := range bookings {
		if b.Active() {
			bookedDays[pricing.Midnight(b.EventDate)] = true
		}
	}

	now := h.now()
	views := make([]calendar.DayView, 0, int(to.Sub(from).Hours()/24)+1)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		breakdown := pricing.Resolve(pricing.Input{
			TargetDate: day,
			Now:        now,
			BasePrice:  hall.BasePrice,
			Rules:      rules,
			Overrides:  overrides,
			Discounts:  discounts,
		})
		views = append(views, calendar.BuildDayView(day, breakdown, recordByDay[day], bookedDays[day], now))
	}

	out := dto.MapCalendar(q.HallID, views)
	out.From = from.Format(dto.DateLayout)
	out.To = to.Format(dto.DateLayout)
	return out, nil
}

func (h *GetCalendarHandler) now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return time.Now()
}
