package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"hajez/internal/app/dto"
	"hajez/internal/app/policies"
	"hajez/internal/domain/booking"
	"hajez/internal/domain/calendar"
	"hajez/internal/domain/halls"
	"hajez/internal/domain/pricing"
)

var ErrDateUnavailable = errors.New("commands: date is not available for booking")

// RequestBookingCommand books a hall for a single event date at the price
// the resolver quotes at request time.
type RequestBookingCommand struct {
	HallID            string
	ClientID          string
	EventDate         time.Time
	DepositPercentage int
	Notes             string
	CreatedBy         string
}

type RequestBookingHandler struct {
	Halls    halls.Repository
	Pricing  pricing.Repository
	Days     calendar.Repository
	Bookings booking.Repository
	Events   policies.EventPublisher
	Logger   *slog.Logger
	Clock    func() time.Time
}

func (h *RequestBookingHandler) Handle(ctx context.Context, cmd RequestBookingCommand) (dto.Booking, error) {
	day := pricing.Midnight(cmd.EventDate)

	var (
		hall      *halls.Hall
		rules     []pricing.Rule
		overrides []pricing.Override
		discounts []pricing.Discount
		days      []calendar.Day
		existing  []*booking.Booking
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		hall, err = h.Halls.ByID(gctx, halls.HallID(cmd.HallID))
		return err
	})
	g.Go(func() error {
		var err error
		rules, err = h.Pricing.RulesByHall(gctx, cmd.HallID)
		return err
	})
	g.Go(func() error {
		var err error
		overrides, err = h.Pricing.OverridesInRange(gctx, cmd.HallID, day, day)
		return err
	})
	g.Go(func() error {
		var err error
		discounts, err = h.Pricing.DiscountsByHall(gctx, cmd.HallID)
		return err
	})
	g.Go(func() error {
		var err error
		days, err = h.Days.DaysInRange(gctx, halls.HallID(cmd.HallID), day, day)
		return err
	})
	g.Go(func() error {
		var err error
		existing, err = h.Bookings.ByHallInRange(gctx, halls.HallID(cmd.HallID), day, day)
		return err
	})
	if err := g.Wait(); err != nil {
		return dto.Booking{}, err
	}

	for _, b := range existing {
		if b.Active() {
			return dto.Booking{}, ErrDateUnavailable
		}
	}
	for _, d := range days {
		if d.Status == calendar.StatusMaintenance {
			return dto.Booking{}, ErrDateUnavailable
		}
	}

	now := h.now()
	breakdown := pricing.Resolve(pricing.Input{
		TargetDate: day,
		Now:        now,
		BasePrice:  hall.BasePrice,
		Rules:      rules,
		Overrides:  overrides,
		Discounts:  discounts,
	})

	b, err := booking.New(booking.CreateParams{
		ID:                booking.BookingID(uuid.NewString()),
		HallID:            hall.ID,
		ClientID:          cmd.ClientID,
		EventDate:         day,
		Price:             breakdown,
		DepositPercentage: cmd.DepositPercentage,
		Notes:             cmd.Notes,
		CreatedBy:         cmd.CreatedBy,
		CreatedAt:         now,
	})
	if err != nil {
		return dto.Booking{}, err
	}
	if err := h.Bookings.Save(ctx, b); err != nil {
		return dto.Booking{}, err
	}
	h.publish(ctx, b)
	return dto.MapBooking(b), nil
}

func (h *RequestBookingHandler) publish(ctx context.Context, b *booking.Booking) {
	if h.Events == nil {
		return
	}
	if err := h.Events.Publish(ctx, b.PendingEvents()); err != nil {
		if h.Logger != nil {
			h.Logger.Error("publishing booking events failed", "booking_id", b.ID, "error", err)
		}
		return
	}
	b.ClearEvents()
}

func (h *RequestBookingHandler) now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return time.Now()
}
