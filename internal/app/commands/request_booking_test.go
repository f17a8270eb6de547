package commands

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hajez/internal/domain/booking"
	"hajez/internal/domain/calendar"
	"hajez/internal/domain/halls"
	"hajez/internal/domain/pricing"
	"hajez/internal/infra/storage/memory"
)

var (
	cmdNow = time.Date(2025, time.November, 1, 9, 0, 0, 0, time.UTC)
	cmdDay = time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC)
)

// capturePublisher records published events in memory.
type capturePublisher struct {
	mu     sync.Mutex
	events []booking.Event
}

func (p *capturePublisher) Publish(ctx context.Context, events []booking.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

type fixtures struct {
	halls    *memory.HallRepository
	pricing  *memory.PricingRepository
	days     *memory.DayRepository
	bookings *memory.BookingRepository
	events   *capturePublisher
}

func newFixtures(t *testing.T) fixtures {
	t.Helper()
	f := fixtures{
		halls:    memory.NewHallRepository(),
		pricing:  memory.NewPricingRepository(),
		days:     memory.NewDayRepository(),
		bookings: memory.NewBookingRepository(),
		events:   &capturePublisher{},
	}
	hall, err := halls.NewHall("hall-1", "Grand Ballroom", "grand-ballroom", "", decimal.NewFromInt(1000))
	require.NoError(t, err)
	require.NoError(t, f.halls.Save(context.Background(), hall))
	return f
}

func (f fixtures) requestHandler() *RequestBookingHandler {
	return &RequestBookingHandler{
		Halls:    f.halls,
		Pricing:  f.pricing,
		Days:     f.days,
		Bookings: f.bookings,
		Events:   f.events,
		Clock:    func() time.Time { return cmdNow },
	}
}

func TestRequestBookingQuotesAtRequestTime(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	require.NoError(t, f.pricing.SaveRule(ctx, pricing.Rule{
		ID: "r", HallID: "hall-1", Name: "Holiday", Tier: pricing.TierSpecial,
		StartDate: cmdDay, EndDate: cmdDay,
		AdjustmentKind: pricing.AdjustFlat, AdjustmentValue: decimal.NewFromInt(500),
	}))

	out, err := f.requestHandler().Handle(ctx, RequestBookingCommand{
		HallID:            "hall-1",
		ClientID:          "client-1",
		EventDate:         cmdDay,
		DepositPercentage: 30,
	})

	require.NoError(t, err)
	assert.Equal(t, string(booking.StatusTentative), out.Status)
	assert.True(t, out.TotalPrice.Equal(decimal.NewFromInt(1500)), "got %s", out.TotalPrice)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, "booking.requested", f.events.events[0].EventName())

	saved, err := f.bookings.ByID(ctx, booking.BookingID(out.ID))
	require.NoError(t, err)
	assert.Empty(t, saved.PendingEvents(), "events cleared after publish")
}

func TestRequestBookingRejectsTakenDate(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	_, err := f.requestHandler().Handle(ctx, RequestBookingCommand{HallID: "hall-1", ClientID: "c1", EventDate: cmdDay})
	require.NoError(t, err)

	_, err = f.requestHandler().Handle(ctx, RequestBookingCommand{HallID: "hall-1", ClientID: "c2", EventDate: cmdDay})
	assert.ErrorIs(t, err, ErrDateUnavailable)
}

func TestRequestBookingRejectsMaintenanceDay(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	require.NoError(t, f.days.UpsertDay(ctx, calendar.Day{
		ID: "cd", HallID: "hall-1", Date: cmdDay, Status: calendar.StatusMaintenance,
	}))

	_, err := f.requestHandler().Handle(ctx, RequestBookingCommand{HallID: "hall-1", ClientID: "c1", EventDate: cmdDay})
	assert.ErrorIs(t, err, ErrDateUnavailable)
}

func TestRequestBookingUnknownHall(t *testing.T) {
	f := newFixtures(t)

	_, err := f.requestHandler().Handle(context.Background(), RequestBookingCommand{
		HallID: "ghost", ClientID: "c1", EventDate: cmdDay,
	})

	assert.ErrorIs(t, err, halls.ErrHallNotFound)
}

func TestBookingActionsLifecycle(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	created, err := f.requestHandler().Handle(ctx, RequestBookingCommand{HallID: "hall-1", ClientID: "c1", EventDate: cmdDay})
	require.NoError(t, err)

	actions := &BookingActionsHandler{
		Bookings: f.bookings,
		Events:   f.events,
		Clock:    func() time.Time { return cmdNow },
	}

	confirmed, err := actions.Confirm(ctx, ConfirmBookingCommand{BookingID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, string(booking.StatusConfirmed), confirmed.Status)

	paid, err := actions.RecordPayment(ctx, RecordPaymentCommand{
		BookingID: created.ID,
		Amount:    decimal.NewFromInt(300),
		Method:    booking.MethodCash,
		Category:  booking.CategoryDeposit,
	})
	require.NoError(t, err)
	assert.Equal(t, string(booking.PartiallyPaid), paid.FinancialStatus)
	assert.True(t, paid.PaidTotal.Equal(decimal.NewFromInt(300)))

	done, err := actions.Complete(ctx, CompleteBookingCommand{BookingID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, string(booking.StatusCompleted), done.Status)

	_, err = actions.Cancel(ctx, CancelBookingCommand{BookingID: created.ID, Reason: "too late"})
	assert.ErrorIs(t, err, booking.ErrInvalidState)
}
