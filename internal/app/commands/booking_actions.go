package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hajez/internal/app/dto"
	"hajez/internal/app/policies"
	"hajez/internal/domain/booking"
)

// BookingActionsHandler drives the booking lifecycle after creation:
// confirm, cancel, complete and payment recording all share the same
// load-mutate-save-publish shape.
type BookingActionsHandler struct {
	Bookings booking.Repository
	Events   policies.EventPublisher
	Logger   *slog.Logger
	Clock    func() time.Time
}

type ConfirmBookingCommand struct {
	BookingID string
}

func (h *BookingActionsHandler) Confirm(ctx context.Context, cmd ConfirmBookingCommand) (dto.Booking, error) {
	return h.mutate(ctx, cmd.BookingID, func(b *booking.Booking, now time.Time) error {
		return b.Confirm(now)
	})
}

type CancelBookingCommand struct {
	BookingID string
	Reason    string
}

func (h *BookingActionsHandler) Cancel(ctx context.Context, cmd CancelBookingCommand) (dto.Booking, error) {
	return h.mutate(ctx, cmd.BookingID, func(b *booking.Booking, now time.Time) error {
		return b.Cancel(cmd.Reason, now)
	})
}

type CompleteBookingCommand struct {
	BookingID string
}

func (h *BookingActionsHandler) Complete(ctx context.Context, cmd CompleteBookingCommand) (dto.Booking, error) {
	return h.mutate(ctx, cmd.BookingID, func(b *booking.Booking, now time.Time) error {
		return b.Complete(now)
	})
}

type RecordPaymentCommand struct {
	BookingID   string
	Amount      decimal.Decimal
	Method      booking.PaymentMethod
	Category    booking.PaymentCategory
	ReferenceNo string
	Notes       string
}

func (h *BookingActionsHandler) RecordPayment(ctx context.Context, cmd RecordPaymentCommand) (dto.Booking, error) {
	return h.mutate(ctx, cmd.BookingID, func(b *booking.Booking, now time.Time) error {
		return b.RecordPayment(booking.Payment{
			ID:          uuid.NewString(),
			Amount:      cmd.Amount,
			Method:      cmd.Method,
			Category:    cmd.Category,
			ReferenceNo: cmd.ReferenceNo,
			Notes:       cmd.Notes,
			PaidAt:      now,
		}, now)
	})
}

func (h *BookingActionsHandler) mutate(ctx context.Context, id string, fn func(*booking.Booking, time.Time) error) (dto.Booking, error) {
	b, err := h.Bookings.ByID(ctx, booking.BookingID(id))
	if err != nil {
		return dto.Booking{}, err
	}
	if err := fn(b, h.now()); err != nil {
		return dto.Booking{}, err
	}
	if err := h.Bookings.Save(ctx, b); err != nil {
		return dto.Booking{}, err
	}
	if h.Events != nil {
		if err := h.Events.Publish(ctx, b.PendingEvents()); err != nil {
			if h.Logger != nil {
				h.Logger.Error("publishing booking events failed", "booking_id", b.ID, "error", err)
			}
		} else {
			b.ClearEvents()
		}
	}
	return dto.MapBooking(b), nil
}

func (h *BookingActionsHandler) now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return time.Now()
}
