package queries

import (
	"context"

	"hajez/internal/app/dto"
	"hajez/internal/domain/booking"
)

// GetBookingHandler serves single booking reads.
type GetBookingHandler struct {
	Bookings booking.Repository
}

func (h *GetBookingHandler) Handle(ctx context.Context, id string) (dto.Booking, error) {
	b, err := h.Bookings.ByID(ctx, booking.BookingID(id))
	if err != nil {
		return dto.Booking{}, err
	}
	return dto.MapBooking(b), nil
}
