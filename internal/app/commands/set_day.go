package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hajez/internal/domain/calendar"
	"hajez/internal/domain/halls"
	"hajez/internal/domain/pricing"
)

// SetDayCommand updates a single calendar day: its availability status
// and, optionally, a manually pinned display price.
type SetDayCommand struct {
	HallID      string
	Date        time.Time
	Status      calendar.DayStatus
	ManualPrice *decimal.Decimal
}

type SetDayHandler struct {
	Halls halls.Repository
	Days  calendar.Repository
}

func (h *SetDayHandler) Handle(ctx context.Context, cmd SetDayCommand) (calendar.Day, error) {
	if !calendar.ValidStatus(cmd.Status) {
		return calendar.Day{}, calendar.ErrBadStatus
	}
	if _, err := h.Halls.ByID(ctx, halls.HallID(cmd.HallID)); err != nil {
		return calendar.Day{}, err
	}
	day := calendar.Day{
		ID:          uuid.NewString(),
		HallID:      halls.HallID(cmd.HallID),
		Date:        pricing.Midnight(cmd.Date),
		Status:      cmd.Status,
		ManualPrice: cmd.ManualPrice,
	}
	if err := h.Days.UpsertDay(ctx, day); err != nil {
		return calendar.Day{}, err
	}
	return day, nil
}
