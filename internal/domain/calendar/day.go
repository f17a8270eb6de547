package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"hajez/internal/domain/halls"
	"hajez/internal/domain/pricing"
)

var (
	ErrDayNotFound = errors.New("calendar: day record not found")
	ErrBadStatus   = errors.New("calendar: unknown day status")
)

// DayStatus tracks a day's availability independently of its price.
type DayStatus string

const (
	StatusAvailable   DayStatus = "available"
	StatusBooked      DayStatus = "booked"
	StatusMaintenance DayStatus = "maintenance"
)

// Day is a per-(hall, date) record kept only for days that deviate from the
// default: blocked for maintenance, or carrying a manually pinned display
// price. Days without a record are simply available.
type Day struct {
	ID          string
	HallID      halls.HallID
	Date        time.Time
	Status      DayStatus
	ManualPrice *decimal.Decimal
}

type Repository interface {
	DaysInRange(ctx context.Context, hallID halls.HallID, from, to time.Time) ([]Day, error)
	UpsertDay(ctx context.Context, day Day) error
}

// DayView is what the availability calendar shows for one day. Price is nil
// whenever the day is not available: booked and maintenance days never
// expose a price.
type DayView struct {
	Date   time.Time
	Status DayStatus
	Price  *decimal.Decimal
	IsPast bool
}

// BuildDayView layers display state on top of a resolved price breakdown.
// Precedence, mirroring the admin calendar: a booking forces the booked
// status, a maintenance record forces maintenance; a day record's manual
// price replaces the resolved price; any non-available status hides the
// price entirely.
func BuildDayView(date time.Time, breakdown pricing.PriceBreakdown, record *Day, hasBooking bool, now time.Time) DayView {
	day := pricing.Midnight(date)
	view := DayView{Date: day, Status: StatusAvailable, IsPast: day.Before(pricing.Midnight(now))}

	switch {
	case hasBooking:
		view.Status = StatusBooked
	case record != nil && record.Status == StatusMaintenance:
		view.Status = StatusMaintenance
	}

	price := breakdown.FinalPrice
	if record != nil && record.ManualPrice != nil {
		price = *record.ManualPrice
	}
	if view.Status == StatusAvailable {
		view.Price = &price
	}
	return view
}

// ValidStatus reports whether s is one of the known day statuses.
func ValidStatus(s DayStatus) bool {
	switch s {
	case StatusAvailable, StatusBooked, StatusMaintenance:
		return true
	}
	return false
}
