package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"hajez/internal/domain/halls"
)

// Event is a booking domain event pending publication.
type Event interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}

type BookingRequested struct {
	BookingID BookingID
	HallID    halls.HallID
	ClientID  string
	EventDate time.Time
	Total     decimal.Decimal
	At        time.Time
}

func (e BookingRequested) EventName() string     { return "booking.requested" }
func (e BookingRequested) AggregateID() string   { return string(e.BookingID) }
func (e BookingRequested) OccurredAt() time.Time { return e.At }

type BookingConfirmed struct {
	BookingID BookingID
	HallID    halls.HallID
	EventDate time.Time
	At        time.Time
}

func (e BookingConfirmed) EventName() string     { return "booking.confirmed" }
func (e BookingConfirmed) AggregateID() string   { return string(e.BookingID) }
func (e BookingConfirmed) OccurredAt() time.Time { return e.At }

type BookingCancelled struct {
	BookingID BookingID
	HallID    halls.HallID
	EventDate time.Time
	Reason    string
	At        time.Time
}

func (e BookingCancelled) EventName() string     { return "booking.cancelled" }
func (e BookingCancelled) AggregateID() string   { return string(e.BookingID) }
func (e BookingCancelled) OccurredAt() time.Time { return e.At }

type BookingCompleted struct {
	BookingID BookingID
	HallID    halls.HallID
	At        time.Time
}

func (e BookingCompleted) EventName() string     { return "booking.completed" }
func (e BookingCompleted) AggregateID() string   { return string(e.BookingID) }
func (e BookingCompleted) OccurredAt() time.Time { return e.At }

type PaymentRecorded struct {
	BookingID BookingID
	PaymentID string
	Amount    decimal.Decimal
	Category  PaymentCategory
	At        time.Time
}

func (e PaymentRecorded) EventName() string     { return "booking.payment_recorded" }
func (e PaymentRecorded) AggregateID() string   { return string(e.BookingID) }
func (e PaymentRecorded) OccurredAt() time.Time { return e.At }
