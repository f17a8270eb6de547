package booking

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"hajez/internal/domain/halls"
	"hajez/internal/domain/pricing"
)

var (
	ErrBookingNotFound = errors.New("booking: not found")
	ErrInvalidState    = errors.New("booking: invalid state transition")
	ErrClientRequired  = errors.New("booking: client id required")
	ErrInvalidDeposit  = errors.New("booking: deposit percentage must be within 0..100")
	ErrInvalidAmount   = errors.New("booking: payment amount must be positive")
)

type BookingID string

type Status string

const (
	StatusTentative Status = "tentative"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// FinancialStatus is derived from recorded payments against the total price.
type FinancialStatus string

const (
	Unpaid        FinancialStatus = "unpaid"
	PartiallyPaid FinancialStatus = "partially_paid"
	FullyPaid     FinancialStatus = "fully_paid"
	Overpaid      FinancialStatus = "overpaid"
)

type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodTransfer PaymentMethod = "transfer"
	MethodCard     PaymentMethod = "card"
)

type PaymentCategory string

const (
	CategoryDeposit    PaymentCategory = "deposit"
	CategorySettlement PaymentCategory = "settlement"
	CategoryRefund     PaymentCategory = "refund"
)

// Payment is a money movement recorded against a booking. Refunds carry the
// refund category and count negatively toward the paid total.
type Payment struct {
	ID          string
	Amount      decimal.Decimal
	Method      PaymentMethod
	Category    PaymentCategory
	ReferenceNo string
	Notes       string
	PaidAt      time.Time
}

// Booking reserves a hall for a single event date at the price quoted by the
// resolver at request time. The quoted breakdown is stored as a snapshot so
// later rule changes never reprice an existing booking.
type Booking struct {
	ID                 BookingID
	HallID             halls.HallID
	ClientID           string
	EventDate          time.Time
	Price              pricing.PriceBreakdown
	Status             Status
	Financial          FinancialStatus
	DepositPercentage  int
	Payments           []Payment
	Notes              string
	CancellationReason string
	CreatedBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Version            int64

	pending []Event
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	ByHallInRange(ctx context.Context, hallID halls.HallID, from, to time.Time) ([]*Booking, error)
	Save(ctx context.Context, b *Booking) error
}

type CreateParams struct {
	ID                BookingID
	HallID            halls.HallID
	ClientID          string
	EventDate         time.Time
	Price             pricing.PriceBreakdown
	DepositPercentage int
	Notes             string
	CreatedBy         string
	CreatedAt         time.Time
}

// New creates a tentative booking from a quoted price.
func New(params CreateParams) (*Booking, error) {
	if params.ClientID == "" {
		return nil, ErrClientRequired
	}
	if params.DepositPercentage < 0 || params.DepositPercentage > 100 {
		return nil, ErrInvalidDeposit
	}
	now := params.CreatedAt.UTC()
	b := &Booking{
		ID:                params.ID,
		HallID:            params.HallID,
		ClientID:          params.ClientID,
		EventDate:         pricing.Midnight(params.EventDate),
		Price:             params.Price,
		Status:            StatusTentative,
		Financial:         Unpaid,
		DepositPercentage: params.DepositPercentage,
		Notes:             params.Notes,
		CreatedBy:         params.CreatedBy,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	b.record(BookingRequested{
		BookingID: b.ID,
		HallID:    b.HallID,
		ClientID:  b.ClientID,
		EventDate: b.EventDate,
		Total:     b.Price.FinalPrice,
		At:        now,
	})
	return b, nil
}

// Confirm moves a tentative booking to confirmed.
func (b *Booking) Confirm(now time.Time) error {
	if b.Status != StatusTentative {
		return ErrInvalidState
	}
	b.Status = StatusConfirmed
	b.touch(now)
	b.record(BookingConfirmed{BookingID: b.ID, HallID: b.HallID, EventDate: b.EventDate, At: b.UpdatedAt})
	return nil
}

// Cancel cancels a tentative or confirmed booking, freeing the date.
func (b *Booking) Cancel(reason string, now time.Time) error {
	if b.Status != StatusTentative && b.Status != StatusConfirmed {
		return ErrInvalidState
	}
	b.Status = StatusCancelled
	b.CancellationReason = reason
	b.touch(now)
	b.record(BookingCancelled{BookingID: b.ID, HallID: b.HallID, EventDate: b.EventDate, Reason: reason, At: b.UpdatedAt})
	return nil
}

// Complete closes out a confirmed booking after the event.
func (b *Booking) Complete(now time.Time) error {
	if b.Status != StatusConfirmed {
		return ErrInvalidState
	}
	b.Status = StatusCompleted
	b.touch(now)
	b.record(BookingCompleted{BookingID: b.ID, HallID: b.HallID, At: b.UpdatedAt})
	return nil
}

// RecordPayment appends a payment and re-derives the financial status.
func (b *Booking) RecordPayment(p Payment, now time.Time) error {
	if b.Status == StatusCancelled {
		return ErrInvalidState
	}
	if !p.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	p.PaidAt = p.PaidAt.UTC()
	b.Payments = append(b.Payments, p)
	b.Financial = b.deriveFinancial()
	b.touch(now)
	b.record(PaymentRecorded{BookingID: b.ID, PaymentID: p.ID, Amount: p.Amount, Category: p.Category, At: b.UpdatedAt})
	return nil
}

// PaidTotal sums payments, with refunds counting negatively.
func (b *Booking) PaidTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range b.Payments {
		if p.Category == CategoryRefund {
			total = total.Sub(p.Amount)
			continue
		}
		total = total.Add(p.Amount)
	}
	return total
}

func (b *Booking) deriveFinancial() FinancialStatus {
	paid := b.PaidTotal()
	total := b.Price.FinalPrice
	switch {
	case !paid.IsPositive():
		return Unpaid
	case paid.LessThan(total):
		return PartiallyPaid
	case paid.Equal(total):
		return FullyPaid
	default:
		return Overpaid
	}
}

// Active reports whether the booking still occupies its date on the calendar.
func (b *Booking) Active() bool {
	return b.Status != StatusCancelled
}

func (b *Booking) touch(now time.Time) {
	b.UpdatedAt = now.UTC()
}

func (b *Booking) record(e Event) {
	b.pending = append(b.pending, e)
}

// PendingEvents returns events recorded since the last clear.
func (b *Booking) PendingEvents() []Event {
	out := make([]Event, len(b.pending))
	copy(out, b.pending)
	return out
}

// ClearEvents drops pending events after they have been published.
func (b *Booking) ClearEvents() {
	b.pending = nil
}
