package dto

import (
	"github.com/shopspring/decimal"

	"hajez/internal/domain/booking"
)

type BookingPayment struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Category    string          `json:"category"`
	ReferenceNo string          `json:"reference_no,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	PaidAt      string          `json:"paid_at"`
}

type Booking struct {
	ID                 string           `json:"id"`
	HallID             string           `json:"hall_id"`
	ClientID           string           `json:"client_id"`
	EventDate          string           `json:"event_date"`
	TotalPrice         decimal.Decimal  `json:"total_price"`
	Status             string           `json:"status"`
	FinancialStatus    string           `json:"financial_status"`
	DepositPercentage  int              `json:"deposit_percentage"`
	PaidTotal          decimal.Decimal  `json:"paid_total"`
	Payments           []BookingPayment `json:"payments"`
	Notes              string           `json:"notes,omitempty"`
	CancellationReason string           `json:"cancellation_reason,omitempty"`
}

// MapBooking converts a booking aggregate into its wire form.
func MapBooking(b *booking.Booking) Booking {
	out := Booking{
		ID:                 string(b.ID),
		HallID:             string(b.HallID),
		ClientID:           b.ClientID,
		EventDate:          b.EventDate.Format(DateLayout),
		TotalPrice:         b.Price.FinalPrice,
		Status:             string(b.Status),
		FinancialStatus:    string(b.Financial),
		DepositPercentage:  b.DepositPercentage,
		PaidTotal:          b.PaidTotal(),
		Payments:           make([]BookingPayment, 0, len(b.Payments)),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
	}
	for _, p := range b.Payments {
		out.Payments = append(out.Payments, BookingPayment{
			ID:          p.ID,
			Amount:      p.Amount,
			Method:      string(p.Method),
			Category:    string(p.Category),
			ReferenceNo: p.ReferenceNo,
			Notes:       p.Notes,
			PaidAt:      p.PaidAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return out
}
