package booking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hajez/internal/domain/pricing"
)

var testNow = time.Date(2025, time.November, 1, 12, 0, 0, 0, time.UTC)

func newTestBooking(t *testing.T, total int64) *Booking {
	t.Helper()
	b, err := New(CreateParams{
		ID:        "bk-1",
		HallID:    "hall-1",
		ClientID:  "client-1",
		EventDate: time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC),
		Price: pricing.PriceBreakdown{
			BasePrice:  decimal.NewFromInt(total),
			FinalPrice: decimal.NewFromInt(total),
		},
		DepositPercentage: 30,
		CreatedAt:         testNow,
	})
	require.NoError(t, err)
	return b
}

func TestNewBooking(t *testing.T) {
	b := newTestBooking(t, 1000)

	assert.Equal(t, StatusTentative, b.Status)
	assert.Equal(t, Unpaid, b.Financial)

	events := b.PendingEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "booking.requested", events[0].EventName())
}

func TestNewBookingValidation(t *testing.T) {
	_, err := New(CreateParams{ID: "bk", HallID: "h", EventDate: testNow, CreatedAt: testNow})
	assert.ErrorIs(t, err, ErrClientRequired)

	_, err = New(CreateParams{ID: "bk", HallID: "h", ClientID: "c", EventDate: testNow, DepositPercentage: 120, CreatedAt: testNow})
	assert.ErrorIs(t, err, ErrInvalidDeposit)
}

func TestBookingTransitions(t *testing.T) {
	b := newTestBooking(t, 1000)

	require.NoError(t, b.Confirm(testNow))
	assert.Equal(t, StatusConfirmed, b.Status)
	assert.ErrorIs(t, b.Confirm(testNow), ErrInvalidState)

	require.NoError(t, b.Complete(testNow))
	assert.Equal(t, StatusCompleted, b.Status)
	assert.ErrorIs(t, b.Cancel("too late", testNow), ErrInvalidState)
}

func TestBookingCancel(t *testing.T) {
	b := newTestBooking(t, 1000)

	require.NoError(t, b.Cancel("client changed mind", testNow))
	assert.Equal(t, StatusCancelled, b.Status)
	assert.Equal(t, "client changed mind", b.CancellationReason)
	assert.False(t, b.Active())

	// A cancelled booking accepts no further lifecycle actions.
	assert.ErrorIs(t, b.Confirm(testNow), ErrInvalidState)
	assert.ErrorIs(t, b.RecordPayment(Payment{ID: "p", Amount: decimal.NewFromInt(10)}, testNow), ErrInvalidState)
}

func TestFinancialStatusDerivation(t *testing.T) {
	b := newTestBooking(t, 1000)

	pay := func(amount int64, category PaymentCategory) {
		t.Helper()
		require.NoError(t, b.RecordPayment(Payment{
			ID:       "p",
			Amount:   decimal.NewFromInt(amount),
			Method:   MethodCash,
			Category: category,
			PaidAt:   testNow,
		}, testNow))
	}

	pay(300, CategoryDeposit)
	assert.Equal(t, PartiallyPaid, b.Financial)

	pay(700, CategorySettlement)
	assert.Equal(t, FullyPaid, b.Financial)

	pay(100, CategorySettlement)
	assert.Equal(t, Overpaid, b.Financial)

	pay(1100, CategoryRefund)
	assert.Equal(t, Unpaid, b.Financial)
	assert.True(t, b.PaidTotal().IsZero())
}

func TestRecordPaymentRejectsNonPositive(t *testing.T) {
	b := newTestBooking(t, 1000)

	err := b.RecordPayment(Payment{ID: "p", Amount: decimal.Zero}, testNow)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestPendingEventsLifecycle(t *testing.T) {
	b := newTestBooking(t, 1000)
	require.NoError(t, b.Confirm(testNow))

	events := b.PendingEvents()
	require.Len(t, events, 2)
	assert.Equal(t, "booking.confirmed", events[1].EventName())

	b.ClearEvents()
	assert.Empty(t, b.PendingEvents())
}
