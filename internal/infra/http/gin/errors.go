package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"hajez/internal/app/commands"
	"hajez/internal/app/queries"
	"hajez/internal/domain/booking"
	"hajez/internal/domain/calendar"
	"hajez/internal/domain/halls"
	"hajez/internal/domain/pricing"
)

// respondError translates application and domain errors into HTTP statuses.
// Unknown errors surface as 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, halls.ErrHallNotFound),
		errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, pricing.ErrRuleNotFound),
		errors.Is(err, pricing.ErrOverrideNotFound),
		errors.Is(err, pricing.ErrDiscountNotFound),
		errors.Is(err, calendar.ErrDayNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, commands.ErrDateUnavailable),
		errors.Is(err, booking.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, halls.ErrInvalidHall),
		errors.Is(err, halls.ErrNegativeBase),
		errors.Is(err, booking.ErrClientRequired),
		errors.Is(err, booking.ErrInvalidDeposit),
		errors.Is(err, booking.ErrInvalidAmount),
		errors.Is(err, calendar.ErrBadStatus),
		errors.Is(err, pricing.ErrRuleName),
		errors.Is(err, pricing.ErrRuleTier),
		errors.Is(err, pricing.ErrRuleAdjustment),
		errors.Is(err, pricing.ErrRuleHalfRange),
		errors.Is(err, pricing.ErrRuleWeekday),
		errors.Is(err, pricing.ErrDiscountKind),
		errors.Is(err, queries.ErrInvalidWindow):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
