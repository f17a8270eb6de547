package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"hajez/internal/app/commands"
	"hajez/internal/app/queries"
	"hajez/internal/domain/booking"
)

type BookingHandler struct {
	Request *commands.RequestBookingHandler
	Actions *commands.BookingActionsHandler
	Query   *queries.GetBookingHandler
}

type requestBookingRequest struct {
	HallID            string `json:"hall_id" binding:"required"`
	ClientID          string `json:"client_id" binding:"required"`
	EventDate         string `json:"event_date" binding:"required"`
	DepositPercentage int    `json:"deposit_percentage"`
	Notes             string `json:"notes"`
	CreatedBy         string `json:"created_by"`
}

type cancelBookingRequest struct {
	Reason string `json:"reason"`
}

type recordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	ReferenceNo string          `json:"reference_no"`
	Notes       string          `json:"notes"`
}

func (h BookingHandler) Create(c *gin.Context) {
	var req requestBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	date, err := parseDate(req.EventDate)
	if err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.Request.Handle(c.Request.Context(), commands.RequestBookingCommand{
		HallID:            req.HallID,
		ClientID:          req.ClientID,
		EventDate:         date,
		DepositPercentage: req.DepositPercentage,
		Notes:             req.Notes,
		CreatedBy:         req.CreatedBy,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h BookingHandler) Get(c *gin.Context) {
	out, err := h.Query.Handle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h BookingHandler) Confirm(c *gin.Context) {
	out, err := h.Actions.Confirm(c.Request.Context(), commands.ConfirmBookingCommand{BookingID: c.Param("id")})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h BookingHandler) Cancel(c *gin.Context) {
	var req cancelBookingRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	out, err := h.Actions.Cancel(c.Request.Context(), commands.CancelBookingCommand{
		BookingID: c.Param("id"),
		Reason:    req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h BookingHandler) Complete(c *gin.Context) {
	out, err := h.Actions.Complete(c.Request.Context(), commands.CompleteBookingCommand{BookingID: c.Param("id")})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h BookingHandler) RecordPayment(c *gin.Context) {
	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.Actions.RecordPayment(c.Request.Context(), commands.RecordPaymentCommand{
		BookingID:   c.Param("id"),
		Amount:      req.Amount,
		Method:      booking.PaymentMethod(req.Method),
		Category:    booking.PaymentCategory(req.Category),
		ReferenceNo: req.ReferenceNo,
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

var _ BookingHTTP = BookingHandler{}
