package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"hajez/internal/app/commands"
	"hajez/internal/app/dto"
	"hajez/internal/app/queries"
	"hajez/internal/domain/calendar"
)

type CalendarHandler struct {
	Calendar *queries.GetCalendarHandler
	SetDay   *commands.SetDayHandler
}

type setDayRequest struct {
	Status      string           `json:"status" binding:"required"`
	ManualPrice *decimal.Decimal `json:"manual_price"`
}

func (h CalendarHandler) GetCalendar(c *gin.Context) {
	from, err := parseDate(c.Query("from"))
	if err != nil {
		badRequest(c, err)
		return
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.Calendar.Handle(c.Request.Context(), queries.GetCalendarQuery{
		HallID: c.Param("id"),
		From:   from,
		To:     to,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h CalendarHandler) PutDay(c *gin.Context) {
	date, err := parseDate(c.Param("date"))
	if err != nil {
		badRequest(c, err)
		return
	}
	var req setDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	day, err := h.SetDay.Handle(c.Request.Context(), commands.SetDayCommand{
		HallID:      c.Param("id"),
		Date:        date,
		Status:      calendar.DayStatus(req.Status),
		ManualPrice: req.ManualPrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapDayRecord(day))
}

var _ CalendarHTTP = CalendarHandler{}
