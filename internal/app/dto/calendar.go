package dto

import (
	"github.com/shopspring/decimal"

	"hajez/internal/domain/calendar"
)

// CalendarDay annotates one day of the availability view. Price is omitted
// whenever the day is booked or under maintenance.
type CalendarDay struct {
	Date   string           `json:"date"`
	Status string           `json:"status"`
	Price  *decimal.Decimal `json:"price"`
	IsPast bool             `json:"is_past"`
}

type Calendar struct {
	HallID string        `json:"hall_id"`
	From   string        `json:"from"`
	To     string        `json:"to"`
	Days   []CalendarDay `json:"days"`
}

// MapCalendar converts day views into their wire form.
func MapCalendar(hallID string, views []calendar.DayView) Calendar {
	out := Calendar{HallID: hallID, Days: make([]CalendarDay, 0, len(views))}
	if len(views) > 0 {
		out.From = views[0].Date.Format(DateLayout)
		out.To = views[len(views)-1].Date.Format(DateLayout)
	}
	for _, v := range views {
		out.Days = append(out.Days, CalendarDay{
			Date:   v.Date.Format(DateLayout),
			Status: string(v.Status),
			Price:  v.Price,
			IsPast: v.IsPast,
		})
	}
	return out
}
