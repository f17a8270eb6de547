package dto

import (
	"github.com/shopspring/decimal"

	"hajez/internal/domain/halls"
)

type Hall struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Slug       string          `json:"slug"`
	ThemeColor string          `json:"theme_color,omitempty"`
	BasePrice  decimal.Decimal `json:"base_price"`
}

func MapHall(h *halls.Hall) Hall {
	return Hall{
		ID:         string(h.ID),
		Name:       h.Name,
		Slug:       h.Slug,
		ThemeColor: h.ThemeColor,
		BasePrice:  h.BasePrice,
	}
}
