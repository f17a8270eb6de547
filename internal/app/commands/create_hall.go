package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hajez/internal/app/dto"
	"hajez/internal/domain/halls"
)

type CreateHallCommand struct {
	Name       string
	Slug       string
	ThemeColor string
	BasePrice  decimal.Decimal
}

type CreateHallHandler struct {
	Halls halls.Repository
}

func (h *CreateHallHandler) Handle(ctx context.Context, cmd CreateHallCommand) (dto.Hall, error) {
	hall, err := halls.NewHall(halls.HallID(uuid.NewString()), cmd.Name, cmd.Slug, cmd.ThemeColor, cmd.BasePrice)
	if err != nil {
		return dto.Hall{}, err
	}
	if err := h.Halls.Save(ctx, hall); err != nil {
		return dto.Hall{}, err
	}
	return dto.MapHall(hall), nil
}
