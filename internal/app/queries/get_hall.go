package queries

import (
	"context"

	"hajez/internal/app/dto"
	"hajez/internal/domain/halls"
)

// HallsHandler serves the hall catalog reads.
type HallsHandler struct {
	Halls halls.Repository
}

func (h *HallsHandler) List(ctx context.Context) ([]dto.Hall, error) {
	found, err := h.Halls.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Hall, 0, len(found))
	for _, hall := range found {
		out = append(out, dto.MapHall(hall))
	}
	return out, nil
}

func (h *HallsHandler) Get(ctx context.Context, id string) (dto.Hall, error) {
	hall, err := h.Halls.ByID(ctx, halls.HallID(id))
	if err != nil {
		return dto.Hall{}, err
	}
	return dto.MapHall(hall), nil
}

func (h *HallsHandler) GetBySlug(ctx context.Context, slug string) (dto.Hall, error) {
	hall, err := h.Halls.BySlug(ctx, slug)
	if err != nil {
		return dto.Hall{}, err
	}
	return dto.MapHall(hall), nil
}
