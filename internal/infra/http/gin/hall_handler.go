package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"hajez/internal/app/commands"
	"hajez/internal/app/queries"
)

type HallHandler struct {
	Query  *queries.HallsHandler
	Create *commands.CreateHallHandler
}

type createHallRequest struct {
	Name       string          `json:"name" binding:"required"`
	Slug       string          `json:"slug" binding:"required"`
	ThemeColor string          `json:"theme_color"`
	BasePrice  decimal.Decimal `json:"base_price"`
}

func (h HallHandler) List(c *gin.Context) {
	out, err := h.Query.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"halls": out})
}

func (h HallHandler) Get(c *gin.Context) {
	out, err := h.Query.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h HallHandler) GetBySlug(c *gin.Context) {
	out, err := h.Query.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h HallHandler) CreateHall(c *gin.Context) {
	var req createHallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.Create.Handle(c.Request.Context(), commands.CreateHallCommand{
		Name:       req.Name,
		Slug:       req.Slug,
		ThemeColor: req.ThemeColor,
		BasePrice:  req.BasePrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

var _ HallHTTP = HallHandler{}
