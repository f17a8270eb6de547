package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"hajez/internal/app/commands"
	"hajez/internal/app/dto"
	"hajez/internal/app/queries"
	"hajez/internal/domain/pricing"
)

type PricingHandler struct {
	Quote          *queries.GetQuoteHandler
	CreateRule     *commands.CreateRuleHandler
	DeleteRule     *commands.DeleteRuleHandler
	UpsertOverride *commands.UpsertOverrideHandler
	DeleteOverride *commands.DeleteOverrideHandler
	CreateDiscount *commands.CreateDiscountHandler
	ToggleDiscount *commands.ToggleDiscountHandler
}

type createRuleRequest struct {
	Name            string          `json:"name" binding:"required"`
	Tier            int             `json:"tier"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	DaysOfWeek      []int           `json:"days_of_week"`
	AdjustmentKind  string          `json:"adjustment_kind"`
	AdjustmentValue decimal.Decimal `json:"adjustment_value"`
}

type upsertOverrideRequest struct {
	Date  string          `json:"date" binding:"required"`
	Price decimal.Decimal `json:"price"`
}

type createDiscountRequest struct {
	Name           string          `json:"name" binding:"required"`
	Kind           string          `json:"kind"`
	Value          decimal.Decimal `json:"value"`
	MinAdvanceDays int             `json:"min_advance_days"`
	Active         bool            `json:"active"`
}

func (h PricingHandler) GetQuote(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.Quote.Handle(c.Request.Context(), queries.GetQuoteQuery{
		HallID: c.Param("id"),
		Date:   date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h PricingHandler) CreatePricingRule(c *gin.Context) {
	var req createRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cmd := commands.CreateRuleCommand{
		HallID:          c.Param("id"),
		Name:            req.Name,
		Tier:            pricing.RuleTier(req.Tier),
		AdjustmentKind:  pricing.AdjustmentKind(req.AdjustmentKind),
		AdjustmentValue: req.AdjustmentValue,
	}
	var err error
	if cmd.StartDate, err = parseOptionalDate(req.StartDate); err != nil {
		badRequest(c, err)
		return
	}
	if cmd.EndDate, err = parseOptionalDate(req.EndDate); err != nil {
		badRequest(c, err)
		return
	}
	for _, wd := range req.DaysOfWeek {
		cmd.DaysOfWeek = append(cmd.DaysOfWeek, time.Weekday(wd))
	}
	rule, err := h.CreateRule.Handle(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MapRule(rule))
}

func (h PricingHandler) DeletePricingRule(c *gin.Context) {
	err := h.DeleteRule.Handle(c.Request.Context(), commands.DeleteRuleCommand{
		HallID: c.Param("id"),
		RuleID: c.Param("ruleId"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h PricingHandler) PutOverride(c *gin.Context) {
	var req upsertOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		badRequest(c, err)
		return
	}
	ov, err := h.UpsertOverride.Handle(c.Request.Context(), commands.UpsertOverrideCommand{
		HallID: c.Param("id"),
		Date:   date,
		Price:  req.Price,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapOverride(ov))
}

func (h PricingHandler) RemoveOverride(c *gin.Context) {
	err := h.DeleteOverride.Handle(c.Request.Context(), commands.DeleteOverrideCommand{
		HallID:     c.Param("id"),
		OverrideID: c.Param("overrideId"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h PricingHandler) CreateHallDiscount(c *gin.Context) {
	var req createDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	d, err := h.CreateDiscount.Handle(c.Request.Context(), commands.CreateDiscountCommand{
		HallID:         c.Param("id"),
		Name:           req.Name,
		Kind:           pricing.DiscountKind(req.Kind),
		Value:          req.Value,
		MinAdvanceDays: req.MinAdvanceDays,
		Active:         req.Active,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MapDiscount(d))
}

type toggleDiscountRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (h PricingHandler) ToggleHallDiscount(c *gin.Context) {
	var req toggleDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	d, err := h.ToggleDiscount.Handle(c.Request.Context(), commands.ToggleDiscountCommand{
		HallID:     c.Param("id"),
		DiscountID: c.Param("discountId"),
		Active:     *req.Active,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapDiscount(d))
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse(dto.DateLayout, raw)
}

func parseOptionalDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(dto.DateLayout, raw)
}

var _ PricingHTTP = PricingHandler{}
