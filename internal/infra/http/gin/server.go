package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"hajez/internal/infra/config"
	"hajez/internal/infra/obs"
)

type HallHTTP interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	GetBySlug(c *gin.Context)
	CreateHall(c *gin.Context)
}

type PricingHTTP interface {
	GetQuote(c *gin.Context)
	CreatePricingRule(c *gin.Context)
	DeletePricingRule(c *gin.Context)
	PutOverride(c *gin.Context)
	RemoveOverride(c *gin.Context)
	CreateHallDiscount(c *gin.Context)
	ToggleHallDiscount(c *gin.Context)
}

type CalendarHTTP interface {
	GetCalendar(c *gin.Context)
	PutDay(c *gin.Context)
}

type BookingHTTP interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	Confirm(c *gin.Context)
	Cancel(c *gin.Context)
	Complete(c *gin.Context)
	RecordPayment(c *gin.Context)
}

type Handlers struct {
	Hall     HallHTTP
	Pricing  PricingHTTP
	Calendar CalendarHTTP
	Booking  BookingHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Hall != nil {
		api.GET("/halls", h.Hall.List)
		api.POST("/halls", h.Hall.CreateHall)
		api.GET("/halls/:id", h.Hall.Get)
		api.GET("/halls/by-slug/:slug", h.Hall.GetBySlug)
	}
	if h.Pricing != nil {
		api.GET("/halls/:id/quote", h.Pricing.GetQuote)
		api.POST("/halls/:id/pricing-rules", h.Pricing.CreatePricingRule)
		api.DELETE("/halls/:id/pricing-rules/:ruleId", h.Pricing.DeletePricingRule)
		api.PUT("/halls/:id/overrides", h.Pricing.PutOverride)
		api.DELETE("/halls/:id/overrides/:overrideId", h.Pricing.RemoveOverride)
		api.POST("/halls/:id/discounts", h.Pricing.CreateHallDiscount)
		api.PATCH("/halls/:id/discounts/:discountId", h.Pricing.ToggleHallDiscount)
	}
	if h.Calendar != nil {
		api.GET("/halls/:id/calendar", h.Calendar.GetCalendar)
		api.PUT("/halls/:id/days/:date", h.Calendar.PutDay)
	}
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Create)
		api.GET("/bookings/:id", h.Booking.Get)
		api.POST("/bookings/:id/confirm", h.Booking.Confirm)
		api.POST("/bookings/:id/cancel", h.Booking.Cancel)
		api.POST("/bookings/:id/complete", h.Booking.Complete)
		api.POST("/bookings/:id/payments", h.Booking.RecordPayment)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
