package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"hajez/internal/app/commands"
	"hajez/internal/app/policies"
	"hajez/internal/app/queries"
	"hajez/internal/domain/booking"
	"hajez/internal/domain/calendar"
	"hajez/internal/domain/halls"
	"hajez/internal/domain/pricing"
	"hajez/internal/infra/broker/kafka"
	"hajez/internal/infra/config"
	mongodb "hajez/internal/infra/db/mongo"
	ginserver "hajez/internal/infra/http/gin"
	"hajez/internal/infra/obs"
	"hajez/internal/infra/storage/memory"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	repos, ready, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("storage init failed", "error", err)
		os.Exit(1)
	}

	publisher, closePublisher, err := buildPublisher(cfg, logger)
	if err != nil {
		logger.Error("kafka init failed", "error", err)
		os.Exit(1)
	}
	defer closePublisher()

	handlers := buildHandlers(repos, publisher, logger)
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: ready}, handlers)

	if cfg.StorageMode == config.StorageMemory {
		if err := loadHallFixtures(ctx, repos.halls, logger); err != nil {
			logger.Warn("hall fixtures load failed", "error", err)
		}
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type repositories struct {
	halls    halls.Repository
	pricing  pricing.Repository
	days     calendar.Repository
	bookings booking.Repository
}

func buildStorage(ctx context.Context, cfg config.Config, logger *slog.Logger) (repositories, func() error, error) {
	if cfg.StorageMode == config.StorageMongo {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return repositories{}, nil, err
		}
		pricingRepo := mongodb.NewPricingRepository(client.DB)
		dayRepo := mongodb.NewDayRepository(client.DB)
		if err := pricingRepo.EnsureIndexes(ctx); err != nil {
			return repositories{}, nil, err
		}
		if err := dayRepo.EnsureIndexes(ctx); err != nil {
			return repositories{}, nil, err
		}
		logger.Info("mongo storage ready", "database", cfg.MongoDB)
		return repositories{
			halls:    mongodb.NewHallRepository(client.DB),
			pricing:  pricingRepo,
			days:     dayRepo,
			bookings: mongodb.NewBookingRepository(client.DB),
		}, func() error { return client.Ping(context.Background()) }, nil
	}

	return repositories{
		halls:    memory.NewHallRepository(),
		pricing:  memory.NewPricingRepository(),
		days:     memory.NewDayRepository(),
		bookings: memory.NewBookingRepository(),
	}, func() error { return nil }, nil
}

func buildPublisher(cfg config.Config, logger *slog.Logger) (policies.EventPublisher, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("kafka not configured, booking events will be dropped")
		return kafka.NoopPublisher{}, func() {}, nil
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("kafka producer ready", "topic", cfg.KafkaTopic)
	closer := func() {
		if err := producer.Close(); err != nil {
			logger.Error("kafka producer close failed", "error", err)
		}
	}
	return kafka.NewEventPublisher(producer, cfg.KafkaTopic), closer, nil
}

func buildHandlers(repos repositories, publisher policies.EventPublisher, logger *slog.Logger) ginserver.Handlers {
	return ginserver.Handlers{
		Hall: ginserver.HallHandler{
			Query:  &queries.HallsHandler{Halls: repos.halls},
			Create: &commands.CreateHallHandler{Halls: repos.halls},
		},
		Pricing: ginserver.PricingHandler{
			Quote:          &queries.GetQuoteHandler{Halls: repos.halls, Pricing: repos.pricing},
			CreateRule:     &commands.CreateRuleHandler{Halls: repos.halls, Pricing: repos.pricing, Logger: logger},
			DeleteRule:     &commands.DeleteRuleHandler{Pricing: repos.pricing},
			UpsertOverride: &commands.UpsertOverrideHandler{Halls: repos.halls, Pricing: repos.pricing},
			DeleteOverride: &commands.DeleteOverrideHandler{Pricing: repos.pricing},
			CreateDiscount: &commands.CreateDiscountHandler{Halls: repos.halls, Pricing: repos.pricing},
			ToggleDiscount: &commands.ToggleDiscountHandler{Pricing: repos.pricing},
		},
		Calendar: ginserver.CalendarHandler{
			Calendar: &queries.GetCalendarHandler{
				Halls: repos.halls, Pricing: repos.pricing, Days: repos.days, Bookings: repos.bookings,
			},
			SetDay: &commands.SetDayHandler{Halls: repos.halls, Days: repos.days},
		},
		Booking: ginserver.BookingHandler{
			Request: &commands.RequestBookingHandler{
				Halls: repos.halls, Pricing: repos.pricing, Days: repos.days,
				Bookings: repos.bookings, Events: publisher, Logger: logger,
			},
			Actions: &commands.BookingActionsHandler{Bookings: repos.bookings, Events: publisher, Logger: logger},
			Query:   &queries.GetBookingHandler{Bookings: repos.bookings},
		},
	}
}

type hallFixture struct {
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	ThemeColor string `json:"theme_color"`
	BasePrice  string `json:"base_price"`
}

// loadHallFixtures seeds the in-memory catalog so a fresh dev instance has
// halls to quote against.
func loadHallFixtures(ctx context.Context, repo halls.Repository, logger *slog.Logger) error {
	path := os.Getenv("HALL_FIXTURES")
	if path == "" {
		path = filepath.Join("data", "halls.json")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("hall fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}

	var fixtures []hallFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	for _, fx := range fixtures {
		base, err := decimal.NewFromString(fx.BasePrice)
		if err != nil {
			logger.Error("fixture has invalid base price", "slug", fx.Slug, "error", err)
			continue
		}
		hall, err := halls.NewHall(halls.HallID(uuid.NewString()), fx.Name, fx.Slug, fx.ThemeColor, base)
		if err != nil {
			logger.Error("fixture invalid", "slug", fx.Slug, "error", err)
			continue
		}
		if err := repo.Save(ctx, hall); err != nil {
			logger.Error("cannot store fixture hall", "slug", fx.Slug, "error", err)
			continue
		}
		logger.Info("hall fixture imported", "hall_id", hall.ID, "slug", hall.Slug)
	}
	return nil
}
