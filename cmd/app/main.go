package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tirthraj07/booking-service/config"
	"github.com/tirthraj07/booking-service/internal/bootstrap"
	"github.com/tirthraj07/booking-service/internal/cache"
	"github.com/tirthraj07/booking-service/internal/kafka"
	"github.com/tirthraj07/booking-service/internal/repository"
	"github.com/tirthraj07/booking-service/internal/service/booking"
	"github.com/tirthraj07/booking-service/internal/upstream"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	bookingRepo := repository.NewBookingRepository(pool)
	if err := bookingRepo.EnsureSchema(ctx); err != nil {
		log.Fatalf("create bookings schema: %v", err)
	}

	timeout := time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second
	productClient := upstream.NewClient("product", cfg.Upstream.ProductURL, "product_id", timeout)
	partnerClient := upstream.NewClient("partner", cfg.Upstream.PartnerURL, "partner_id", timeout)

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.BookingsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	bookingService := booking.NewBookingService(
		bookingRepo,
		productClient,
		partnerClient,
		redisCache,
		producer,
		cfg.Kafka.BookingEventsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, bookingService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
