package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tirthraj07/booking-service/config"
	"github.com/tirthraj07/booking-service/internal/domain"
)

type RedisCache struct {
	client      *redis.Client
	bookingsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, bookingsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		bookingsTTL: bookingsTTL,
	}
}

func (c *RedisCache) GetUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	data, err := c.client.Get(ctx, userBookingsKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var bookings []domain.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *RedisCache) SetUserBookings(ctx context.Context, userID int64, bookings []domain.Booking) error {
	payload, err := json.Marshal(bookings)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, userBookingsKey(userID), payload, c.bookingsTTL).Err()
}

func (c *RedisCache) InvalidateUserBookings(ctx context.Context, userID int64) error {
	return c.client.Del(ctx, userBookingsKey(userID)).Err()
}

func userBookingsKey(userID int64) string {
	return fmt.Sprintf("cache:bookings:user:%d", userID)
}
