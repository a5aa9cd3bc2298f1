package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/tirthraj07/booking-service/internal/domain"
	"github.com/tirthraj07/booking-service/internal/kafka"
	"github.com/tirthraj07/booking-service/internal/repository"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	ListBookings(ctx context.Context, userID int64) ([]domain.Booking, error)
}

// UpstreamClient is the reserve/book capability of one external service.
// The product and partner clients both satisfy it.
type UpstreamClient interface {
	Reserve(ctx context.Context, productName string) error
	Book(ctx context.Context, productName string) (int64, error)
}

type Cache interface {
	GetUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error)
	SetUserBookings(ctx context.Context, userID int64, bookings []domain.Booking) error
	InvalidateUserBookings(ctx context.Context, userID int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	product            UpstreamClient
	partner            UpstreamClient
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
}

type CreateBookingInput struct {
	UserID      int64  `json:"user_id"`
	ProductName string `json:"product_name"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	product, partner UpstreamClient,
	cache Cache,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		product:      product,
		partner:      partner,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking runs the booking sequence: reserve product, reserve partner,
// book product, book partner, persist. Each phase is attempted at most once
// and the first failure halts the sequence with a PhaseError. Phases that
// already completed are NOT compensated: a failed partner reservation leaves
// the product reservation standing, and a failed insert leaves both external
// bookings confirmed with no durable record.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.UserID <= 0 || input.ProductName == "" {
		return nil, fmt.Errorf("%w: user_id and product_name are required", domain.ErrInvalidInput)
	}

	if err := s.product.Reserve(ctx, input.ProductName); err != nil {
		return nil, &domain.PhaseError{Phase: domain.PhaseReserveProduct, Err: err}
	}
	if err := s.partner.Reserve(ctx, input.ProductName); err != nil {
		return nil, &domain.PhaseError{Phase: domain.PhaseReservePartner, Err: err}
	}

	productID, err := s.product.Book(ctx, input.ProductName)
	if err != nil {
		return nil, &domain.PhaseError{Phase: domain.PhaseBookProduct, Err: err}
	}
	partnerID, err := s.partner.Book(ctx, input.ProductName)
	if err != nil {
		return nil, &domain.PhaseError{Phase: domain.PhaseBookPartner, Err: err}
	}

	booking := &domain.Booking{
		UserID:    input.UserID,
		ProductID: productID,
		PartnerID: partnerID,
	}
	if err := s.bookings.Insert(ctx, booking); err != nil {
		return nil, &domain.PhaseError{Phase: domain.PhasePersist, Err: err}
	}

	if err := s.publish(ctx, "booking_created", input.ProductName, booking); err != nil {
		log.Printf("WARNING: failed to publish booking_created event for user %d: %v", booking.UserID, err)
	}
	if s.cache != nil {
		_ = s.cache.InvalidateUserBookings(ctx, booking.UserID)
	}
	return booking, nil
}

// ListBookings returns the user's recorded bookings, serving from the cache
// when it is warm.
func (s *BookingService) ListBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrInvalidInput)
	}

	if s.cache != nil {
		if cached, err := s.cache.GetUserBookings(ctx, userID); err == nil && cached != nil {
			return cached, nil
		}
	}

	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetUserBookings(ctx, userID, bookings)
	}
	return bookings, nil
}

func (s *BookingService) publish(ctx context.Context, eventType, productName string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:        eventType,
		Reference:   uuid.NewString(),
		UserID:      booking.UserID,
		ProductName: productName,
		ProductID:   booking.ProductID,
		PartnerID:   booking.PartnerID,
		BookedAt:    time.Now(),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, event.Reference, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, event.Reference, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
