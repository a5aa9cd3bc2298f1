package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tirthraj07/booking-service/internal/domain"
	"github.com/tirthraj07/booking-service/internal/service/booking"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func setupRouter(service booking.BookingUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewBookingHandler(service).Register(router.Group("/"))
	return router
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := setupRouter(mockService)

	input := booking.CreateBookingInput{UserID: 1, ProductName: "Widget"}
	mockService.On("CreateBooking", mock.Anything, input).
		Return(&domain.Booking{UserID: 1, ProductID: 10, PartnerID: 20}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/book?user_id=1&product_name=Widget", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response bookingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(10), response.ProductID)
	assert.Equal(t, int64(20), response.PartnerID)
	assert.Equal(t, "Item with ID: 10 and Delivery partner: 20 successfully booked", response.Success)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_missingParams(t *testing.T) {
	testCases := []struct {
		name   string
		target string
	}{
		{name: "no params", target: "/book"},
		{name: "user id zero", target: "/book?user_id=0&product_name=Widget"},
		{name: "user id not a number", target: "/book?user_id=abc&product_name=Widget"},
		{name: "empty product name", target: "/book?user_id=1&product_name="},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			router := setupRouter(mockService)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", tc.target, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "user_id and product_name are required")
			mockService.AssertNotCalled(t, "CreateBooking")
		})
	}
}

func TestBookingHandler_create_phaseFailure(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := setupRouter(mockService)

	phaseErr := &domain.PhaseError{Phase: domain.PhaseReserveProduct, Err: errors.New("connection refused")}
	mockService.On("CreateBooking", mock.Anything, mock.Anything).Return(nil, phaseErr).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/book?user_id=1&product_name=Widget", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "couldn't reserve product")

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_persistFailure(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := setupRouter(mockService)

	phaseErr := &domain.PhaseError{Phase: domain.PhasePersist, Err: errors.New("connection reset")}
	mockService.On("CreateBooking", mock.Anything, mock.Anything).Return(nil, phaseErr).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/book?user_id=1&product_name=Widget", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "database error")
}

func TestBookingHandler_list(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := setupRouter(mockService)

	mockService.On("ListBookings", mock.Anything, int64(1)).
		Return([]domain.Booking{{UserID: 1, ProductID: 10, PartnerID: 20}}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/bookings?user_id=1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var records []bookingRecord
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	assert.Len(t, records, 1)
	assert.Equal(t, int64(10), records[0].ProductID)
	assert.Equal(t, int64(20), records[0].PartnerID)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_list_invalidUserID(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := setupRouter(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/bookings?user_id=-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "ListBookings")
}

func TestBookingHandler_list_serviceInvalidInput(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := setupRouter(mockService)

	mockService.On("ListBookings", mock.Anything, int64(1)).
		Return(nil, fmt.Errorf("%w: user_id is required", domain.ErrInvalidInput)).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/bookings?user_id=1", nil)
	router.ServeHTTP(w, req)

	// Validation failures map to 400 on both handlers.
	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_list_storeFailure(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := setupRouter(mockService)

	mockService.On("ListBookings", mock.Anything, int64(1)).
		Return(nil, errors.New("connection reset")).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/bookings?user_id=1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	mockService.AssertExpectations(t)
}
