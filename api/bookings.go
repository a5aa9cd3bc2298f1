package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tirthraj07/booking-service/internal/domain"
	"github.com/tirthraj07/booking-service/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type bookingResponse struct {
	ProductID int64  `json:"product_id"`
	PartnerID int64  `json:"partner_id"`
	Success   string `json:"success"`
}

type bookingRecord struct {
	UserID    int64 `json:"user_id"`
	ProductID int64 `json:"product_id"`
	PartnerID int64 `json:"partner_id"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/book", h.create)
	router.GET("/bookings", h.list)
}

// create handles POST /book?user_id=&product_name=. Query parameters match
// the wire contract of the services this one fronts.
func (h *BookingHandler) create(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	productName := c.Query("product_name")
	if err != nil || userID <= 0 || productName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and product_name are required"})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		UserID:      userID,
		ProductName: productName,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, bookingResponse{
		ProductID: created.ProductID,
		PartnerID: created.PartnerID,
		Success:   fmt.Sprintf("Item with ID: %d and Delivery partner: %d successfully booked", created.ProductID, created.PartnerID),
	})
}

func (h *BookingHandler) list(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	records := make([]bookingRecord, 0, len(bookings))
	for _, b := range bookings {
		records = append(records, bookingRecord{UserID: b.UserID, ProductID: b.ProductID, PartnerID: b.PartnerID})
	}
	c.JSON(http.StatusOK, records)
}
