package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"happyhotel/models"
	"happyhotel/services/booking"
	"happyhotel/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// BookingService is the booking orchestrator as seen by the HTTP layer.
type BookingService interface {
	CalculatePrice(req models.BookingRequest) float64
	CalculatePriceInCurrency(req models.BookingRequest, currency string) (float64, error)
	GetAvailablePlaceCount(ctx context.Context) (int, error)
	MakeBooking(ctx context.Context, req models.BookingRequest) (string, error)
	CancelBooking(ctx context.Context, id string) error
}

type BookingHandler struct {
	Service BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc BookingService, logger *zap.Logger) *BookingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingHandler{Service: svc, Logger: logger}
}

// bookingInput is the JSON body of booking and price requests.
type bookingInput struct {
	ID            string `json:"id"`
	CheckIn       string `json:"checkIn" binding:"required"`
	CheckOut      string `json:"checkOut" binding:"required"`
	Guests        int    `json:"guests"`
	Prepaid       bool   `json:"prepaid"`
	GuestEmail    string `json:"guestEmail"`
	DeviceToken   string `json:"deviceToken"`
	PaymentMethod string `json:"paymentMethod"`
}

func (in bookingInput) toRequest() (models.BookingRequest, error) {
	checkIn, err := time.Parse(dateLayout, in.CheckIn)
	if err != nil {
		return models.BookingRequest{}, fmt.Errorf("checkIn must be YYYY-MM-DD: %w", err)
	}
	checkOut, err := time.Parse(dateLayout, in.CheckOut)
	if err != nil {
		return models.BookingRequest{}, fmt.Errorf("checkOut must be YYYY-MM-DD: %w", err)
	}
	return models.BookingRequest{
		ID:            strings.TrimSpace(in.ID),
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        in.Guests,
		Prepaid:       in.Prepaid,
		GuestEmail:    in.GuestEmail,
		DeviceToken:   in.DeviceToken,
		PaymentMethod: in.PaymentMethod,
	}, nil
}

func bindRequest(c *gin.Context) (models.BookingRequest, bool) {
	var input bookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeInvalidRequest, "invalid input", err.Error())
		return models.BookingRequest{}, false
	}
	req, err := input.toRequest()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeInvalidRequest, "invalid input", err.Error())
		return models.BookingRequest{}, false
	}
	return req, true
}

// MakeBooking handles POST /api/bookings.
func (h *BookingHandler) MakeBooking(c *gin.Context) {
	req, ok := bindRequest(c)
	if !ok {
		return
	}
	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	id, err := h.Service.MakeBooking(c.Request.Context(), req)
	if err != nil {
		requestLogger(c, h.Logger).Info("booking rejected", zap.String("bookingId", req.ID), zap.Error(err))
		respondError(c, err, req.ID)
		return
	}

	requestLogger(c, h.Logger).Info("booking created", zap.String("bookingId", id))
	c.JSON(http.StatusCreated, gin.H{
		"bookingId": id,
		"price":     h.Service.CalculatePrice(req),
	})
}

// CancelBooking handles DELETE /api/bookings/:id.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id := c.Param("id")
	if err := h.Service.CancelBooking(c.Request.Context(), id); err != nil {
		requestLogger(c, h.Logger).Info("cancellation rejected", zap.String("bookingId", id), zap.Error(err))
		respondError(c, err, id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookingId": id, "status": models.BookingStatusCancelled})
}

// QuotePrice handles POST /api/bookings/price with an optional ?currency=.
func (h *BookingHandler) QuotePrice(c *gin.Context) {
	req, ok := bindRequest(c)
	if !ok {
		return
	}
	if req.ID == "" {
		req.ID = "quote"
	}
	if err := booking.Validate(req); err != nil {
		respondError(c, err, "")
		return
	}

	currency := strings.ToUpper(c.Query("currency"))
	if currency == "" {
		c.JSON(http.StatusOK, gin.H{"price": h.Service.CalculatePrice(req)})
		return
	}

	price, err := h.Service.CalculatePriceInCurrency(req, currency)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeInvalidRequest, "currency conversion failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"price": price, "currency": currency})
}

// AvailablePlaces handles GET /api/rooms/places.
func (h *BookingHandler) AvailablePlaces(c *gin.Context) {
	count, err := h.Service.GetAvailablePlaceCount(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"places": count})
}

// respondError maps booking errors onto HTTP statuses.
func respondError(c *gin.Context, err error, bookingID string) {
	var be *booking.BusinessError
	if !errors.As(err, &be) {
		utils.JSONError(c, http.StatusInternalServerError, "internal", "booking operation failed", err.Error())
		return
	}

	status := http.StatusInternalServerError
	switch be.Code {
	case booking.CodeInvalidRequest:
		status = http.StatusBadRequest
	case booking.CodeBookingNotFound:
		status = http.StatusNotFound
	case booking.CodeNoRoomAvailable:
		status = http.StatusConflict
	case booking.CodePaymentFailed:
		status = http.StatusPaymentRequired
	case booking.CodeNotificationFailed:
		// The booking exists; only the guest was not told.
		c.JSON(http.StatusBadGateway, gin.H{
			"code":      be.Code,
			"message":   "booking saved but confirmation could not be sent",
			"details":   err.Error(),
			"bookingId": bookingID,
		})
		return
	}
	utils.JSONError(c, status, be.Code, be.Message, err.Error())
}
