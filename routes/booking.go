package routes

import (
	"happyhotel/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	bookings := r.Group("/api/bookings")
	{
		bookings.POST("", h.MakeBooking)
		bookings.POST("/price", h.QuotePrice)
		bookings.DELETE("/:id", h.CancelBooking)
	}

	rooms := r.Group("/api/rooms")
	{
		rooms.GET("/places", h.AvailablePlaces)
	}
}
