package models

import "time"

// Booking statuses.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// BookingRequest is a guest's request for a stay.
type BookingRequest struct {
	ID            string    `bson:"id" json:"id"`
	CheckIn       time.Time `bson:"check_in" json:"checkIn"`
	CheckOut      time.Time `bson:"check_out" json:"checkOut"`
	Guests        int       `bson:"guests" json:"guests"`
	Prepaid       bool      `bson:"prepaid" json:"prepaid"`
	RoomID        string    `bson:"room_id,omitempty" json:"roomId,omitempty"` // Set once a room has been resolved
	GuestEmail    string    `bson:"guest_email,omitempty" json:"guestEmail,omitempty"`
	DeviceToken   string    `bson:"device_token,omitempty" json:"deviceToken,omitempty"`     // FCM registration token
	PaymentMethod string    `bson:"payment_method,omitempty" json:"paymentMethod,omitempty"` // Stripe payment method ID
}

// Booking represents a persisted booking record.
type Booking struct {
	ID          string         `bson:"id" json:"id"`
	Request     BookingRequest `bson:"request" json:"request"`
	RoomID      string         `bson:"room_id" json:"roomId"`
	Price       float64        `bson:"price" json:"price"`
	Status      string         `bson:"status" json:"status"`
	ReceiptID   string         `bson:"receipt_id,omitempty" json:"receiptId,omitempty"` // Empty unless prepaid
	CreatedAt   time.Time      `bson:"created_at" json:"createdAt"`
	CancelledAt *time.Time     `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
}

// Cancelled reports whether the booking has been cancelled.
func (b Booking) Cancelled() bool {
	return b.Status == BookingStatusCancelled
}
