package booking

import (
	"context"
	"time"

	"happyhotel/models"
)

// RoomService is the room inventory consulted for availability.
// FindAvailableRoomID and BookRoom report a lack of rooms with
// roomRepo.ErrNoRoom.
type RoomService interface {
	AvailableRooms(ctx context.Context) ([]models.Room, error)
	FindAvailableRoomID(ctx context.Context, req models.BookingRequest) (string, error)
	BookRoom(ctx context.Context, roomID string) error
	UnbookRoom(ctx context.Context, roomID string) error
}

// PaymentService charges prepaid bookings and returns a receipt token.
type PaymentService interface {
	Pay(ctx context.Context, req models.BookingRequest, amount float64) (string, error)
}

// BookingStore persists booking records. Get returns nil, nil for an
// unknown id.
type BookingStore interface {
	Save(ctx context.Context, booking *models.Booking) error
	Get(ctx context.Context, id string) (*models.Booking, error)
	MarkCancelled(ctx context.Context, id string, at time.Time) error
}

// MailSenderService delivers booking confirmations to the guest.
type MailSenderService interface {
	SendBookingConfirmation(ctx context.Context, booking models.Booking) error
}

// ReminderCanceller is implemented by notifiers that can drop a booking's
// pending reminder. CancelBooking uses it when the mailer provides it.
type ReminderCanceller interface {
	CancelReminder(ctx context.Context, bookingID string) error
}

// CurrencyConverter converts an amount in the base currency into currency.
type CurrencyConverter func(amount float64, currency string) (float64, error)
