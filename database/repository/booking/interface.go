package bookingRepo

import (
	"context"
	"time"

	"happyhotel/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository persists booking records.
type BookingRepository interface {
	Save(ctx context.Context, booking *models.Booking) error
	Get(ctx context.Context, id string) (*models.Booking, error)
	MarkCancelled(ctx context.Context, id string, at time.Time) error
	EnsureIndexes() error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by the "bookings" collection.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	return newMongoBookingRepo(db.Collection("bookings"))
}

func newMongoBookingRepo(coll *mongo.Collection) *mongoBookingRepo {
	return &mongoBookingRepo{coll: coll}
}
