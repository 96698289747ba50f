package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"happyhotel/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrBookingNotFound = errors.New("booking not found")

// Save inserts a new booking record.
func (r *mongoBookingRepo) Save(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		return errors.New("booking id is required")
	}
	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to insert booking %s: %w", booking.ID, err)
	}
	return nil
}

// Get returns the booking with id, or nil when it does not exist.
func (r *mongoBookingRepo) Get(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

// MarkCancelled flags the booking as cancelled at the given time.
func (r *mongoBookingRepo) MarkCancelled(ctx context.Context, id string, at time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{
			"status":       models.BookingStatusCancelled,
			"cancelled_at": at,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to cancel booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}
