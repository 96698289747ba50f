package roomRepo

import (
	"context"
	"errors"
	"fmt"

	"happyhotel/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AvailableRooms lists the rooms currently free, ordered by name.
func (r *mongoRoomRepo) AvailableRooms(ctx context.Context) ([]models.Room, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"available": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query available rooms: %w", err)
	}
	defer cursor.Close(ctx)

	rooms := []models.Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}
	return rooms, nil
}

// FindAvailableRoomID picks the smallest free room that fits the party.
func (r *mongoRoomRepo) FindAvailableRoomID(ctx context.Context, req models.BookingRequest) (string, error) {
	filter := bson.M{
		"available": true,
		"capacity":  bson.M{"$gte": req.Guests},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "capacity", Value: 1}, {Key: "name", Value: 1}})

	var room models.Room
	err := r.coll.FindOne(ctx, filter, opts).Decode(&room)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrNoRoom
	}
	if err != nil {
		return "", fmt.Errorf("failed to find room for %d guests: %w", req.Guests, err)
	}
	return room.Name, nil
}
