package roomRepo

import (
	"context"
	"fmt"

	"happyhotel/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookRoom takes a free room. A room that is already taken yields ErrNoRoom.
func (r *mongoRoomRepo) BookRoom(ctx context.Context, roomID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"name": roomID, "available": true},
		bson.M{"$set": bson.M{"available": false}},
	)
	if err != nil {
		return fmt.Errorf("failed to book room %s: %w", roomID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNoRoom
	}
	return nil
}

// UnbookRoom makes the room available again.
func (r *mongoRoomRepo) UnbookRoom(ctx context.Context, roomID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"name": roomID},
		bson.M{"$set": bson.M{"available": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to free room %s: %w", roomID, err)
	}
	if res.MatchedCount == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// Upsert creates a free room or updates the capacity of an existing one.
// Availability of an existing room is left alone.
func (r *mongoRoomRepo) Upsert(ctx context.Context, room models.Room) error {
	if room.Name == "" || room.Capacity < 0 {
		return fmt.Errorf("invalid room %+v", room)
	}
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"name": room.Name},
		bson.M{
			"$set":         bson.M{"capacity": room.Capacity},
			"$setOnInsert": bson.M{"available": true},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert room %s: %w", room.Name, err)
	}
	return nil
}
