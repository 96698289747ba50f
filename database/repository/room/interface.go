package roomRepo

import (
	"context"
	"errors"

	"happyhotel/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNoRoom is returned when no available room fits a request.
	ErrNoRoom       = errors.New("no available room")
	ErrRoomNotFound = errors.New("room not found")
)

// RoomRepository is the hotel's room inventory.
type RoomRepository interface {
	AvailableRooms(ctx context.Context) ([]models.Room, error)
	FindAvailableRoomID(ctx context.Context, req models.BookingRequest) (string, error)
	BookRoom(ctx context.Context, roomID string) error
	UnbookRoom(ctx context.Context, roomID string) error
	Upsert(ctx context.Context, room models.Room) error
	EnsureIndexes() error
}

type mongoRoomRepo struct {
	coll *mongo.Collection
}

// NewMongoRoomRepo returns a RoomRepository backed by the "rooms" collection.
func NewMongoRoomRepo(db *mongo.Database) RoomRepository {
	return newMongoRoomRepo(db.Collection("rooms"))
}

func newMongoRoomRepo(coll *mongo.Collection) *mongoRoomRepo {
	return &mongoRoomRepo{coll: coll}
}
