package roomRepo

import (
	"context"
	"errors"
	"testing"

	"happyhotel/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func TestAvailableRooms(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("sums returned rooms", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "name", Value: "Room 1"}, {Key: "capacity", Value: 2}, {Key: "available", Value: true}},
			bson.D{{Key: "name", Value: "Room 2"}, {Key: "capacity", Value: 4}, {Key: "available", Value: true}},
		))
		repo := newMongoRoomRepo(mt.Coll)

		rooms, err := repo.AvailableRooms(context.Background())
		if err != nil {
			mt.Fatalf("AvailableRooms() error = %v", err)
		}
		if len(rooms) != 2 || rooms[0].Name != "Room 1" || rooms[1].Capacity != 4 {
			mt.Errorf("unexpected rooms %+v", rooms)
		}
	})

	mt.Run("empty inventory", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))
		repo := newMongoRoomRepo(mt.Coll)

		rooms, err := repo.AvailableRooms(context.Background())
		if err != nil {
			mt.Fatalf("AvailableRooms() error = %v", err)
		}
		if len(rooms) != 0 {
			mt.Errorf("expected no rooms, got %+v", rooms)
		}
	})
}

func TestFindAvailableRoomID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	req := models.BookingRequest{ID: "1", Guests: 3}

	mt.Run("room found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "name", Value: "Room 7"}, {Key: "capacity", Value: 4}, {Key: "available", Value: true}},
		))
		repo := newMongoRoomRepo(mt.Coll)

		id, err := repo.FindAvailableRoomID(context.Background(), req)
		if err != nil {
			mt.Fatalf("FindAvailableRoomID() error = %v", err)
		}
		if id != "Room 7" {
			mt.Errorf("room = %q, want Room 7", id)
		}
	})

	mt.Run("no room", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))
		repo := newMongoRoomRepo(mt.Coll)

		if _, err := repo.FindAvailableRoomID(context.Background(), req); !errors.Is(err, ErrNoRoom) {
			mt.Errorf("error = %v, want ErrNoRoom", err)
		}
	})
}

func TestBookAndUnbookRoom(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("book free room", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))
		if err := newMongoRoomRepo(mt.Coll).BookRoom(context.Background(), "Room 1"); err != nil {
			mt.Errorf("BookRoom() error = %v", err)
		}
	})

	mt.Run("book taken room", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		if err := newMongoRoomRepo(mt.Coll).BookRoom(context.Background(), "Room 1"); !errors.Is(err, ErrNoRoom) {
			mt.Errorf("error = %v, want ErrNoRoom", err)
		}
	})

	mt.Run("unbook unknown room", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		if err := newMongoRoomRepo(mt.Coll).UnbookRoom(context.Background(), "Room 9"); !errors.Is(err, ErrRoomNotFound) {
			mt.Errorf("error = %v, want ErrRoomNotFound", err)
		}
	})

	mt.Run("unbook room", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))
		if err := newMongoRoomRepo(mt.Coll).UnbookRoom(context.Background(), "Room 1"); err != nil {
			mt.Errorf("UnbookRoom() error = %v", err)
		}
	})
}

func TestUpsertRejectsInvalidRoom(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("invalid", func(mt *mtest.T) {
		if err := newMongoRoomRepo(mt.Coll).Upsert(context.Background(), models.Room{Capacity: 2}); err == nil {
			mt.Error("expected error for unnamed room")
		}
	})

	mt.Run("valid", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 0}))
		room := models.Room{Name: "Room 1", Capacity: 2, Available: true}
		if err := newMongoRoomRepo(mt.Coll).Upsert(context.Background(), room); err != nil {
			mt.Errorf("Upsert() error = %v", err)
		}
	})
}
