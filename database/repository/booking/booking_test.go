package bookingRepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"happyhotel/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func TestSave(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	booking := &models.Booking{ID: "1", RoomID: "Room 1", Price: 400, Status: models.BookingStatusConfirmed}

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		if err := newMongoBookingRepo(mt.Coll).Save(context.Background(), booking); err != nil {
			mt.Errorf("Save() error = %v", err)
		}
	})

	mt.Run("duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}))
		if err := newMongoBookingRepo(mt.Coll).Save(context.Background(), booking); err == nil {
			mt.Error("expected duplicate key error")
		}
	})

	mt.Run("missing id", func(mt *mtest.T) {
		if err := newMongoBookingRepo(mt.Coll).Save(context.Background(), &models.Booking{}); err == nil {
			mt.Error("expected error for missing id")
		}
	})
}

func TestGet(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	checkIn := time.Date(2022, 12, 1, 0, 0, 0, 0, time.UTC)

	mt.Run("found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{
			{Key: "id", Value: "1"},
			{Key: "request", Value: bson.D{
				{Key: "id", Value: "1"},
				{Key: "check_in", Value: checkIn},
				{Key: "check_out", Value: checkIn.AddDate(0, 0, 4)},
				{Key: "guests", Value: 2},
				{Key: "prepaid", Value: true},
				{Key: "room_id", Value: "123"},
			}},
			{Key: "room_id", Value: "123"},
			{Key: "price", Value: 400.0},
			{Key: "status", Value: models.BookingStatusConfirmed},
		}))

		got, err := newMongoBookingRepo(mt.Coll).Get(context.Background(), "1")
		if err != nil {
			mt.Fatalf("Get() error = %v", err)
		}
		if got == nil || got.RoomID != "123" || got.Price != 400 || got.Request.Guests != 2 || !got.Request.CheckIn.Equal(checkIn) {
			mt.Errorf("unexpected booking %+v", got)
		}
	})

	mt.Run("absent", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))
		got, err := newMongoBookingRepo(mt.Coll).Get(context.Background(), "missing")
		if err != nil || got != nil {
			mt.Errorf("Get() = %+v, %v; want nil, nil", got, err)
		}
	})
}

func TestMarkCancelled(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	at := time.Date(2022, 11, 25, 10, 0, 0, 0, time.UTC)

	mt.Run("cancelled", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))
		if err := newMongoBookingRepo(mt.Coll).MarkCancelled(context.Background(), "1", at); err != nil {
			mt.Errorf("MarkCancelled() error = %v", err)
		}
	})

	mt.Run("unknown", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		err := newMongoBookingRepo(mt.Coll).MarkCancelled(context.Background(), "missing", at)
		if !errors.Is(err, ErrBookingNotFound) {
			mt.Errorf("error = %v, want ErrBookingNotFound", err)
		}
	})
}
