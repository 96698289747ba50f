package booking

import (
	"context"
	"errors"
	"time"

	"happyhotel/models"
)

// calls records the order in which collaborators were invoked.
type calls []string

func (c *calls) add(name string) { *c = append(*c, name) }

type fakeRooms struct {
	log *calls

	availableRooms [][]models.Room // one entry per call; the last is repeated
	availableErr   error
	roomID         string
	findErr        error
	bookErr        error
	unbookErr      error

	listCalls int
	booked    []string
	unbooked  []string
}

func (f *fakeRooms) AvailableRooms(ctx context.Context) ([]models.Room, error) {
	f.log.add("rooms.AvailableRooms")
	defer func() { f.listCalls++ }()
	if f.availableErr != nil {
		return nil, f.availableErr
	}
	if len(f.availableRooms) == 0 {
		return nil, nil
	}
	if f.listCalls < len(f.availableRooms) {
		return f.availableRooms[f.listCalls], nil
	}
	return f.availableRooms[len(f.availableRooms)-1], nil
}

func (f *fakeRooms) FindAvailableRoomID(ctx context.Context, req models.BookingRequest) (string, error) {
	f.log.add("rooms.FindAvailableRoomID")
	if f.findErr != nil {
		return "", f.findErr
	}
	return f.roomID, nil
}

func (f *fakeRooms) BookRoom(ctx context.Context, roomID string) error {
	f.log.add("rooms.BookRoom")
	if f.bookErr != nil {
		return f.bookErr
	}
	f.booked = append(f.booked, roomID)
	return nil
}

func (f *fakeRooms) UnbookRoom(ctx context.Context, roomID string) error {
	f.log.add("rooms.UnbookRoom")
	if f.unbookErr != nil {
		return f.unbookErr
	}
	f.unbooked = append(f.unbooked, roomID)
	return nil
}

type payCall struct {
	req    models.BookingRequest
	amount float64
}

type fakePayments struct {
	log     *calls
	receipt string
	err     error
	calls   []payCall
}

func (f *fakePayments) Pay(ctx context.Context, req models.BookingRequest, amount float64) (string, error) {
	f.log.add("payments.Pay")
	f.calls = append(f.calls, payCall{req: req, amount: amount})
	if f.err != nil {
		return "", f.err
	}
	return f.receipt, nil
}

type fakeStore struct {
	log       *calls
	records   map[string]*models.Booking
	saveErr   error
	getErr    error
	cancelErr error
	saved     []models.Booking
	cancelled map[string]time.Time
}

func newFakeStore(log *calls) *fakeStore {
	return &fakeStore{log: log, records: map[string]*models.Booking{}, cancelled: map[string]time.Time{}}
}

func (f *fakeStore) Save(ctx context.Context, b *models.Booking) error {
	f.log.add("store.Save")
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, *b)
	cp := *b
	f.records[b.ID] = &cp
	return nil
}

func (f *fakeStore) Get(ctx context.Context, id string) (*models.Booking, error) {
	f.log.add("store.Get")
	if f.getErr != nil {
		return nil, f.getErr
	}
	b, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeStore) MarkCancelled(ctx context.Context, id string, at time.Time) error {
	f.log.add("store.MarkCancelled")
	if f.cancelErr != nil {
		return f.cancelErr
	}
	b, ok := f.records[id]
	if !ok {
		return errors.New("not found")
	}
	b.Status = models.BookingStatusCancelled
	b.CancelledAt = &at
	f.cancelled[id] = at
	return nil
}

type fakeMailer struct {
	log       *calls
	err       error
	cancelErr error
	sent      []models.Booking
	dropped   []string
}

func (f *fakeMailer) SendBookingConfirmation(ctx context.Context, b models.Booking) error {
	f.log.add("mailer.SendBookingConfirmation")
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, b)
	return nil
}

type fixture struct {
	log      *calls
	rooms    *fakeRooms
	payments *fakePayments
	store    *fakeStore
	mailer   *fakeMailer
	svc      *Service
}

func newFixture() *fixture {
	log := &calls{}
	f := &fixture{
		log:      log,
		rooms:    &fakeRooms{log: log, roomID: "Room 1"},
		payments: &fakePayments{log: log, receipt: "pi_1"},
		store:    newFakeStore(log),
		mailer:   &fakeMailer{log: log},
	}
	f.svc = NewService(f.payments, f.rooms, f.store, f.mailer, nil, nil)
	f.svc.now = func() time.Time { return time.Date(2022, 11, 20, 9, 0, 0, 0, time.UTC) }
	return f
}

func (f *fixture) count(name string) int {
	n := 0
	for _, c := range *f.log {
		if c == name {
			n++
		}
	}
	return n
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func request(id string, from, to time.Time, guests int, prepaid bool) models.BookingRequest {
	return models.BookingRequest{ID: id, CheckIn: from, CheckOut: to, Guests: guests, Prepaid: prepaid}
}

func (f *fakeMailer) CancelReminder(ctx context.Context, bookingID string) error {
	f.log.add("mailer.CancelReminder")
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.dropped = append(f.dropped, bookingID)
	return nil
}
