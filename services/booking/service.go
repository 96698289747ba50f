package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	roomRepo "happyhotel/database/repository/room"
	"happyhotel/models"

	"go.uber.org/zap"
)

// Service orchestrates pricing, room resolution, payment, persistence and
// confirmation for a single booking. It keeps no state of its own beyond
// its collaborators.
type Service struct {
	payments PaymentService
	rooms    RoomService
	store    BookingStore
	mailer   MailSenderService
	convert  CurrencyConverter
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a booking service. A nil logger disables logging.
func NewService(
	payments PaymentService,
	rooms RoomService,
	store BookingStore,
	mailer MailSenderService,
	convert CurrencyConverter,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if convert == nil {
		convert = func(float64, string) (float64, error) {
			return 0, errors.New("no currency converter configured")
		}
	}
	return &Service{
		payments: payments,
		rooms:    rooms,
		store:    store,
		mailer:   mailer,
		convert:  convert,
		logger:   logger,
		now:      time.Now,
	}
}

// GetAvailablePlaceCount sums the capacity of every room the inventory
// currently reports as available.
func (s *Service) GetAvailablePlaceCount(ctx context.Context) (int, error) {
	rooms, err := s.rooms.AvailableRooms(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list available rooms: %w", err)
	}
	count := 0
	for _, r := range rooms {
		count += r.Capacity
	}
	return count, nil
}

// MakeBooking books a room for req and returns the booking id.
//
// Steps run in order and the first failure ends the call: room resolution
// and claim (ErrNoRoomAvailable), payment when prepaid (ErrPaymentFailed),
// persistence, then confirmation (ErrNotificationFailed). The room is
// claimed before any money moves or anything is stored, and released again
// if payment or persistence fails. A failed confirmation leaves the booking
// persisted.
func (s *Service) MakeBooking(ctx context.Context, req models.BookingRequest) (string, error) {
	if err := Validate(req); err != nil {
		return "", err
	}
	log := s.logger.With(zap.String("bookingId", req.ID))

	roomID, err := s.rooms.FindAvailableRoomID(ctx, req)
	if err != nil {
		log.Info("room resolution failed", zap.Error(err))
		return "", roomError(err, "no room available for booking "+req.ID)
	}
	if err := s.rooms.BookRoom(ctx, roomID); err != nil {
		log.Info("room claim failed", zap.String("roomId", roomID), zap.Error(err))
		return "", roomError(err, "room "+roomID+" is no longer available")
	}

	price := s.CalculatePrice(req)

	var receipt string
	if req.Prepaid {
		receipt, err = s.payments.Pay(ctx, req, price)
		if err != nil {
			log.Warn("payment rejected", zap.Float64("price", price), zap.Error(err))
			s.releaseRoom(ctx, log, roomID)
			return "", asBusinessError(err, CodePaymentFailed, "payment failed for booking "+req.ID)
		}
	}

	req.RoomID = roomID
	record := &models.Booking{
		ID:        req.ID,
		Request:   req,
		RoomID:    roomID,
		Price:     price,
		Status:    models.BookingStatusConfirmed,
		ReceiptID: receipt,
		CreatedAt: s.now(),
	}
	if err := s.store.Save(ctx, record); err != nil {
		log.Error("failed to save booking", zap.String("receiptId", receipt), zap.Error(err))
		s.releaseRoom(ctx, log, roomID)
		if receipt != "" {
			return "", fmt.Errorf("failed to save booking %s after payment %s was taken: %w", req.ID, receipt, err)
		}
		return "", fmt.Errorf("failed to save booking %s: %w", req.ID, err)
	}

	if err := s.mailer.SendBookingConfirmation(ctx, *record); err != nil {
		log.Warn("booking persisted but confirmation failed", zap.Error(err))
		return "", asBusinessError(err, CodeNotificationFailed, "confirmation failed for booking "+req.ID)
	}

	log.Info("booking confirmed",
		zap.String("roomId", roomID),
		zap.Float64("price", price),
		zap.Bool("prepaid", req.Prepaid),
	)
	return req.ID, nil
}

// releaseRoom gives back a room claimed by a booking that did not go through.
func (s *Service) releaseRoom(ctx context.Context, log *zap.Logger, roomID string) {
	if err := s.rooms.UnbookRoom(ctx, roomID); err != nil {
		log.Error("failed to release claimed room", zap.String("roomId", roomID), zap.Error(err))
	}
}

// CancelBooking marks the record cancelled, drops its pending reminder and
// frees its room. Cancelling an already cancelled booking is a no-op.
//
// The record is always marked before the room is freed, so a retried
// cancel never frees a room that was handed on.
func (s *Service) CancelBooking(ctx context.Context, id string) error {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load booking %s: %w", id, err)
	}
	if record == nil {
		return newBusinessError(CodeBookingNotFound, "booking "+id+" does not exist", nil)
	}
	if record.Cancelled() {
		return nil
	}

	if err := s.store.MarkCancelled(ctx, id, s.now()); err != nil {
		return fmt.Errorf("failed to cancel booking %s: %w", id, err)
	}
	if rc, ok := s.mailer.(ReminderCanceller); ok {
		if err := rc.CancelReminder(ctx, id); err != nil {
			s.logger.Warn("failed to drop check-in reminder", zap.String("bookingId", id), zap.Error(err))
		}
	}
	if err := s.rooms.UnbookRoom(ctx, record.RoomID); err != nil {
		s.logger.Error("booking cancelled but room not freed",
			zap.String("bookingId", id), zap.String("roomId", record.RoomID), zap.Error(err))
		return fmt.Errorf("booking %s cancelled but room %s not freed: %w", id, record.RoomID, err)
	}

	s.logger.Info("booking cancelled", zap.String("bookingId", id), zap.String("roomId", record.RoomID))
	return nil
}

// roomError classifies an inventory failure. Only a genuine lack of rooms
// becomes ErrNoRoomAvailable; anything else is an infrastructure error.
func roomError(err error, msg string) error {
	if errors.Is(err, roomRepo.ErrNoRoom) || errors.Is(err, ErrNoRoomAvailable) {
		return asBusinessError(err, CodeNoRoomAvailable, msg)
	}
	return fmt.Errorf("room inventory: %s: %w", msg, err)
}

// asBusinessError passes through an error that already carries code and
// classifies anything else under it.
func asBusinessError(err error, code, msg string) error {
	var be *BusinessError
	if errors.As(err, &be) && be.Code == code {
		return err
	}
	return newBusinessError(code, msg, err)
}
