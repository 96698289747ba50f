package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"happyhotel/models"
	"happyhotel/services/tasks"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderLead is how long before check-in the reminder fires.
const ReminderLead = 24 * time.Hour

var ErrNoDeviceToken = errors.New("booking has no device token")

// Messenger sends FCM messages; *messaging.Client satisfies it.
type Messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// TaskEnqueuer schedules background tasks; *asynq.Client satisfies it.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TaskRemover drops queued tasks by id; *asynq.Inspector satisfies it.
type TaskRemover interface {
	DeleteTask(queue, id string) error
}

// NotificationService delivers booking confirmations and reminders.
type NotificationService interface {
	SendBookingConfirmation(ctx context.Context, booking models.Booking) error
	SendReminder(ctx context.Context, payload models.ReminderPayload) error
}

// PushNotificationService is the FCM-backed implementation.
type PushNotificationService struct {
	messenger Messenger
	reminders TaskEnqueuer // optional
	remover   TaskRemover  // optional
	logger    *zap.Logger
	now       func() time.Time
}

func NewPushNotificationService(messenger Messenger, reminders TaskEnqueuer, remover TaskRemover, logger *zap.Logger) (*PushNotificationService, error) {
	if messenger == nil {
		return nil, fmt.Errorf("notification service initialization error: messenger is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PushNotificationService{
		messenger: messenger,
		reminders: reminders,
		remover:   remover,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// SendBookingConfirmation pushes the confirmation to the guest's device and
// schedules a check-in reminder. Only the push can fail the call.
func (s *PushNotificationService) SendBookingConfirmation(ctx context.Context, booking models.Booking) error {
	token := booking.Request.DeviceToken
	if token == "" {
		return fmt.Errorf("SendBookingConfirmation: booking %s: %w", booking.ID, ErrNoDeviceToken)
	}

	checkIn := booking.Request.CheckIn.Format("2006-01-02")
	title := "Your booking is confirmed 🏨"
	body := fmt.Sprintf("Room %s is yours from %s to %s for %d guest%s. Total %.2f.",
		booking.RoomID,
		checkIn,
		booking.Request.CheckOut.Format("2006-01-02"),
		booking.Request.Guests,
		plural(booking.Request.Guests),
		booking.Price,
	)
	data := map[string]string{
		"type":      "booking_confirmation",
		"bookingId": booking.ID,
		"roomId":    booking.RoomID,
		"checkIn":   checkIn,
	}

	if err := s.send(ctx, token, title, body, data); err != nil {
		return fmt.Errorf("SendBookingConfirmation: %w", err)
	}

	s.scheduleReminder(ctx, booking)
	return nil
}

// SendReminder pushes a previously scheduled reminder.
func (s *PushNotificationService) SendReminder(ctx context.Context, p models.ReminderPayload) error {
	if p.DeviceToken == "" {
		return fmt.Errorf("SendReminder: booking %s: %w", p.BookingID, ErrNoDeviceToken)
	}
	data := map[string]string{
		"type":       "checkin_reminder",
		"bookingId":  p.BookingID,
		"reminderId": p.ReminderID,
		"fireDate":   p.FireDate,
	}
	if err := s.send(ctx, p.DeviceToken, p.Title, p.Body, data); err != nil {
		return fmt.Errorf("SendReminder: %w", err)
	}
	return nil
}

func (s *PushNotificationService) send(ctx context.Context, token, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	response, err := s.messenger.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	s.logger.Debug("push sent", zap.String("response", response), zap.String("type", data["type"]))
	return nil
}

func (s *PushNotificationService) scheduleReminder(ctx context.Context, booking models.Booking) {
	if s.reminders == nil {
		return
	}
	fireAt := booking.Request.CheckIn.Add(-ReminderLead)
	if !fireAt.After(s.now()) {
		return
	}

	payload := models.ReminderPayload{
		ReminderID:  uuid.New().String(),
		BookingID:   booking.ID,
		DeviceToken: booking.Request.DeviceToken,
		Title:       "Check-in tomorrow",
		Body:        fmt.Sprintf("Room %s is waiting for you tomorrow.", booking.RoomID),
		FireDate:    fireAt.Format(time.RFC3339),
	}
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		s.logger.Warn("failed to build reminder task", zap.String("bookingId", booking.ID), zap.Error(err))
		return
	}
	if _, err := s.reminders.EnqueueContext(ctx, task, opts...); err != nil {
		s.logger.Warn("failed to schedule reminder", zap.String("bookingId", booking.ID), zap.Error(err))
	}
}

// CancelReminder drops the booking's pending check-in reminder. A reminder
// that was never scheduled or already ran is not an error.
func (s *PushNotificationService) CancelReminder(ctx context.Context, bookingID string) error {
	if s.remover == nil {
		return nil
	}
	err := s.remover.DeleteTask(tasks.ReminderQueue, tasks.ReminderTaskID(bookingID))
	if err == nil || errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
		return nil
	}
	return fmt.Errorf("CancelReminder: booking %s: %w", bookingID, err)
}

// plural returns "s" if n is not 1, otherwise returns an empty string.
func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
