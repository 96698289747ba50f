package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"happyhotel/models"

	"github.com/hibiken/asynq"
)

const (
	TypeSendReminder = "reminder:send"
	ReminderQueue    = "default"

	reminderMaxRetry  = 3
	reminderRetention = 24 * time.Hour
)

// NewReminderTask builds a check-in reminder for fireAt. The task id is
// derived from the booking, so a booking never has two pending reminders.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("encode reminder for booking %s: %w", payload.BookingID, err)
	}
	return asynq.NewTask(TypeSendReminder, b), []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(ReminderTaskID(payload.BookingID)),
		asynq.Queue(ReminderQueue),
		asynq.MaxRetry(reminderMaxRetry),
		asynq.Retention(reminderRetention),
	}, nil
}

// ReminderTaskID is the asynq task id of a booking's reminder.
func ReminderTaskID(bookingID string) string {
	return "reminder:" + bookingID
}

// ParseReminderPayload decodes a reminder task body.
func ParseReminderPayload(task *asynq.Task) (models.ReminderPayload, error) {
	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("decode reminder payload: %w", err)
	}
	if p.DeviceToken == "" {
		return p, fmt.Errorf("reminder for booking %s has no device token", p.BookingID)
	}
	return p, nil
}
