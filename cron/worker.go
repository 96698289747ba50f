package cron

import (
	"context"
	"fmt"
	"time"

	"happyhotel/config"
	"happyhotel/models"
	"happyhotel/services/notification"
	"happyhotel/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisOpt returns the asynq connection for the reminder queue.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// InitReminderWorker runs the async worker in background and returns the
// server so the caller can shut it down.
func InitReminderWorker(notifSvc notification.NotificationService, bookings BookingLookup, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				tasks.ReminderQueue: 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifSvc, bookings, logger))

	// Start async worker with retry logic
	go func() {
		logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Start(mux); err != nil {
				logger.Error("reminder worker failed to start", zap.Int("attempt", attempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Error("reminder worker gave up; reminders will not be delivered")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
	return srv
}

// BookingLookup reads booking records; nil, nil means the booking is unknown.
type BookingLookup interface {
	Get(ctx context.Context, id string) (*models.Booking, error)
}

func handleReminderTask(notifSvc notification.NotificationService, bookings BookingLookup, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseReminderPayload(task)
		if err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		booking, err := bookings.Get(ctx, p.BookingID)
		if err != nil {
			return fmt.Errorf("load booking %s: %w", p.BookingID, err)
		}
		if booking == nil || booking.Cancelled() {
			logger.Info("skipping reminder for inactive booking", zap.String("bookingId", p.BookingID))
			return nil
		}

		logger.Info("sending check-in reminder", zap.String("bookingId", p.BookingID), zap.String("reminderId", p.ReminderID))

		if err := notifSvc.SendReminder(ctx, p); err != nil {
			logger.Warn("failed to send reminder", zap.String("bookingId", p.BookingID), zap.Error(err))
			return err
		}
		return nil
	}
}
