// File: happyhotel/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"happyhotel/config"
	"happyhotel/cron"
	"happyhotel/database"
	bookingRepo "happyhotel/database/repository/booking"
	roomRepo "happyhotel/database/repository/room"
	"happyhotel/handlers"
	"happyhotel/routes"
	"happyhotel/services/booking"
	"happyhotel/services/currency"
	"happyhotel/services/notification"
	"happyhotel/services/payment"
	"happyhotel/utils"

	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	database.InitDB()
	utils.InitCache()
	stripe.Key = config.AppConfig.StripeKey

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// repositories.
	db := database.Database()
	rooms := roomRepo.NewMongoRoomRepo(db)
	bookings := bookingRepo.NewMongoBookingRepo(db)
	if err := rooms.EnsureIndexes(); err != nil {
		logger.Fatal("main: failed to create room indexes", zap.Error(err))
	}
	if err := bookings.EnsureIndexes(); err != nil {
		logger.Fatal("main: failed to create booking indexes", zap.Error(err))
	}
	seed, err := roomRepo.ParseRooms(config.AppConfig.Rooms)
	if err != nil {
		logger.Fatal("main: invalid ROOMS", zap.Error(err))
	}
	if err := roomRepo.Seed(ctx, rooms, seed); err != nil {
		logger.Fatal("main: failed to seed rooms", zap.Error(err))
	}

	// notifications.
	fcm, err := utils.NewFCMClient(ctx)
	if err != nil {
		logger.Fatal("main: failed to initialize firebase messaging", zap.Error(err))
	}
	reminderClient := asynq.NewClient(cron.RedisOpt())
	defer reminderClient.Close()

	reminderInspector := asynq.NewInspector(cron.RedisOpt())
	defer reminderInspector.Close()

	notifSvc, err := notification.NewPushNotificationService(fcm, reminderClient, reminderInspector, logger)
	if err != nil {
		logger.Fatal("main: failed to initialize notification service", zap.Error(err))
	}
	worker := cron.InitReminderWorker(notifSvc, bookings, logger)

	// services.
	rates, err := currency.ParseRates(config.AppConfig.CurrencyRates)
	if err != nil {
		logger.Fatal("main: invalid CURRENCY_RATES", zap.Error(err))
	}
	payments := payment.NewStripePaymentHandler(logger, config.AppConfig.PaymentCurrency, config.AppConfig.PaymentMaxAmount)
	bookingService := booking.NewService(payments, rooms, bookings, notifSvc, rates.Convert, logger)

	utils.StartHealthMonitor(ctx, 30*time.Second,
		database.Ping,
		[]utils.Pinger{
			func(ctx context.Context) error { return utils.GetCacheClient().Ping(ctx).Err() },
			func(ctx context.Context) error { return reminderClient.Ping() },
		},
	)

	router := routes.NewRouter(handlers.NewBookingHandler(bookingService, logger), config.AppConfig.MaxRequestsPerMin, utils.GetCacheClient())

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	if err := database.Disconnect(shutdownCtx); err != nil {
		logger.Sugar().Warnf("main: mongo disconnect: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
