package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"happyhotel/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

var (
	ErrInvalidAmount = errors.New("invalid payment amount")
	ErrPriceTooHigh  = errors.New("price exceeds the payment limit")
)

// intentCreator creates a Stripe PaymentIntent; paymentintent.New in production.
type intentCreator func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)

// StripePaymentHandler charges prepaid bookings through Stripe PaymentIntents.
type StripePaymentHandler struct {
	logger    *zap.Logger
	currency  string
	maxAmount float64
	create    intentCreator
}

// NewStripePaymentHandler returns a handler charging in currency. A
// maxAmount of zero disables the upper limit. The Stripe API key is read
// from stripe.Key.
func NewStripePaymentHandler(logger *zap.Logger, currency string, maxAmount float64) *StripePaymentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StripePaymentHandler{
		logger:    logger,
		currency:  strings.ToLower(currency),
		maxAmount: maxAmount,
		create:    paymentintent.New,
	}
}

// Pay charges amount for req and returns the PaymentIntent ID as receipt.
func (h *StripePaymentHandler) Pay(ctx context.Context, req models.BookingRequest, amount float64) (string, error) {
	if err := h.validate(amount); err != nil {
		return "", err
	}

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(toMinorUnits(amount)),
		Currency:    stripe.String(h.currency),
		Confirm:     stripe.Bool(true),
		Description: stripe.String(fmt.Sprintf("Hotel booking %s", req.ID)),
	}
	if req.PaymentMethod != "" {
		params.PaymentMethod = stripe.String(req.PaymentMethod)
	}
	if req.GuestEmail != "" {
		params.ReceiptEmail = stripe.String(req.GuestEmail)
	}
	params.Context = ctx
	params.SetIdempotencyKey("booking-" + req.ID)
	params.AddMetadata("booking_id", req.ID)

	intent, err := h.create(params)
	if err != nil {
		h.logger.Error("stripe charge failed", zap.String("bookingId", req.ID), zap.Error(err))
		return "", fmt.Errorf("stripe charge for booking %s: %w", req.ID, err)
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		h.logger.Warn("stripe charge not completed",
			zap.String("bookingId", req.ID),
			zap.String("intent", intent.ID),
			zap.String("status", string(intent.Status)),
		)
		return "", fmt.Errorf("payment intent %s ended in status %s", intent.ID, intent.Status)
	}

	h.logger.Info("Card payment successful", zap.String("bookingId", req.ID), zap.String("intent", intent.ID))
	return intent.ID, nil
}

func (h *StripePaymentHandler) validate(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	if h.maxAmount > 0 && amount > h.maxAmount {
		return fmt.Errorf("%w: %.2f > %.2f", ErrPriceTooHigh, amount, h.maxAmount)
	}
	return nil
}

// toMinorUnits converts an amount to cents.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
