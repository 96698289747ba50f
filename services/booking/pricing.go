package booking

import (
	"time"

	"happyhotel/models"
)

// NightlyRate is the price per guest per night in the base currency.
const NightlyRate = 50.0

// CalculatePrice prices a stay as nights x guests x NightlyRate.
func (s *Service) CalculatePrice(req models.BookingRequest) float64 {
	return float64(nights(req.CheckIn, req.CheckOut)) * float64(req.Guests) * NightlyRate
}

// CalculatePriceInCurrency prices the stay and converts it with the injected converter.
func (s *Service) CalculatePriceInCurrency(req models.BookingRequest, currency string) (float64, error) {
	price := s.CalculatePrice(req)
	converted, err := s.convert(price, currency)
	if err != nil {
		return 0, err
	}
	return converted, nil
}

// CalculatePriceEuro is CalculatePriceInCurrency for EUR.
func (s *Service) CalculatePriceEuro(req models.BookingRequest) (float64, error) {
	return s.CalculatePriceInCurrency(req, "EUR")
}

// nights counts calendar days between the two dates, ignoring time of day.
func nights(checkIn, checkOut time.Time) int {
	return int(toDay(checkOut).Sub(toDay(checkIn)).Hours() / 24)
}

func toDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
