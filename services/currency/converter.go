// Package currency converts base-currency amounts using a fixed rate table.
package currency

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// BaseCurrency is the currency prices are calculated in.
const BaseCurrency = "USD"

var ErrInvalidAmount = errors.New("invalid amount")

// RateTable maps an upper-case currency code to the number of units of
// that currency per unit of BaseCurrency.
type RateTable map[string]float64

// ParseRates reads a table from "EUR=0.8,GBP=0.7". The base currency is
// always present with rate 1.
func ParseRates(s string) (RateTable, error) {
	rates := RateTable{BaseCurrency: 1}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		code, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("malformed rate %q", pair)
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || rate <= 0 || math.IsInf(rate, 0) {
			return nil, fmt.Errorf("invalid rate for %s: %q", code, value)
		}
		rates[normalize(code)] = rate
	}
	return rates, nil
}

// Convert converts amount into currency. It has no side effects.
func (r RateTable) Convert(amount float64, currency string) (float64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	rate, ok := r[normalize(currency)]
	if !ok {
		return 0, fmt.Errorf("unsupported currency %q", currency)
	}
	return amount * rate, nil
}

// ToEuro converts amount into EUR.
func (r RateTable) ToEuro(amount float64) (float64, error) {
	return r.Convert(amount, "EUR")
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
