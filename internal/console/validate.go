package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rustyeddy/fxtrigger/market"
)

var (
	ErrBadSymbol = errors.New("symbol must be letters only, at least 5 characters")
	ErrBadPrice  = errors.New("enter a positive number")
)

// NormalizeSymbol upper-cases and validates a symbol such as eurusd or
// XAUUSD.
func NormalizeSymbol(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !market.ValidSymbol(s) {
		return "", ErrBadSymbol
	}
	return s, nil
}

func ParseDirection(s string) (market.Side, error) {
	return market.ParseSide(s)
}

func ParsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return 0, ErrBadPrice
	}
	return v, nil
}

// ParseRisk never fails: blank, unparsable or non-positive input means def.
func ParseRisk(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func formatRisk(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func check[T any](parse func(string) (T, error)) func(string) error {
	return func(s string) error {
		_, err := parse(s)
		if err != nil {
			return fmt.Errorf("invalid input: %w", err)
		}
		return nil
	}
}
