package market

import (
	"fmt"
	"strings"
)

// Side is the direction of a market order.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

func (s Side) String() string { return string(s) }

func (s Side) Valid() bool {
	return s == Buy || s == Sell
}

// ParseSide accepts "buy"/"sell" in any case, surrounding space ignored.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToUpper(strings.TrimSpace(s))) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	default:
		return "", fmt.Errorf("invalid direction %q (want BUY or SELL)", s)
	}
}
