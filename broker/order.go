package broker

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/fxtrigger/market"
)

// FillMode is the broker's execution policy for the volume of a market order.
type FillMode string

const (
	FillIOC    FillMode = "IOC"    // immediate-or-cancel, partial fills allowed
	FillFOK    FillMode = "FOK"    // fill-or-kill
	FillReturn FillMode = "RETURN" // partial fill, remainder stays working
)

// DefaultFillModes is the order in which fill modes are tried.
var DefaultFillModes = []FillMode{FillIOC, FillFOK, FillReturn}

func ParseFillMode(s string) (FillMode, error) {
	switch FillMode(strings.ToUpper(strings.TrimSpace(s))) {
	case FillIOC:
		return FillIOC, nil
	case FillFOK:
		return FillFOK, nil
	case FillReturn:
		return FillReturn, nil
	default:
		return "", fmt.Errorf("unknown fill mode %q (want IOC|FOK|RETURN)", s)
	}
}

// ParseFillModes parses a priority list, rejecting empty lists and duplicates.
func ParseFillModes(in []string) ([]FillMode, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("fill mode list is empty")
	}
	seen := make(map[FillMode]bool, len(in))
	out := make([]FillMode, 0, len(in))
	for _, s := range in {
		m, err := ParseFillMode(s)
		if err != nil {
			return nil, err
		}
		if seen[m] {
			return nil, fmt.Errorf("duplicate fill mode %s", m)
		}
		seen[m] = true
		out = append(out, m)
	}
	return out, nil
}

type TimeInForce string

const TimeGTC TimeInForce = "GTC"

// MarketOrderRequest is immutable once built; fill-mode retries derive
// copies with WithFillMode so nothing else can drift between attempts.
type MarketOrderRequest struct {
	Symbol      string
	Side        market.Side
	Volume      float64
	Price       float64
	StopLoss    float64
	TakeProfit  float64
	Deviation   int // max slippage in points
	Comment     string
	TimeInForce TimeInForce
	FillMode    FillMode
}

func (r MarketOrderRequest) WithFillMode(m FillMode) MarketOrderRequest {
	r.FillMode = m
	return r
}

// Retcode values reported by the trade server.
const (
	RetcodeDone     = 10009
	RetcodeRequote  = 10004
	RetcodeReject   = 10006
	RetcodeInvalid  = 10013
	RetcodeNoMoney  = 10019
	RetcodeFillMode = 10030 // unsupported filling mode
)

type OrderResult struct {
	Retcode int
	OrderID string
	Price   float64
	Volume  float64
	Comment string
}

// Done reports whether the server accepted and executed the request.
func (r OrderResult) Done() bool {
	return r.Retcode == RetcodeDone
}
