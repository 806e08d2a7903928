package risk

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/fxtrigger/market"
)

// TradeIntent is what the operator asked for. The entry price is not part
// of it: that is resolved from a fresh quote at submission time.
type TradeIntent struct {
	Symbol      string
	Side        market.Side
	StopLoss    float64
	TakeProfit  float64
	RiskPercent float64 // 1.0 == 1% of balance
}

// NewTradeIntent normalises the symbol and validates the fields that can be
// checked without market data.
func NewTradeIntent(symbol string, side market.Side, stopLoss, takeProfit, riskPercent float64) (TradeIntent, error) {
	in := TradeIntent{
		Symbol:      strings.ToUpper(strings.TrimSpace(symbol)),
		Side:        side,
		StopLoss:    stopLoss,
		TakeProfit:  takeProfit,
		RiskPercent: riskPercent,
	}
	if err := in.Validate(); err != nil {
		return TradeIntent{}, err
	}
	return in, nil
}

func (in TradeIntent) Validate() error {
	switch {
	case in.Symbol == "":
		return fmt.Errorf("%w: symbol is required", ErrInvalidIntent)
	case !market.ValidSymbol(in.Symbol):
		return fmt.Errorf("%w: symbol %q must be letters only, at least %d characters", ErrInvalidIntent, in.Symbol, market.MinSymbolLen)
	case !in.Side.Valid():
		return fmt.Errorf("%w: direction %q", ErrInvalidIntent, in.Side)
	case in.StopLoss <= 0:
		return fmt.Errorf("%w: stop-loss must be positive", ErrInvalidIntent)
	case in.TakeProfit <= 0:
		return fmt.Errorf("%w: take-profit must be positive", ErrInvalidIntent)
	case in.RiskPercent <= 0:
		return fmt.Errorf("%w: risk percent must be positive", ErrInvalidIntent)
	}
	return nil
}
