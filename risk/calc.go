package risk

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// MinLot is the smallest position the broker accepts.
const MinLot = 0.01

func round(x float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(x).Round(places).Float64()
	return f
}

// RiskAmount is the account-currency budget for one trade.
func RiskAmount(riskPercent, balance float64) float64 {
	return (riskPercent / 100) * balance
}

// LotSize turns a risk budget into a position size, rounded to two decimals
// and never below minLot.
func LotSize(riskPercent, balance, stopPips, pipValue, minLot float64) (float64, error) {
	if balance <= 0 {
		return 0, fmt.Errorf("%w: balance %.2f must be positive", ErrInvalidRisk, balance)
	}
	if riskPercent <= 0 {
		return 0, fmt.Errorf("%w: risk percent %.2f must be positive", ErrInvalidRisk, riskPercent)
	}
	if stopPips == 0 {
		return 0, fmt.Errorf("%w: stop-loss distance is zero pips", ErrInvalidRisk)
	}
	if pipValue <= 0 {
		return 0, fmt.Errorf("%w: pip value %.6f must be positive", ErrInvalidRisk, pipValue)
	}
	if minLot <= 0 {
		minLot = MinLot
	}
	lot := RiskAmount(riskPercent, balance) / (stopPips * pipValue)
	return math.Max(round(lot, 2), minLot), nil
}

// RewardToRisk is |tp-entry| / |entry-stop| in raw price units.
func RewardToRisk(entry, stop, takeProfit float64) (float64, error) {
	risk := math.Abs(entry - stop)
	if risk == 0 {
		return 0, ErrDegenerateStop
	}
	return math.Abs(takeProfit-entry) / risk, nil
}

// SpreadCost is what crossing the spread costs for lots, in the quote
// currency of the instrument (JPY for USDJPY).
func SpreadCost(spreadPips, pipValue, lots float64) float64 {
	return spreadPips * pipValue * lots
}
