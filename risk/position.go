package risk

import (
	"github.com/rustyeddy/fxtrigger/market"
)

// SizedOrder is an intent resolved against a live quote and balance.
type SizedOrder struct {
	Symbol     string
	Side       market.Side
	EntryPrice float64
	StopLoss   float64
	TakeProfit float64

	LotSize      float64
	StopPips     float64
	PipValue     float64
	RiskPercent  float64
	RiskAmount   float64
	Balance      float64
	RewardToRisk float64

	SpreadPips float64
	SpreadCost float64
}

// ActualRisk is the money lost at the stop with the final lot size, which
// exceeds RiskAmount when the minimum lot floor applies.
func (s SizedOrder) ActualRisk() float64 {
	return s.LotSize * s.StopPips * s.PipValue
}

// Sizer computes position sizes under a single pip convention.
type Sizer struct {
	Convention Convention
	MinLot     float64
}

func NewSizer(c Convention) Sizer {
	if c == "" {
		c = ConventionFixed
	}
	return Sizer{Convention: c, MinLot: MinLot}
}

// Size is a pure function of its inputs; the caller fetches tick and
// balance fresh immediately before calling it.
func (s Sizer) Size(in TradeIntent, inst market.Instrument, tick market.Tick, balance float64) (SizedOrder, error) {
	conv := s.Convention
	if conv == "" {
		conv = ConventionFixed
	}

	entry := tick.EntryFor(in.Side)
	pipValue := conv.PipValue(inst)

	// Tenth-of-a-pip resolution, so float noise cannot pass for a distance.
	stopPips := round(conv.PriceToPips(inst, entry-in.StopLoss), 1)

	lots, err := LotSize(in.RiskPercent, balance, stopPips, pipValue, s.MinLot)
	if err != nil {
		return SizedOrder{}, err
	}

	rr, err := RewardToRisk(entry, in.StopLoss, in.TakeProfit)
	if err != nil {
		return SizedOrder{}, err
	}

	spreadPips := conv.PriceToPips(inst, tick.Spread())

	return SizedOrder{
		Symbol:       in.Symbol,
		Side:         in.Side,
		EntryPrice:   entry,
		StopLoss:     in.StopLoss,
		TakeProfit:   in.TakeProfit,
		LotSize:      lots,
		StopPips:     stopPips,
		PipValue:     pipValue,
		RiskPercent:  in.RiskPercent,
		RiskAmount:   RiskAmount(in.RiskPercent, balance),
		Balance:      balance,
		RewardToRisk: rr,
		SpreadPips:   spreadPips,
		SpreadCost:   SpreadCost(spreadPips, pipValue, lots),
	}, nil
}
