package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxtrigger/market"
)

func sized() SizedOrder {
	return SizedOrder{
		Symbol:       "EURUSD",
		LotSize:      0.20,
		StopPips:     50,
		PipValue:     10,
		Balance:      10_000,
		RewardToRisk: 2,
		SpreadPips:   2,
		SpreadCost:   4,
	}
}

func TestPolicyCheck_SpreadGuard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		policy  Policy
		allowed bool
	}{
		{"disabled", Policy{SpreadGuard: false, MaxSpreadCost: 1}, true},
		{"under max", Policy{SpreadGuard: true, MaxSpreadCost: 5}, true},
		{"equal max", Policy{SpreadGuard: true, MaxSpreadCost: 4}, true},
		{"over max", Policy{SpreadGuard: true, MaxSpreadCost: 3.99}, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := tt.policy.Check(sized())
			assert.Equal(t, tt.allowed, d.Allowed)
			if tt.allowed {
				assert.NoError(t, d.Err())
				return
			}
			assert.True(t, d.Has(CodeSpreadTooWide))
			assert.ErrorIs(t, d.Err(), ErrSpreadTooWide)
		})
	}
}

func TestPolicyCheck_RiskAndRR(t *testing.T) {
	t.Parallel()

	s := sized()
	s.LotSize = 0.5 // 0.5 * 50 * 10 = 250 => 2.5%

	d := Policy{MaxRiskPercent: 2, MinRewardToRisk: 3}.Check(s)
	assert.False(t, d.Allowed)
	assert.True(t, d.Has(CodeRiskTooHigh))
	assert.True(t, d.Has(CodeRRTooLow))
	assert.False(t, d.Has(CodeSpreadTooWide))
	assert.ErrorIs(t, d.Err(), ErrPolicyViolation)
	assert.NotErrorIs(t, d.Err(), ErrSpreadTooWide)
}

func TestActualRisk(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 100.0, sized().ActualRisk(), 1e-9)
}

func TestPolicyCheck_SpreadCostInQuoteCurrency(t *testing.T) {
	t.Parallel()

	jpy, ok := market.Lookup("USDJPY")
	require.True(t, ok)
	eur, ok := market.Lookup("EURUSD")
	require.True(t, ok)

	// 1.5 pip spread at the minimum lot.
	jpyCost := SpreadCost(1.5, ConventionFixed.PipValue(jpy), MinLot)
	eurCost := SpreadCost(1.5, ConventionFixed.PipValue(eur), MinLot)
	assert.InDelta(t, 15.0, jpyCost, 1e-9)
	assert.InDelta(t, 0.15, eurCost, 1e-9)

	p := Policy{SpreadGuard: true, MaxSpreadCost: 10}
	assert.False(t, p.Check(SizedOrder{Symbol: "USDJPY", SpreadPips: 1.5, SpreadCost: jpyCost, LotSize: MinLot}).Allowed)
	assert.True(t, p.Check(SizedOrder{Symbol: "EURUSD", SpreadPips: 1.5, SpreadCost: eurCost, LotSize: MinLot}).Allowed)
}
