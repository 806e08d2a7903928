package risk

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLotSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		riskPct  float64
		balance  float64
		stopPips float64
		pipValue float64
		want     float64
	}{
		{"exact", 1.0, 10_000, 50, 10, 0.20},
		{"rounds down", 1.0, 10_000, 30, 10, 0.33},
		{"rounds up", 2.0, 10_000, 30, 10, 0.67},
		{"floor applies", 1.0, 100, 50, 10, 0.01},
		{"rounds to zero then floors", 0.1, 1_000, 200, 10, 0.01},
		{"jpy pip value", 1.0, 10_000, 50, 1000, 0.01},
		{"large account", 0.5, 250_000, 25, 10, 5.00},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := LotSize(tt.riskPct, tt.balance, tt.stopPips, tt.pipValue, MinLot)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestLotSize_InvalidRisk(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                                 string
		riskPct, balance, stopPips, pipValue float64
	}{
		{"zero stop pips", 1, 10_000, 0, 10},
		{"zero balance", 1, 0, 50, 10},
		{"negative risk", -1, 10_000, 50, 10},
		{"zero pip value", 1, 10_000, 50, 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := LotSize(tt.riskPct, tt.balance, tt.stopPips, tt.pipValue, MinLot)
			assert.ErrorIs(t, err, ErrInvalidRisk)
			assert.Zero(t, got)
		})
	}
}

func TestLotSize_DefaultsMinLot(t *testing.T) {
	t.Parallel()

	got, err := LotSize(0.01, 100, 100, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, MinLot, got)
}

func TestLotSize_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("lot is max(round(raw, 2), 0.01)", prop.ForAll(
		func(balance, riskPct, stopPips float64) bool {
			const pipValue = 10.0
			got, err := LotSize(riskPct, balance, stopPips, pipValue, MinLot)
			if err != nil {
				return false
			}
			raw := RiskAmount(riskPct, balance) / (stopPips * pipValue)
			if got < MinLot {
				return false
			}
			if raw < MinLot-0.005 {
				return got == MinLot
			}
			// two-decimal rounding never moves more than half a cent-lot
			return math.Abs(got-raw) <= 0.005+1e-9 || got == MinLot
		},
		gen.Float64Range(100, 1_000_000),
		gen.Float64Range(0.1, 5),
		gen.Float64Range(1, 500),
	))

	properties.TestingRun(t)
}

func TestRewardToRisk(t *testing.T) {
	t.Parallel()

	rr, err := RewardToRisk(1.1000, 1.0950, 1.1100)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, rr, 1e-9)

	rr, err = RewardToRisk(1.1000, 1.1050, 1.0850)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, rr, 1e-9)

	_, err = RewardToRisk(1.1000, 1.1000, 1.1100)
	assert.ErrorIs(t, err, ErrDegenerateStop)
}

func TestSpreadCost(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 4.0, SpreadCost(2, 10, 0.2), 1e-9)
}
