package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrument_Quote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		inst  Instrument
		quote string
		jpy   bool
	}{
		{"metadata", Instrument{Name: "EURUSD", QuoteCurrency: "usd"}, "USD", false},
		{"suffix fallback", Instrument{Name: "usdjpy"}, "JPY", true},
		{"metadata wins", Instrument{Name: "WEIRDJPY", QuoteCurrency: "USD"}, "USD", false},
		{"too short", Instrument{Name: "X"}, "", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.quote, tt.inst.Quote())
			assert.Equal(t, tt.jpy, tt.inst.IsJPYQuoted())
		})
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	i, ok := Lookup(" eurusd ")
	require.True(t, ok)
	assert.Equal(t, "EURUSD", i.Name)
	assert.Equal(t, 100_000.0, i.ContractSize)

	j, ok := Lookup("USDJPY")
	require.True(t, ok)
	assert.Equal(t, 0.001, j.Point)

	_, ok = Lookup("NOPE")
	assert.False(t, ok)
}

func TestParseSide(t *testing.T) {
	t.Parallel()

	s, err := ParseSide(" buy ")
	require.NoError(t, err)
	assert.Equal(t, Buy, s)

	s, err = ParseSide("SELL")
	require.NoError(t, err)
	assert.Equal(t, Sell, s)

	_, err = ParseSide("hold")
	assert.Error(t, err)
	assert.False(t, Side("hold").Valid())
}
