package risk

import (
	"fmt"
	"math"
	"strings"

	"github.com/rustyeddy/fxtrigger/market"
)

// Convention selects how a pip is measured. A Sizer applies one convention
// to both the price-to-pips conversion and the pip value, never a mix.
type Convention string

const (
	// ConventionFixed uses 0.01 for JPY-quoted instruments, 0.0001 otherwise.
	ConventionFixed Convention = "fixed"
	// ConventionPoint uses the instrument's native price increment.
	ConventionPoint Convention = "point"
)

const (
	StandardPip = 0.0001
	JPYPip      = 0.01
)

func ParseConvention(s string) (Convention, error) {
	switch Convention(strings.ToLower(strings.TrimSpace(s))) {
	case "", ConventionFixed:
		return ConventionFixed, nil
	case ConventionPoint:
		return ConventionPoint, nil
	default:
		return "", fmt.Errorf("unknown pip convention %q (want fixed|point)", s)
	}
}

// PipSize returns the price distance of one pip for inst.
func (c Convention) PipSize(inst market.Instrument) float64 {
	if c == ConventionPoint && inst.Point > 0 {
		return inst.Point
	}
	if inst.IsJPYQuoted() {
		return JPYPip
	}
	return StandardPip
}

// PipValue is the quote-currency value of a one pip move on one lot.
func (c Convention) PipValue(inst market.Instrument) float64 {
	return c.PipSize(inst) * inst.ContractSize
}

// PriceToPips converts a raw price difference into pips.
func (c Convention) PriceToPips(inst market.Instrument, diff float64) float64 {
	return math.Abs(diff) / c.PipSize(inst)
}
