// market/instruments.go
package market

import "strings"

// Instrument is the broker-side metadata needed to size and submit an order.
type Instrument struct {
	Name          string
	BaseCurrency  string
	QuoteCurrency string
	Digits        int
	Point         float64 // smallest price increment quoted by the broker
	ContractSize  float64 // units of base per 1.00 lot
	VolumeMin     float64
	VolumeStep    float64
	VolumeMax     float64
}

// Quote returns the quote currency, falling back to the symbol suffix
// ("USDJPY" -> "JPY") when the broker did not report one.
func (i Instrument) Quote() string {
	if i.QuoteCurrency != "" {
		return strings.ToUpper(i.QuoteCurrency)
	}
	name := strings.ToUpper(i.Name)
	if len(name) < 3 {
		return ""
	}
	return name[len(name)-3:]
}

// IsJPYQuoted reports whether prices are denominated in yen.
func (i Instrument) IsJPYQuoted() bool {
	return i.Quote() == "JPY"
}

func fx5(name, base, quote string) Instrument {
	return Instrument{
		Name:          name,
		BaseCurrency:  base,
		QuoteCurrency: quote,
		Digits:        5,
		Point:         0.00001,
		ContractSize:  100_000,
		VolumeMin:     0.01,
		VolumeStep:    0.01,
		VolumeMax:     100,
	}
}

func fx3(name, base, quote string) Instrument {
	i := fx5(name, base, quote)
	i.Digits = 3
	i.Point = 0.001
	return i
}

// Instruments is the default metadata table used by the paper broker and
// offline size previews. Live sessions read metadata from the terminal.
var Instruments = map[string]Instrument{
	"EURUSD": fx5("EURUSD", "EUR", "USD"),
	"GBPUSD": fx5("GBPUSD", "GBP", "USD"),
	"AUDUSD": fx5("AUDUSD", "AUD", "USD"),
	"USDCHF": fx5("USDCHF", "USD", "CHF"),
	"USDCAD": fx5("USDCAD", "USD", "CAD"),
	"USDJPY": fx3("USDJPY", "USD", "JPY"),
	"EURJPY": fx3("EURJPY", "EUR", "JPY"),
	"GBPJPY": fx3("GBPJPY", "GBP", "JPY"),
	"XAUUSD": {
		Name:          "XAUUSD",
		BaseCurrency:  "XAU",
		QuoteCurrency: "USD",
		Digits:        2,
		Point:         0.01,
		ContractSize:  100,
		VolumeMin:     0.01,
		VolumeStep:    0.01,
		VolumeMax:     50,
	},
}

// Lookup finds default metadata for symbol, case-insensitively.
func Lookup(symbol string) (Instrument, bool) {
	i, ok := Instruments[strings.ToUpper(strings.TrimSpace(symbol))]
	return i, ok
}
