package market

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNoConversion = errors.New("no conversion rate")

// QuoteToAccountRate converts one unit of the instrument's quote currency
// into the account currency using the instrument's own tick. Only direct
// pairs are handled: quote == account (EURUSD for USD) gives 1 and
// base == account (USDJPY for USD) gives 1/mid. Crosses need a second quote
// and return ErrNoConversion.
func QuoteToAccountRate(inst Instrument, accountCurrency string, t Tick) (float64, error) {
	acct := strings.ToUpper(strings.TrimSpace(accountCurrency))
	quote := inst.Quote()

	switch {
	case acct == "":
		return 0, fmt.Errorf("%w: account currency unknown", ErrNoConversion)
	case quote == acct:
		return 1.0, nil
	case strings.ToUpper(inst.BaseCurrency) == acct:
		mid := t.Mid()
		if mid <= 0 {
			return 0, fmt.Errorf("%w: no %s quote", ErrNoConversion, inst.Name)
		}
		return 1.0 / mid, nil
	}
	return 0, fmt.Errorf("%w: %s to %s needs a cross rate", ErrNoConversion, quote, acct)
}
