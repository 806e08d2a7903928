package trade

import (
	"errors"
	"time"

	"github.com/rustyeddy/fxtrigger/broker"
	"github.com/rustyeddy/fxtrigger/risk"
)

// ErrAllFillModesFailed means every configured fill mode was rejected.
// The order was not placed and is not retried.
var ErrAllFillModesFailed = errors.New("all fill modes failed")

// Attempt is one submission under a single fill mode.
type Attempt struct {
	FillMode broker.FillMode
	Retcode  int
	Comment  string
	Accepted bool
}

// Outcome is Filled{FillMode, OrderID} or Rejected{Reason}.
type Outcome struct {
	Filled   bool
	FillMode broker.FillMode
	OrderID  string
	Price    float64
	Reason   string
	Attempts []Attempt
}

func (o Outcome) Err() error {
	if o.Filled {
		return nil
	}
	return ErrAllFillModesFailed
}

// Report describes one Execute call, however far it got.
type Report struct {
	ExecID   string
	Intent   risk.TradeIntent
	Order    risk.SizedOrder
	Decision risk.Decision
	Outcome  Outcome
	Elapsed  time.Duration

	// AccountPipValue is Order.PipValue in account currency, or zero when
	// no direct conversion exists. Informational only; sizing uses
	// Order.PipValue.
	AccountPipValue float64
	AccountCurrency string
}
