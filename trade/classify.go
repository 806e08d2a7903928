package trade

import (
	"context"
	"errors"
	"net"

	"github.com/rustyeddy/fxtrigger/broker"
	"github.com/rustyeddy/fxtrigger/risk"
)

type Class string

const (
	ClassNone       Class = ""
	ClassConnection Class = "connection"
	ClassValidation Class = "validation"
	ClassPolicy     Class = "policy"
	ClassExhausted  Class = "exhausted"
	ClassUnknown    Class = "unknown"
)

// Classify buckets an Execute error for operator reporting.
//
// connection: the session, symbol, quotes or account could not be reached.
// validation: the intent cannot be traded as entered.
// policy: a pre-submission check blocked the order.
// exhausted: every fill mode was rejected.
func Classify(err error) Class {
	if err == nil {
		return ClassNone
	}

	switch {
	case errors.Is(err, ErrAllFillModesFailed):
		return ClassExhausted
	case errors.Is(err, risk.ErrSpreadTooWide),
		errors.Is(err, risk.ErrPolicyViolation):
		return ClassPolicy
	case errors.Is(err, risk.ErrInvalidIntent),
		errors.Is(err, risk.ErrInvalidRisk),
		errors.Is(err, risk.ErrDegenerateStop):
		return ClassValidation
	case errors.Is(err, broker.ErrNotConnected),
		errors.Is(err, broker.ErrSymbolNotFound),
		errors.Is(err, broker.ErrNoQuote),
		errors.Is(err, broker.ErrAccountUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return ClassConnection
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return ClassConnection
	}
	return ClassUnknown
}
