package risk

import "errors"

var (
	// ErrInvalidRisk means no position size can be derived: zero stop
	// distance in pips, or a non-positive balance or risk percent.
	ErrInvalidRisk = errors.New("invalid risk")

	// ErrDegenerateStop means entry and stop-loss coincide in raw price units.
	ErrDegenerateStop = errors.New("degenerate stop: stop-loss equals entry price")

	// ErrSpreadTooWide is the spread guard tripping before submission.
	ErrSpreadTooWide = errors.New("spread too wide")

	// ErrPolicyViolation covers every other pre-trade policy rejection.
	ErrPolicyViolation = errors.New("policy violation")

	ErrInvalidIntent = errors.New("invalid trade intent")
)
