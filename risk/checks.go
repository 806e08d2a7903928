package risk

import (
	"fmt"
	"strings"
)

type Violation struct {
	Code string
	Msg  string
}

type Decision struct {
	Allowed    bool
	Violations []Violation
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

// Has reports whether a violation with code was recorded.
func (d Decision) Has(code string) bool {
	for _, v := range d.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

// Err folds the decision into an error. A tripped spread guard wraps
// ErrSpreadTooWide; anything else wraps ErrPolicyViolation.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	msgs := make([]string, 0, len(d.Violations))
	for _, v := range d.Violations {
		msgs = append(msgs, v.Msg)
	}
	base := ErrPolicyViolation
	if d.Has(CodeSpreadTooWide) {
		base = ErrSpreadTooWide
	}
	return fmt.Errorf("%w: %s", base, strings.Join(msgs, "; "))
}

const (
	CodeSpreadTooWide = "SPREAD_TOO_WIDE"
	CodeRiskTooHigh   = "RISK_TOO_HIGH"
	CodeRRTooLow      = "RR_TOO_LOW"
)

// Policy holds the pre-submission checks. Zero values disable a check.
type Policy struct {
	SpreadGuard     bool
	MaxSpreadCost   float64 // quote currency, same units as SpreadCost
	MaxRiskPercent  float64 // 2.0 == 2%
	MinRewardToRisk float64
}

// Check must run strictly before any order is submitted.
func (p Policy) Check(s SizedOrder) Decision {
	d := Decision{Allowed: true}

	if p.SpreadGuard && s.SpreadCost > p.MaxSpreadCost {
		d.add(CodeSpreadTooWide,
			fmt.Sprintf("spread cost %.2f exceeds max %.2f (%.1f pips on %.2f lots)",
				s.SpreadCost, p.MaxSpreadCost, s.SpreadPips, s.LotSize))
	}

	if p.MaxRiskPercent > 0 && s.Balance > 0 {
		pct := 100 * s.ActualRisk() / s.Balance
		if pct > p.MaxRiskPercent {
			d.add(CodeRiskTooHigh,
				fmt.Sprintf("risk at stop %.2f%% exceeds max %.2f%%", pct, p.MaxRiskPercent))
		}
	}

	if p.MinRewardToRisk > 0 && s.RewardToRisk < p.MinRewardToRisk {
		d.add(CodeRRTooLow,
			fmt.Sprintf("RR %.2f below minimum %.2f", s.RewardToRisk, p.MinRewardToRisk))
	}

	return d
}
