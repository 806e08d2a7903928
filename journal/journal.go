// journal/journal.go
package journal

import "time"

// Execution results.
const (
	ResultFilled   = "filled"
	ResultRejected = "rejected"
	ResultBlocked  = "blocked"
	ResultError    = "error"
)

// ExecutionRecord is one resolved trade intent.
type ExecutionRecord struct {
	ExecID       string
	Time         time.Time
	Symbol       string
	Side         string
	EntryPrice   float64
	StopLoss     float64
	TakeProfit   float64
	LotSize      float64
	StopPips     float64
	RiskPercent  float64
	RiskAmount   float64
	RewardToRisk float64
	SpreadCost   float64
	Result       string
	FillMode     string
	OrderID      string
	Reason       string
}

// AttemptRecord is one submission of an execution under a single fill mode.
type AttemptRecord struct {
	ExecID   string
	Seq      int
	Time     time.Time
	FillMode string
	Retcode  int
	Comment  string
	Accepted bool
}

type Journal interface {
	RecordExecution(ExecutionRecord) error
	RecordAttempt(AttemptRecord) error
	Close() error
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordExecution(ExecutionRecord) error { return nil }
func (Nop) RecordAttempt(AttemptRecord) error     { return nil }
func (Nop) Close() error                          { return nil }
