// journal/csv.go
package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

var (
	executionHeader = []string{
		"exec_id", "time", "symbol", "side", "entry_price", "stop_loss", "take_profit",
		"lot_size", "stop_pips", "risk_percent", "risk_amount", "reward_to_risk",
		"spread_cost", "result", "fill_mode", "order_id", "reason",
	}
	attemptHeader = []string{"exec_id", "seq", "time", "fill_mode", "retcode", "comment", "accepted"}
)

// CSV appends executions and attempts to two files. Headers are written
// only when a file is empty, so restarts keep extending the same journal.
type CSV struct {
	mu         sync.Mutex
	executions *csv.Writer
	attempts   *csv.Writer
	ef, af     *os.File
}

func NewCSV(executionsPath, attemptsPath string) (*CSV, error) {
	ef, err := openAppend(executionsPath, executionHeader)
	if err != nil {
		return nil, err
	}
	af, err := openAppend(attemptsPath, attemptHeader)
	if err != nil {
		_ = ef.Close()
		return nil, err
	}

	return &CSV{
		executions: csv.NewWriter(ef),
		attempts:   csv.NewWriter(af),
		ef:         ef,
		af:         af,
	}, nil
}

func openAppend(path string, header []string) (*os.File, error) {
	fh, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	st, err := fh.Stat()
	if err != nil {
		_ = fh.Close()
		return nil, err
	}
	if st.Size() == 0 {
		w := csv.NewWriter(fh)
		if err := w.Write(header); err != nil {
			_ = fh.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			_ = fh.Close()
			return nil, err
		}
	}
	return fh, nil
}

func (j *CSV) RecordExecution(e ExecutionRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	err := j.executions.Write([]string{
		e.ExecID,
		e.Time.UTC().Format(time.RFC3339Nano),
		e.Symbol,
		e.Side,
		f(e.EntryPrice),
		f(e.StopLoss),
		f(e.TakeProfit),
		f(e.LotSize),
		f(e.StopPips),
		f(e.RiskPercent),
		f(e.RiskAmount),
		f(e.RewardToRisk),
		f(e.SpreadCost),
		e.Result,
		e.FillMode,
		e.OrderID,
		e.Reason,
	})
	if err != nil {
		return err
	}
	j.executions.Flush()
	return j.executions.Error()
}

func (j *CSV) RecordAttempt(a AttemptRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	err := j.attempts.Write([]string{
		a.ExecID,
		strconv.Itoa(a.Seq),
		a.Time.UTC().Format(time.RFC3339Nano),
		a.FillMode,
		strconv.Itoa(a.Retcode),
		a.Comment,
		strconv.FormatBool(a.Accepted),
	})
	if err != nil {
		return err
	}
	j.attempts.Flush()
	return j.attempts.Error()
}

func (j *CSV) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.executions.Flush()
	if err := j.executions.Error(); err != nil {
		return err
	}
	j.attempts.Flush()
	if err := j.attempts.Error(); err != nil {
		return err
	}

	if err := j.ef.Close(); err != nil {
		return err
	}
	return j.af.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
