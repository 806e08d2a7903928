package journal

import (
	"database/sql"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("journal: record not found")

const executionColumns = `exec_id, time, symbol, side, entry_price, stop_loss, take_profit, lot_size,
	stop_pips, risk_percent, risk_amount, reward_to_risk, spread_cost, result, fill_mode, order_id, reason`

type scanner interface {
	Scan(dest ...any) error
}

func scanExecution(s scanner) (ExecutionRecord, error) {
	var rec ExecutionRecord
	err := s.Scan(
		&rec.ExecID,
		&rec.Time,
		&rec.Symbol,
		&rec.Side,
		&rec.EntryPrice,
		&rec.StopLoss,
		&rec.TakeProfit,
		&rec.LotSize,
		&rec.StopPips,
		&rec.RiskPercent,
		&rec.RiskAmount,
		&rec.RewardToRisk,
		&rec.SpreadCost,
		&rec.Result,
		&rec.FillMode,
		&rec.OrderID,
		&rec.Reason,
	)
	return rec, err
}

// GetExecution returns a single execution by ID.
func (j *SQLite) GetExecution(execID string) (ExecutionRecord, error) {
	row := j.db.QueryRow(`SELECT `+executionColumns+` FROM executions WHERE exec_id = ?`, execID)
	rec, err := scanExecution(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ExecutionRecord{}, fmt.Errorf("execution %q: %w", execID, ErrNotFound)
		}
		return ExecutionRecord{}, err
	}
	return rec, nil
}

// ListExecutions returns the most recent executions, newest first. A
// non-positive limit returns all of them.
func (j *SQLite) ListExecutions(limit int) ([]ExecutionRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.db.Query(`
		SELECT `+executionColumns+`
		FROM executions
		ORDER BY time DESC, exec_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExecutionRecord
	for rows.Next() {
		rec, err := scanExecution(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListAttempts returns the attempts of one execution in submission order.
func (j *SQLite) ListAttempts(execID string) ([]AttemptRecord, error) {
	rows, err := j.db.Query(`
		SELECT exec_id, seq, time, fill_mode, retcode, comment, accepted
		FROM attempts
		WHERE exec_id = ?
		ORDER BY seq ASC`, execID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		var a AttemptRecord
		if err := rows.Scan(&a.ExecID, &a.Seq, &a.Time, &a.FillMode, &a.Retcode, &a.Comment, &a.Accepted); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
