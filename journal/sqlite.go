package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordExecution(e ExecutionRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO executions
		(exec_id, time, symbol, side, entry_price, stop_loss, take_profit, lot_size, stop_pips,
		 risk_percent, risk_amount, reward_to_risk, spread_cost, result, fill_mode, order_id, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ExecID, e.Time.UTC(), e.Symbol, e.Side, e.EntryPrice, e.StopLoss, e.TakeProfit,
		e.LotSize, e.StopPips, e.RiskPercent, e.RiskAmount, e.RewardToRisk, e.SpreadCost,
		e.Result, e.FillMode, e.OrderID, e.Reason,
	)
	return err
}

func (j *SQLite) RecordAttempt(a AttemptRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO attempts
		(exec_id, seq, time, fill_mode, retcode, comment, accepted)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ExecID, a.Seq, a.Time.UTC(), a.FillMode, a.Retcode, a.Comment, a.Accepted,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
