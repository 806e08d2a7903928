// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS executions (
	exec_id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	entry_price REAL NOT NULL,
	stop_loss REAL NOT NULL,
	take_profit REAL NOT NULL,
	lot_size REAL NOT NULL,
	stop_pips REAL NOT NULL,
	risk_percent REAL NOT NULL,
	risk_amount REAL NOT NULL,
	reward_to_risk REAL NOT NULL,
	spread_cost REAL NOT NULL,
	result TEXT NOT NULL,
	fill_mode TEXT NOT NULL,
	order_id TEXT NOT NULL,
	reason TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS attempts (
	exec_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	time DATETIME NOT NULL,
	fill_mode TEXT NOT NULL,
	retcode INTEGER NOT NULL,
	comment TEXT NOT NULL,
	accepted INTEGER NOT NULL,
	PRIMARY KEY (exec_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_executions_time ON executions(time);
`
