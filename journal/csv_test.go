package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	fh, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fh.Close() })

	rows, err := csv.NewReader(fh).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVHeaders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ePath := filepath.Join(dir, "executions.csv")
	aPath := filepath.Join(dir, "attempts.csv")

	j, err := NewCSV(ePath, aPath)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	assert.Equal(t, [][]string{executionHeader}, readCSV(t, ePath))
	assert.Equal(t, [][]string{attemptHeader}, readCSV(t, aPath))
}

func TestCSVRecordAndReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ePath := filepath.Join(dir, "executions.csv")
	aPath := filepath.Join(dir, "attempts.csv")
	ts := time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC)

	j, err := NewCSV(ePath, aPath)
	require.NoError(t, err)
	require.NoError(t, j.RecordExecution(ExecutionRecord{
		ExecID:       "E1",
		Time:         ts,
		Symbol:       "EURUSD",
		Side:         "BUY",
		EntryPrice:   1.1,
		StopLoss:     1.095,
		TakeProfit:   1.11,
		LotSize:      0.2,
		StopPips:     50,
		RiskPercent:  1,
		RiskAmount:   100,
		RewardToRisk: 2,
		SpreadCost:   4,
		Result:       ResultFilled,
		FillMode:     "FOK",
		OrderID:      "42",
	}))
	require.NoError(t, j.RecordAttempt(AttemptRecord{ExecID: "E1", Seq: 1, Time: ts, FillMode: "IOC", Retcode: 10030, Comment: "unsupported filling"}))
	require.NoError(t, j.RecordAttempt(AttemptRecord{ExecID: "E1", Seq: 2, Time: ts, FillMode: "FOK", Retcode: 10009, Accepted: true}))
	require.NoError(t, j.Close())

	// a second session appends without repeating the header
	j, err = NewCSV(ePath, aPath)
	require.NoError(t, err)
	require.NoError(t, j.RecordExecution(ExecutionRecord{ExecID: "E2", Time: ts, Symbol: "USDJPY", Side: "SELL", Result: ResultBlocked, Reason: "spread too wide"}))
	require.NoError(t, j.Close())

	execs := readCSV(t, ePath)
	require.Len(t, execs, 3)
	assert.Equal(t, []string{
		"E1", "2024-03-04T10:30:00Z", "EURUSD", "BUY", "1.1", "1.095", "1.11",
		"0.2", "50", "1", "100", "2", "4", "filled", "FOK", "42", "",
	}, execs[1])
	assert.Equal(t, "E2", execs[2][0])
	assert.Equal(t, "blocked", execs[2][13])

	attempts := readCSV(t, aPath)
	require.Len(t, attempts, 3)
	assert.Equal(t, []string{"E1", "1", "2024-03-04T10:30:00Z", "IOC", "10030", "unsupported filling", "false"}, attempts[1])
	assert.Equal(t, "true", attempts[2][6])
}

func TestNop(t *testing.T) {
	t.Parallel()

	var j Journal = Nop{}
	assert.NoError(t, j.RecordExecution(ExecutionRecord{}))
	assert.NoError(t, j.RecordAttempt(AttemptRecord{}))
	assert.NoError(t, j.Close())
}
