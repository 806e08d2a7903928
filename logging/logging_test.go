package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_ConsoleRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Console: true, NoColor: true}, &buf)

	logger.Info().Msg("hidden")
	symLogger := WithSymbol(logger, "EURUSD")
	symLogger.Warn().Msg("spread wide")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "spread wide")
	assert.Contains(t, out, "symbol=EURUSD")
}

func TestNew_FileWriter(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "fxtrigger.log")
	cfg := DefaultConfig()
	cfg.Console = false
	cfg.File = path

	logger := New(cfg, nil)
	execLogger := WithExecution(logger, "01HX")
	execLogger.Info().Str("fill_mode", "IOC").Msg("order filled")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"exec_id":"01HX"`)
	assert.Contains(t, string(data), `"message":"order filled"`)
}

func TestNew_NoWriters(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Config{Level: "debug"}, &buf)
	logger.Info().Msg("dropped")
	assert.Empty(t, buf.String())
}

func TestLogAttemptAndOutcome(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	LogAttempt(logger, 1, "IOC", 10030, "unsupported", false)
	LogAttempt(logger, 2, "FOK", 10009, "done", true)
	LogOutcome(logger, true, "FOK", "42", "", 2)
	LogOutcome(logger, false, "", "", "all fill modes failed", 3)

	out := buf.String()
	assert.Contains(t, out, `"level":"warn","attempt":1,"fill_mode":"IOC","retcode":10030`)
	assert.Contains(t, out, `"level":"info","attempt":2,"fill_mode":"FOK"`)
	assert.Contains(t, out, `"order_id":"42"`)
	assert.Contains(t, out, `"level":"error","reason":"all fill modes failed","attempts":3`)
}
