package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/fxtrigger/config"
	"github.com/rustyeddy/fxtrigger/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fxtrigger",
	Short: "Manual FX trade entry with risk-based position sizing",
	Long: `fxtrigger places market orders sized from a percentage of account balance.

It provides:
  - Interactive trade entry (symbol, direction, stop-loss, take-profit, risk %)
  - Lot sizing from stop distance and pip value
  - A spread guard that blocks orders when the spread costs too much
  - Fill-mode fallback (IOC, then FOK, then RETURN) on submission
  - An execution journal in SQLite or CSV`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var (
	settingsPath string
	envFile      string
	logLevel     string
	metricsAddr  string
	paperMode    bool
	paperBalance float64

	loader   *config.Loader
	settings *config.Settings
	logger   zerolog.Logger
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&settingsPath, "settings", "s", "settings.yaml", "settings file (YAML or JSON); defaults apply when missing")
	pf.StringVar(&envFile, "env-file", ".env", "dotenv file holding MT5_LOGIN, MT5_PASSWORD and MT5_SERVER")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (overrides settings)")
	pf.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9108")
	pf.BoolVar(&paperMode, "paper", false, "use the in-memory paper broker instead of the terminal bridge")
	pf.Float64Var(&paperBalance, "paper-balance", 10_000, "paper account balance")
}

func setup(cmd *cobra.Command, args []string) error {
	s, err := config.LoadFromFile(settingsPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s = config.Default()
	case err != nil:
		return fmt.Errorf("load settings: %w", err)
	}
	settings = s

	lc := s.Log
	if logLevel != "" {
		lc.Level = logLevel
	}
	logger = logging.New(lc, cmd.ErrOrStderr())
	loader = config.NewLoader(settingsPath, logger)
	return nil
}
