package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/rustyeddy/fxtrigger/internal/console"
	"github.com/rustyeddy/fxtrigger/metrics"
	"github.com/rustyeddy/fxtrigger/trade"
	"github.com/spf13/cobra"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Enter trades interactively",
	Long: `Prompt for symbol, direction, stop-loss, take-profit and risk percent,
size the position from the live balance, and place a market order.

Settings are re-read before every trade. Blank or invalid risk input uses
default_risk_percent.

Examples:
  fxtrigger trade
  fxtrigger trade --paper --paper-balance 25000
  fxtrigger trade --metrics-addr :9108`,
	Args: cobra.NoArgs,
	RunE: runTrade,
}

func init() {
	rootCmd.AddCommand(tradeCmd)
}

func runTrade(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	b, err := openBroker(ctx, settings)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer b.Close()

	j, err := openJournal(settings.Journal)
	if err != nil {
		return err
	}
	defer j.Close()

	m := metrics.New()
	defer serveMetrics(m)()

	cfg, err := executorConfig(settings)
	if err != nil {
		return err
	}
	ex := trade.NewExecutor(b, cfg,
		trade.WithJournal(j),
		trade.WithMetrics(m),
		trade.WithLogger(logger),
	)

	sess := &console.Session{
		Ask:  console.SurveyAsker{},
		Out:  cmd.OutOrStdout(),
		Exec: ex,
		Prepare: func() (float64, error) {
			s, err := loader.Reload()
			if s == nil {
				return 0, err
			}
			if cfg, cerr := executorConfig(s); cerr == nil {
				ex.SetConfig(cfg)
			}
			return s.DefaultRiskPercent, err
		},
	}
	return sess.Run(ctx)
}
