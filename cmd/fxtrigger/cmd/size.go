package cmd

import (
	"fmt"

	"github.com/rustyeddy/fxtrigger/internal/console"
	"github.com/rustyeddy/fxtrigger/market"
	"github.com/rustyeddy/fxtrigger/risk"
	"github.com/rustyeddy/fxtrigger/trade"
	"github.com/spf13/cobra"
)

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Preview position size for a trade without placing it",
	Long: `Size a trade against the current quote and balance, and show whether the
spread guard and other checks would allow it. No order is sent.

Example:
  fxtrigger size --symbol EURUSD --side buy --sl 1.0950 --tp 1.1100 --risk 1`,
	Args: cobra.NoArgs,
	RunE: runSize,
}

var (
	sizeSymbol string
	sizeSide   string
	sizeSL     float64
	sizeTP     float64
	sizeRisk   float64
)

func init() {
	rootCmd.AddCommand(sizeCmd)

	sizeCmd.Flags().StringVar(&sizeSymbol, "symbol", "", "symbol, e.g. EURUSD (required)")
	sizeCmd.Flags().StringVar(&sizeSide, "side", "", "BUY or SELL (required)")
	sizeCmd.Flags().Float64Var(&sizeSL, "sl", 0, "stop-loss price (required)")
	sizeCmd.Flags().Float64Var(&sizeTP, "tp", 0, "take-profit price (required)")
	sizeCmd.Flags().Float64Var(&sizeRisk, "risk", 0, "risk percent of balance (default from settings)")

	sizeCmd.MarkFlagRequired("symbol")
	sizeCmd.MarkFlagRequired("side")
	sizeCmd.MarkFlagRequired("sl")
	sizeCmd.MarkFlagRequired("tp")
}

func runSize(cmd *cobra.Command, args []string) error {
	symbol, err := console.NormalizeSymbol(sizeSymbol)
	if err != nil {
		return err
	}
	side, err := market.ParseSide(sizeSide)
	if err != nil {
		return err
	}
	riskPct := sizeRisk
	if riskPct <= 0 {
		riskPct = settings.DefaultRiskPercent
	}
	in, err := risk.NewTradeIntent(symbol, side, sizeSL, sizeTP, riskPct)
	if err != nil {
		return err
	}

	b, err := openBroker(cmd.Context(), settings)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer b.Close()

	cfg, err := executorConfig(settings)
	if err != nil {
		return err
	}
	rep, err := trade.NewExecutor(b, cfg, trade.WithLogger(logger)).Preview(cmd.Context(), in)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), console.RenderPreview(rep))
	return nil
}
