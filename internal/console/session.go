// Package console is the interactive trade-entry loop: it asks for an
// intent, hands it to the executor and prints the result.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rustyeddy/fxtrigger/risk"
	"github.com/rustyeddy/fxtrigger/trade"
)

type Executor interface {
	Execute(ctx context.Context, in risk.TradeIntent) (trade.Report, error)
}

type Session struct {
	Ask  Asker
	Out  io.Writer
	Exec Executor

	// Prepare runs before every trade and returns the default risk
	// percent; it is where settings get re-read.
	Prepare func() (float64, error)
}

// Run loops until the operator declines another trade or interrupts a
// prompt. Trade failures are printed, not returned.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		defRisk := 1.0
		if s.Prepare != nil {
			r, err := s.Prepare()
			if err != nil {
				fmt.Fprintln(s.Out, RenderError(err))
			}
			if r > 0 {
				defRisk = r
			}
		}

		in, err := ReadIntent(s.Ask, defRisk)
		if errors.Is(err, ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}

		rep, err := s.Exec.Execute(ctx, in)
		switch {
		case rep.Outcome.Filled || len(rep.Outcome.Attempts) > 0:
			fmt.Fprintln(s.Out, RenderReport(rep))
		case err != nil:
			fmt.Fprintln(s.Out, RenderError(err))
		}

		again, err := s.Ask.Confirm("Place another trade?", true)
		if errors.Is(err, ErrAborted) || (err == nil && !again) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// ReadIntent asks for one trade. Symbol, direction and prices repeat until
// valid; risk falls back to defRisk.
func ReadIntent(a Asker, defRisk float64) (risk.TradeIntent, error) {
	rawSymbol, err := a.Input("Symbol (e.g. EURUSD):", "Letters only, at least 5 characters.", "", check(NormalizeSymbol))
	if err != nil {
		return risk.TradeIntent{}, err
	}
	rawSide, err := a.Input("Direction (BUY/SELL):", "", "", check(ParseDirection))
	if err != nil {
		return risk.TradeIntent{}, err
	}
	rawSL, err := a.Input("Stop-loss price:", "", "", check(ParsePrice))
	if err != nil {
		return risk.TradeIntent{}, err
	}
	rawTP, err := a.Input("Take-profit price:", "", "", check(ParsePrice))
	if err != nil {
		return risk.TradeIntent{}, err
	}
	rawRisk, err := a.Input("Risk % of balance:", "Blank or invalid uses the default.", formatRisk(defRisk), nil)
	if err != nil {
		return risk.TradeIntent{}, err
	}

	symbol, _ := NormalizeSymbol(rawSymbol)
	side, _ := ParseDirection(rawSide)
	sl, _ := ParsePrice(rawSL)
	tp, _ := ParsePrice(rawTP)

	return risk.NewTradeIntent(symbol, side, sl, tp, ParseRisk(rawRisk, defRisk))
}
