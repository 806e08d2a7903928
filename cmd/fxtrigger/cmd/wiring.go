package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rustyeddy/fxtrigger/broker"
	"github.com/rustyeddy/fxtrigger/broker/bridge"
	"github.com/rustyeddy/fxtrigger/broker/sim"
	"github.com/rustyeddy/fxtrigger/config"
	"github.com/rustyeddy/fxtrigger/journal"
	"github.com/rustyeddy/fxtrigger/market"
	"github.com/rustyeddy/fxtrigger/metrics"
	"github.com/rustyeddy/fxtrigger/trade"
)

// openBroker establishes the single session used for the whole run.
func openBroker(ctx context.Context, s *config.Settings) (broker.Broker, error) {
	if paperMode {
		logger.Info().Float64("balance", paperBalance).Msg("paper trading")
		return newPaperBroker(paperBalance), nil
	}

	creds, err := config.LoadCredentials(envFile)
	if err != nil {
		return nil, err
	}
	timeout, err := s.BridgeTimeout()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	c := bridge.New(s.Bridge.URL, timeout)
	if err := c.Login(ctx, bridge.Credentials{Login: creds.Login, Password: creds.Password, Server: creds.Server}); err != nil {
		return nil, err
	}
	if err := c.Ping(ctx); err != nil {
		return nil, fmt.Errorf("bridge %s: %w", s.Bridge.URL, err)
	}
	logger.Info().
		Int64("login", creds.Login).
		Str("server", creds.Server).
		Dur("took", time.Since(start)).
		Msg("terminal connected")
	return c, nil
}

// paperQuotes seeds the paper broker with plausible two-sided prices.
var paperQuotes = map[string][2]float64{
	"EURUSD": {1.08500, 1.08512},
	"GBPUSD": {1.27100, 1.27115},
	"AUDUSD": {0.65800, 0.65812},
	"USDCHF": {0.88200, 0.88216},
	"USDCAD": {1.36400, 1.36418},
	"USDJPY": {151.200, 151.214},
	"EURJPY": {164.100, 164.121},
	"GBPJPY": {192.300, 192.328},
	"XAUUSD": {2350.10, 2350.45},
}

func newPaperBroker(balance float64) *sim.Engine {
	eng := sim.NewEngine(broker.Account{
		Login:    "PAPER",
		Server:   "paper",
		Currency: "USD",
		Balance:  balance,
		Equity:   balance,
	})
	now := time.Now()
	for sym, q := range paperQuotes {
		eng.Prices().Set(market.Tick{Instrument: sym, Time: now, Bid: q[0], Ask: q[1]})
	}
	return eng
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "sqlite":
		j, err := journal.NewSQLite(jc.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open journal db: %w", err)
		}
		return j, nil
	case "csv":
		return journal.NewCSV(jc.ExecutionsFile, jc.AttemptsFile)
	default:
		return journal.Nop{}, nil
	}
}

func executorConfig(s *config.Settings) (trade.Config, error) {
	sizer, err := s.Sizer()
	if err != nil {
		return trade.Config{}, err
	}
	modes, err := s.FillModeList()
	if err != nil {
		return trade.Config{}, err
	}
	return trade.Config{
		Sizer:     sizer,
		Policy:    s.Policy(),
		FillModes: modes,
		Comment:   s.Comment,
		Deviation: s.Deviation,
	}, nil
}

// serveMetrics starts the /metrics listener when an address is set. The
// returned func stops it.
func serveMetrics(m *metrics.Metrics) func() {
	if metricsAddr == "" {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Str("addr", metricsAddr).Msg("metrics listener")
		}
	}()
	logger.Info().Str("addr", metricsAddr).Msg("serving metrics")

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
