// Package trade turns a trade intent into a market order: it sizes the
// position against a fresh quote and balance, applies the pre-submission
// policy, then walks the fill modes until one is accepted.
package trade

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/fxtrigger/broker"
	"github.com/rustyeddy/fxtrigger/journal"
	"github.com/rustyeddy/fxtrigger/logging"
	"github.com/rustyeddy/fxtrigger/market"
	"github.com/rustyeddy/fxtrigger/metrics"
	"github.com/rustyeddy/fxtrigger/pkg/id"
	"github.com/rustyeddy/fxtrigger/risk"
)

const DefaultComment = "FXConsoleTrigger"

// Config holds the per-trade knobs. It is swapped with SetConfig when the
// settings file is re-read.
type Config struct {
	Sizer     risk.Sizer
	Policy    risk.Policy
	FillModes []broker.FillMode
	Comment   string
	Deviation int
}

func DefaultConfig() Config {
	return Config{
		Sizer:     risk.NewSizer(risk.ConventionFixed),
		FillModes: broker.DefaultFillModes,
		Comment:   DefaultComment,
	}
}

// Executor resolves one intent at a time against an explicitly supplied
// broker handle.
type Executor struct {
	mu      sync.Mutex
	broker  broker.Broker
	cfg     Config
	journal journal.Journal
	metrics *metrics.Metrics
	log     zerolog.Logger
	now     func() time.Time
}

type Option func(*Executor)

func WithJournal(j journal.Journal) Option {
	return func(e *Executor) {
		if j != nil {
			e.journal = j
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Executor) { e.metrics = m }
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *Executor) { e.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(e *Executor) { e.now = now }
}

func NewExecutor(b broker.Broker, cfg Config, opts ...Option) *Executor {
	e := &Executor{
		broker:  b,
		journal: journal.Nop{},
		log:     zerolog.Nop(),
		now:     time.Now,
	}
	e.cfg = normalize(cfg)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func normalize(cfg Config) Config {
	if len(cfg.FillModes) == 0 {
		cfg.FillModes = broker.DefaultFillModes
	}
	if cfg.Comment == "" {
		cfg.Comment = DefaultComment
	}
	if cfg.Sizer.Convention == "" {
		cfg.Sizer.Convention = risk.ConventionFixed
	}
	if cfg.Sizer.MinLot <= 0 {
		cfg.Sizer.MinLot = risk.MinLot
	}
	return cfg
}

// SetConfig replaces the per-trade configuration. It waits for any
// in-flight Execute to finish.
func (e *Executor) SetConfig(cfg Config) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg = normalize(cfg)
}

func (e *Executor) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Execute resolves a single intent. Calls are serialized: one intent is
// fully submitted or rejected before the next starts. The returned Report
// is populated as far as the flow got, even on error.
func (e *Executor) Execute(ctx context.Context, in risk.TradeIntent) (Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := e.now()
	rep := Report{ExecID: id.New(), Intent: in}
	log := logging.WithExecution(logging.WithSymbol(e.log, in.Symbol), rep.ExecID)

	err := e.executeLocked(ctx, &rep, log)
	rep.Elapsed = e.now().Sub(start)

	result := resultOf(rep, err)
	e.metrics.Execution(result)
	e.recordExecution(rep, result, err, log)
	if err != nil {
		log.Error().Err(err).Str("class", string(Classify(err))).Msg("trade not executed")
	}
	return rep, err
}

// Preview sizes an intent against live data and applies the policy, but
// submits nothing. Policy violations are reported in Report.Decision, not
// as an error.
func (e *Executor) Preview(ctx context.Context, in risk.TradeIntent) (Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rep := Report{Intent: in}
	err := e.prepareLocked(ctx, &rep, logging.WithSymbol(e.log, in.Symbol))
	return rep, err
}

func (e *Executor) executeLocked(ctx context.Context, rep *Report, log zerolog.Logger) error {
	if err := e.prepareLocked(ctx, rep, log); err != nil {
		return err
	}
	e.metrics.LotSize(rep.Order.LotSize)
	if err := rep.Decision.Err(); err != nil {
		return err
	}

	out, err := e.submitLocked(ctx, rep.ExecID, rep.Order, log)
	rep.Outcome = out
	if err != nil {
		return err
	}
	return out.Err()
}

// prepareLocked fetches symbol, quote and balance fresh, sizes the order
// and evaluates the policy.
func (e *Executor) prepareLocked(ctx context.Context, rep *Report, log zerolog.Logger) error {
	in := rep.Intent
	if err := in.Validate(); err != nil {
		return err
	}
	if !e.broker.IsConnected() {
		return broker.ErrNotConnected
	}
	if err := e.broker.SelectSymbol(ctx, in.Symbol); err != nil {
		return fmt.Errorf("select %s: %w", in.Symbol, err)
	}
	inst, err := e.broker.GetInstrument(ctx, in.Symbol)
	if err != nil {
		return fmt.Errorf("instrument %s: %w", in.Symbol, err)
	}
	tick, err := e.broker.GetTick(ctx, in.Symbol)
	if err != nil {
		return fmt.Errorf("tick %s: %w", in.Symbol, err)
	}
	acct, err := e.broker.GetAccount(ctx)
	if err != nil {
		return fmt.Errorf("account: %w", err)
	}

	sized, err := e.cfg.Sizer.Size(in, inst, tick, acct.Balance)
	if err != nil {
		return fmt.Errorf("size %s: %w", in.Symbol, err)
	}
	rep.Order = sized
	rep.AccountCurrency = acct.Currency
	if rate, err := market.QuoteToAccountRate(inst, acct.Currency, tick); err == nil {
		rep.AccountPipValue = sized.PipValue * rate
	} else {
		log.Debug().Err(err).Msg("pip value not converted")
	}

	log.Info().
		Str("side", string(sized.Side)).
		Float64("entry", sized.EntryPrice).
		Float64("stop_pips", sized.StopPips).
		Float64("lots", sized.LotSize).
		Float64("spread_cost", sized.SpreadCost).
		Msg("order sized")

	rep.Decision = e.cfg.Policy.Check(sized)
	return nil
}

// Submit places a sized order, walking the configured fill modes in
// priority order. It stops at the first accepted mode. A rejection moves
// on to the next mode with the request otherwise unchanged. A gateway
// error aborts immediately: the order state is unknown and resubmitting
// could fill twice.
func (e *Executor) Submit(ctx context.Context, sized risk.SizedOrder) (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	execID := id.New()
	return e.submitLocked(ctx, execID, sized, logging.WithExecution(logging.WithSymbol(e.log, sized.Symbol), execID))
}

func (e *Executor) submitLocked(ctx context.Context, execID string, sized risk.SizedOrder, log zerolog.Logger) (Outcome, error) {
	req := broker.MarketOrderRequest{
		Symbol:      sized.Symbol,
		Side:        sized.Side,
		Volume:      sized.LotSize,
		Price:       sized.EntryPrice,
		StopLoss:    sized.StopLoss,
		TakeProfit:  sized.TakeProfit,
		Deviation:   e.cfg.Deviation,
		Comment:     e.cfg.Comment,
		TimeInForce: broker.TimeGTC,
	}

	var out Outcome
	for i, mode := range e.cfg.FillModes {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		res, err := e.broker.CreateMarketOrder(ctx, req.WithFillMode(mode))
		if err != nil {
			out.Attempts = append(out.Attempts, Attempt{FillMode: mode, Comment: err.Error()})
			e.metrics.Attempt(string(mode), "error")
			e.recordAttempt(execID, i+1, out.Attempts[i], log)
			out.Reason = err.Error()
			log.Error().Err(err).Str("fill_mode", string(mode)).Msg("order submission failed")
			return out, fmt.Errorf("submit %s %s: %w", sized.Symbol, mode, err)
		}

		a := Attempt{FillMode: mode, Retcode: res.Retcode, Comment: res.Comment, Accepted: res.Done()}
		out.Attempts = append(out.Attempts, a)
		e.recordAttempt(execID, i+1, a, log)
		logging.LogAttempt(log, i+1, string(mode), res.Retcode, res.Comment, a.Accepted)

		if a.Accepted {
			e.metrics.Attempt(string(mode), "accepted")
			out.Filled = true
			out.FillMode = mode
			out.OrderID = res.OrderID
			out.Price = res.Price
			logging.LogOutcome(log, true, string(mode), res.OrderID, "", len(out.Attempts))
			return out, nil
		}
		e.metrics.Attempt(string(mode), "rejected")
	}

	out.Reason = ErrAllFillModesFailed.Error()
	logging.LogOutcome(log, false, "", "", out.Reason, len(out.Attempts))
	return out, nil
}

func resultOf(rep Report, err error) string {
	switch {
	case rep.Outcome.Filled:
		return journal.ResultFilled
	case Classify(err) == ClassExhausted:
		return journal.ResultRejected
	case Classify(err) == ClassPolicy:
		return journal.ResultBlocked
	default:
		return journal.ResultError
	}
}

// Journal failures are logged, never surfaced: the order has already been
// resolved by the time they happen.

func (e *Executor) recordAttempt(execID string, seq int, a Attempt, log zerolog.Logger) {
	err := e.journal.RecordAttempt(journal.AttemptRecord{
		ExecID:   execID,
		Seq:      seq,
		Time:     e.now(),
		FillMode: string(a.FillMode),
		Retcode:  a.Retcode,
		Comment:  a.Comment,
		Accepted: a.Accepted,
	})
	if err != nil {
		log.Warn().Err(err).Msg("journal attempt")
	}
}

func (e *Executor) recordExecution(rep Report, result string, execErr error, log zerolog.Logger) {
	reason := rep.Outcome.Reason
	if execErr != nil {
		reason = execErr.Error()
	}
	o := rep.Order
	err := e.journal.RecordExecution(journal.ExecutionRecord{
		ExecID:       rep.ExecID,
		Time:         e.now(),
		Symbol:       rep.Intent.Symbol,
		Side:         string(rep.Intent.Side),
		EntryPrice:   o.EntryPrice,
		StopLoss:     rep.Intent.StopLoss,
		TakeProfit:   rep.Intent.TakeProfit,
		LotSize:      o.LotSize,
		StopPips:     o.StopPips,
		RiskPercent:  rep.Intent.RiskPercent,
		RiskAmount:   o.RiskAmount,
		RewardToRisk: o.RewardToRisk,
		SpreadCost:   o.SpreadCost,
		Result:       result,
		FillMode:     string(rep.Outcome.FillMode),
		OrderID:      rep.Outcome.OrderID,
		Reason:       reason,
	})
	if err != nil {
		log.Warn().Err(err).Msg("journal execution")
	}
}
