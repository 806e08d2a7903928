package trade

import (
	"context"
	"sync"
	"time"

	"github.com/rustyeddy/fxtrigger/broker"
	"github.com/rustyeddy/fxtrigger/journal"
	"github.com/rustyeddy/fxtrigger/market"
)

// scriptedBroker quotes EURUSD and answers order requests from a script.
type scriptedBroker struct {
	mu       sync.Mutex
	script   []scripted
	requests []broker.MarketOrderRequest
	tick     market.Tick
	balance  float64
}

type scripted struct {
	res broker.OrderResult
	err error
}

func reject() scripted {
	return scripted{res: broker.OrderResult{Retcode: broker.RetcodeFillMode, Comment: "Unsupported filling mode"}}
}

func done(orderID string) scripted {
	return scripted{res: broker.OrderResult{Retcode: broker.RetcodeDone, OrderID: orderID, Price: 1.1, Comment: "Request executed"}}
}

func newScriptedBroker(script ...scripted) *scriptedBroker {
	return &scriptedBroker{
		script:  script,
		tick:    market.Tick{Instrument: "EURUSD", Time: time.Now(), Bid: 1.0998, Ask: 1.1000},
		balance: 10_000,
	}
}

func (b *scriptedBroker) IsConnected() bool { return true }
func (b *scriptedBroker) Close() error      { return nil }

func (b *scriptedBroker) SelectSymbol(context.Context, string) error { return nil }

func (b *scriptedBroker) GetInstrument(_ context.Context, symbol string) (market.Instrument, error) {
	inst, ok := market.Lookup(symbol)
	if !ok {
		return market.Instrument{}, broker.ErrSymbolNotFound
	}
	return inst, nil
}

func (b *scriptedBroker) GetTick(context.Context, string) (market.Tick, error) {
	return b.tick, nil
}

func (b *scriptedBroker) GetAccount(context.Context) (broker.Account, error) {
	return broker.Account{Currency: "USD", Balance: b.balance, Equity: b.balance}, nil
}

func (b *scriptedBroker) CreateMarketOrder(_ context.Context, req broker.MarketOrderRequest) (broker.OrderResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.requests = append(b.requests, req)
	if len(b.script) == 0 {
		return broker.OrderResult{Retcode: broker.RetcodeReject}, nil
	}
	next := b.script[0]
	b.script = b.script[1:]
	return next.res, next.err
}

func (b *scriptedBroker) Requests() []broker.MarketOrderRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]broker.MarketOrderRequest(nil), b.requests...)
}

type memJournal struct {
	mu         sync.Mutex
	executions []journal.ExecutionRecord
	attempts   []journal.AttemptRecord
}

func (j *memJournal) RecordExecution(e journal.ExecutionRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.executions = append(j.executions, e)
	return nil
}

func (j *memJournal) RecordAttempt(a journal.AttemptRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.attempts = append(j.attempts, a)
	return nil
}

func (j *memJournal) Close() error { return nil }
