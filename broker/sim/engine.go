// Package sim is an in-memory paper broker. It quotes from a TickStore,
// fills market orders at ask/bid, and can be told which fill modes a symbol
// accepts so the fill-mode fallback can be exercised without a terminal.
package sim

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rustyeddy/fxtrigger/broker"
	"github.com/rustyeddy/fxtrigger/market"
	"github.com/rustyeddy/fxtrigger/pkg/id"
)

type Engine struct {
	mu          sync.Mutex
	acct        broker.Account
	ticks       *market.TickStore
	instruments map[string]market.Instrument
	accepts     map[string][]broker.FillMode
	selected    map[string]bool
	orders      []broker.MarketOrderRequest
	fills       []Fill
	connected   bool
	accountDown bool
}

// Fill is an accepted paper order.
type Fill struct {
	OrderID string
	Request broker.MarketOrderRequest
	Price   float64
}

var _ broker.Broker = (*Engine)(nil)

// NewEngine returns a connected paper broker seeded with the default
// instrument table.
func NewEngine(acct broker.Account) *Engine {
	inst := make(map[string]market.Instrument, len(market.Instruments))
	for k, v := range market.Instruments {
		inst[k] = v
	}
	return &Engine{
		acct:        acct,
		ticks:       market.NewTickStore(),
		instruments: inst,
		accepts:     make(map[string][]broker.FillMode),
		selected:    make(map[string]bool),
		connected:   true,
	}
}

func key(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

func (e *Engine) Prices() *market.TickStore {
	return e.ticks
}

// SetInstrument adds or replaces metadata for a symbol.
func (e *Engine) SetInstrument(inst market.Instrument) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.instruments[key(inst.Name)] = inst
}

// Accept restricts symbol to the given fill modes. Symbols without a
// restriction accept every mode.
func (e *Engine) Accept(symbol string, modes ...broker.FillMode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.accepts[key(symbol)] = modes
}

func (e *Engine) SetBalance(balance float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.acct.Balance = balance
	e.acct.Equity = balance
}

// SetConnected simulates the terminal dropping or regaining the session.
func (e *Engine) SetConnected(ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.connected = ok
}

// SetAccountDown makes GetAccount fail.
func (e *Engine) SetAccountDown(down bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.accountDown = down
}

func (e *Engine) IsConnected() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.connected
}

func (e *Engine) Close() error {
	e.SetConnected(false)
	return nil
}

func (e *Engine) SelectSymbol(ctx context.Context, symbol string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.instruments[key(symbol)]; !ok {
		return fmt.Errorf("select %q: %w", symbol, broker.ErrSymbolNotFound)
	}
	e.selected[key(symbol)] = true
	return nil
}

func (e *Engine) GetInstrument(ctx context.Context, symbol string) (market.Instrument, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	inst, ok := e.instruments[key(symbol)]
	if !ok {
		return market.Instrument{}, fmt.Errorf("instrument %q: %w", symbol, broker.ErrSymbolNotFound)
	}
	return inst, nil
}

func (e *Engine) GetTick(ctx context.Context, symbol string) (market.Tick, error) {
	t, err := e.ticks.Get(symbol)
	if err != nil || !t.Valid() {
		return market.Tick{}, fmt.Errorf("tick %q: %w", symbol, broker.ErrNoQuote)
	}
	return t, nil
}

func (e *Engine) GetAccount(ctx context.Context) (broker.Account, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.accountDown {
		return broker.Account{}, broker.ErrAccountUnavailable
	}
	return e.acct, nil
}

func (e *Engine) acceptsLocked(symbol string, m broker.FillMode) bool {
	modes, ok := e.accepts[key(symbol)]
	if !ok {
		return true
	}
	for _, a := range modes {
		if a == m {
			return true
		}
	}
	return false
}

// CreateMarketOrder records every request, rejected or not.
func (e *Engine) CreateMarketOrder(ctx context.Context, req broker.MarketOrderRequest) (broker.OrderResult, error) {
	if err := ctx.Err(); err != nil {
		return broker.OrderResult{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.orders = append(e.orders, req)

	if !e.connected {
		return broker.OrderResult{}, broker.ErrNotConnected
	}
	if _, ok := e.instruments[key(req.Symbol)]; !ok {
		return broker.OrderResult{Retcode: broker.RetcodeInvalid, Comment: "unknown symbol"}, nil
	}
	if !e.acceptsLocked(req.Symbol, req.FillMode) {
		return broker.OrderResult{Retcode: broker.RetcodeFillMode, Comment: "Unsupported filling mode"}, nil
	}

	p, err := e.ticks.Get(req.Symbol)
	if err != nil {
		return broker.OrderResult{Retcode: broker.RetcodeReject, Comment: "no prices"}, nil
	}
	fillPrice := p.EntryFor(req.Side)

	oid := id.New()
	e.fills = append(e.fills, Fill{OrderID: oid, Request: req, Price: fillPrice})

	return broker.OrderResult{
		Retcode: broker.RetcodeDone,
		OrderID: oid,
		Price:   fillPrice,
		Volume:  req.Volume,
		Comment: "Request executed",
	}, nil
}

// Orders returns every request submitted, in order.
func (e *Engine) Orders() []broker.MarketOrderRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]broker.MarketOrderRequest, len(e.orders))
	copy(out, e.orders)
	return out
}

// Fills returns accepted orders.
func (e *Engine) Fills() []Fill {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Fill, len(e.fills))
	copy(out, e.fills)
	return out
}
