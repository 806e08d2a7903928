package market

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// ErrTickNotFound is returned by TickStore when no tick has been set for
// the instrument.
var ErrTickNotFound = errors.New("tick not found")

// Tick is a two-sided quote at a point in time.
type Tick struct {
	Instrument string
	Time       time.Time
	Bid        float64
	Ask        float64
}

func (t Tick) Mid() float64 {
	if t.Bid == 0 && t.Ask == 0 {
		return 0
	}
	return (t.Bid + t.Ask) / 2
}

func (t Tick) Spread() float64 {
	return t.Ask - t.Bid
}

// EntryFor returns the price a market order on side fills at:
// buys lift the ask, sells hit the bid.
func (t Tick) EntryFor(side Side) float64 {
	if side == Sell {
		return t.Bid
	}
	return t.Ask
}

// Valid reports whether both sides are quoted and not crossed.
func (t Tick) Valid() bool {
	return t.Bid > 0 && t.Ask > 0 && t.Ask >= t.Bid
}

type TickStore struct {
	mu    sync.RWMutex
	ticks map[string]Tick
}

func NewTickStore() *TickStore {
	return &TickStore{ticks: make(map[string]Tick)}
}

func (ts *TickStore) Set(t Tick) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.ticks[strings.ToUpper(t.Instrument)] = t
}

func (ts *TickStore) Get(instr string) (Tick, error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	t, ok := ts.ticks[strings.ToUpper(instr)]
	if !ok {
		return Tick{}, ErrTickNotFound
	}
	return t, nil
}

// Delete drops the last tick for instr, simulating a symbol with no live quote.
func (ts *TickStore) Delete(instr string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	delete(ts.ticks, strings.ToUpper(instr))
}
