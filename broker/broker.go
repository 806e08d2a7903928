package broker

import (
	"context"
	"errors"

	"github.com/rustyeddy/fxtrigger/market"
)

var (
	ErrNotConnected       = errors.New("trading session not connected")
	ErrSymbolNotFound     = errors.New("symbol not found")
	ErrNoQuote            = errors.New("no quote available")
	ErrAccountUnavailable = errors.New("account info unavailable")
)

// Session is the trading connection. It is established once per process
// and is not safe for concurrent trades.
type Session interface {
	IsConnected() bool
	Close() error
}

type MarketData interface {
	SelectSymbol(ctx context.Context, symbol string) error
	GetInstrument(ctx context.Context, symbol string) (market.Instrument, error)
	GetTick(ctx context.Context, symbol string) (market.Tick, error)
}

type AccountProvider interface {
	GetAccount(ctx context.Context) (Account, error)
}

type OrderGateway interface {
	CreateMarketOrder(ctx context.Context, req MarketOrderRequest) (OrderResult, error)
}

type Broker interface {
	Session
	MarketData
	AccountProvider
	OrderGateway
}

type Account struct {
	Login    string
	Server   string
	Currency string
	Balance  float64
	Equity   float64
}
