// Package bridge talks to a terminal bridge sidecar over HTTP. The sidecar
// owns the native terminal API; this client owns the session token and maps
// bridge responses onto the broker interfaces.
//
//	POST /login                  {login,password,server} -> {token}
//	GET  /health                 -> {connected}
//	POST /symbols/{sym}/select
//	GET  /symbols/{sym}          -> symbol metadata
//	GET  /ticks/{sym}            -> {bid,ask,time_msc}
//	GET  /account                -> {login,server,currency,balance,equity}
//	POST /orders                 -> {retcode,order,price,volume,comment}
package bridge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/rustyeddy/fxtrigger/broker"
	"github.com/rustyeddy/fxtrigger/market"
)

const (
	DefaultURL     = "http://127.0.0.1:8787"
	DefaultTimeout = 15 * time.Second
)

// Credentials identify the trading account on the terminal's server.
type Credentials struct {
	Login    int64
	Password string
	Server   string
}

// APIError is a non-2xx response from the bridge.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("bridge http %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("bridge http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

type Client struct {
	http *resty.Client

	mu        sync.Mutex
	token     string
	connected bool
}

var _ broker.Broker = (*Client)(nil)

func New(baseURL string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	hc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", "fxtrigger/bridge").
		SetHeader("Accept", "application/json")
	return &Client{http: hc}
}

// Login establishes the session. It is called once at startup; a failure
// there is fatal to the process.
func (c *Client) Login(ctx context.Context, creds Credentials) error {
	var out struct {
		Token string `json:"token"`
	}
	body := map[string]any{
		"login":    creds.Login,
		"password": creds.Password,
		"server":   creds.Server,
	}
	if _, err := c.do(ctx, http.MethodPost, "/login", body, &out, nil); err != nil {
		return fmt.Errorf("login %d@%s: %w", creds.Login, creds.Server, err)
	}
	if out.Token == "" {
		return fmt.Errorf("login %d@%s: bridge returned no session token", creds.Login, creds.Server)
	}

	c.mu.Lock()
	c.token = out.Token
	c.connected = true
	c.mu.Unlock()
	return nil
}

func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Ping asks the bridge whether the terminal is still attached and updates
// the connection flag accordingly.
func (c *Client) Ping(ctx context.Context) error {
	var out struct {
		Connected bool `json:"connected"`
	}
	_, err := c.do(ctx, http.MethodGet, "/health", nil, &out, nil)

	c.mu.Lock()
	c.connected = err == nil && out.Connected && c.token != ""
	ok := c.connected
	c.mu.Unlock()

	if err != nil {
		return err
	}
	if !ok {
		return broker.ErrNotConnected
	}
	return nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.connected = false
	return nil
}

func (c *Client) SelectSymbol(ctx context.Context, symbol string) error {
	_, err := c.do(ctx, http.MethodPost, "/symbols/{symbol}/select", nil, nil, pathSymbol(symbol))
	if isNotFound(err) {
		return fmt.Errorf("select %q: %w", symbol, broker.ErrSymbolNotFound)
	}
	return err
}

type symbolInfo struct {
	Name              string  `json:"name"`
	CurrencyBase      string  `json:"currency_base"`
	CurrencyProfit    string  `json:"currency_profit"`
	Digits            int     `json:"digits"`
	Point             float64 `json:"point"`
	TradeContractSize float64 `json:"trade_contract_size"`
	VolumeMin         float64 `json:"volume_min"`
	VolumeStep        float64 `json:"volume_step"`
	VolumeMax         float64 `json:"volume_max"`
}

func (c *Client) GetInstrument(ctx context.Context, symbol string) (market.Instrument, error) {
	var si symbolInfo
	_, err := c.do(ctx, http.MethodGet, "/symbols/{symbol}", nil, &si, pathSymbol(symbol))
	if isNotFound(err) {
		return market.Instrument{}, fmt.Errorf("instrument %q: %w", symbol, broker.ErrSymbolNotFound)
	}
	if err != nil {
		return market.Instrument{}, err
	}
	if si.TradeContractSize <= 0 {
		return market.Instrument{}, fmt.Errorf("instrument %q: no contract size: %w", symbol, broker.ErrSymbolNotFound)
	}
	name := si.Name
	if name == "" {
		name = strings.ToUpper(symbol)
	}
	return market.Instrument{
		Name:          name,
		BaseCurrency:  si.CurrencyBase,
		QuoteCurrency: si.CurrencyProfit,
		Digits:        si.Digits,
		Point:         si.Point,
		ContractSize:  si.TradeContractSize,
		VolumeMin:     si.VolumeMin,
		VolumeStep:    si.VolumeStep,
		VolumeMax:     si.VolumeMax,
	}, nil
}

func (c *Client) GetTick(ctx context.Context, symbol string) (market.Tick, error) {
	var out struct {
		Bid     float64 `json:"bid"`
		Ask     float64 `json:"ask"`
		TimeMsc int64   `json:"time_msc"`
	}
	_, err := c.do(ctx, http.MethodGet, "/ticks/{symbol}", nil, &out, pathSymbol(symbol))
	if isNotFound(err) {
		return market.Tick{}, fmt.Errorf("tick %q: %w", symbol, broker.ErrNoQuote)
	}
	if err != nil {
		return market.Tick{}, err
	}
	t := market.Tick{
		Instrument: strings.ToUpper(symbol),
		Bid:        out.Bid,
		Ask:        out.Ask,
		Time:       time.UnixMilli(out.TimeMsc).UTC(),
	}
	if !t.Valid() {
		return market.Tick{}, fmt.Errorf("tick %q: bid=%v ask=%v: %w", symbol, out.Bid, out.Ask, broker.ErrNoQuote)
	}
	return t, nil
}

func (c *Client) GetAccount(ctx context.Context) (broker.Account, error) {
	var out struct {
		Login    int64   `json:"login"`
		Server   string  `json:"server"`
		Currency string  `json:"currency"`
		Balance  float64 `json:"balance"`
		Equity   float64 `json:"equity"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/account", nil, &out, nil); err != nil {
		return broker.Account{}, fmt.Errorf("%w: %w", broker.ErrAccountUnavailable, err)
	}
	return broker.Account{
		Login:    strconv.FormatInt(out.Login, 10),
		Server:   out.Server,
		Currency: out.Currency,
		Balance:  out.Balance,
		Equity:   out.Equity,
	}, nil
}

type orderRequest struct {
	Action      string  `json:"action"`
	Symbol      string  `json:"symbol"`
	Volume      float64 `json:"volume"`
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	SL          float64 `json:"sl"`
	TP          float64 `json:"tp"`
	Deviation   int     `json:"deviation"`
	Comment     string  `json:"comment"`
	TypeTime    string  `json:"type_time"`
	TypeFilling string  `json:"type_filling"`
}

type orderResponse struct {
	Retcode int     `json:"retcode"`
	Order   int64   `json:"order"`
	Price   float64 `json:"price"`
	Volume  float64 `json:"volume"`
	Comment string  `json:"comment"`
}

// CreateMarketOrder submits one request. A trade-server rejection is a
// normal result carrying its retcode; only transport and bridge failures
// are returned as errors.
func (c *Client) CreateMarketOrder(ctx context.Context, req broker.MarketOrderRequest) (broker.OrderResult, error) {
	body := orderRequest{
		Action:      "deal",
		Symbol:      req.Symbol,
		Volume:      req.Volume,
		Type:        strings.ToLower(req.Side.String()),
		Price:       req.Price,
		SL:          req.StopLoss,
		TP:          req.TakeProfit,
		Deviation:   req.Deviation,
		Comment:     req.Comment,
		TypeTime:    strings.ToLower(string(req.TimeInForce)),
		TypeFilling: strings.ToLower(string(req.FillMode)),
	}

	var out orderResponse
	r := c.request(ctx).
		SetHeader("Idempotency-Key", uuid.New().String()).
		SetBody(body).
		SetResult(&out)
	if _, err := c.send(r, http.MethodPost, "/orders"); err != nil {
		return broker.OrderResult{}, fmt.Errorf("order %s %s %s: %w", req.Side, req.Symbol, req.FillMode, err)
	}

	var oid string
	if out.Order != 0 {
		oid = strconv.FormatInt(out.Order, 10)
	}
	return broker.OrderResult{
		Retcode: out.Retcode,
		OrderID: oid,
		Price:   out.Price,
		Volume:  out.Volume,
		Comment: out.Comment,
	}, nil
}

func pathSymbol(symbol string) map[string]string {
	return map[string]string{"symbol": strings.ToUpper(strings.TrimSpace(symbol))}
}

func (c *Client) request(ctx context.Context) *resty.Request {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()

	r := c.http.R().SetContext(ctx).SetError(&APIError{})
	if token != "" {
		r.SetAuthToken(token)
	}
	return r
}

func (c *Client) do(ctx context.Context, method, path string, body, result any, params map[string]string) (*resty.Response, error) {
	r := c.request(ctx)
	if body != nil {
		r.SetBody(body)
	}
	if result != nil {
		r.SetResult(result)
	}
	if params != nil {
		r.SetPathParams(params)
	}
	return c.send(r, method, path)
}

func (c *Client) send(r *resty.Request, method, path string) (*resty.Response, error) {
	resp, err := r.Execute(method, path)
	if err != nil {
		return resp, err
	}
	if !resp.IsError() {
		return resp, nil
	}

	apiErr, _ := resp.Error().(*APIError)
	if apiErr == nil {
		apiErr = &APIError{}
	}
	apiErr.StatusCode = resp.StatusCode()
	apiErr.Body = trimForErr(resp.String())

	if resp.StatusCode() == http.StatusUnauthorized {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
		return resp, fmt.Errorf("%w: %v", broker.ErrNotConnected, apiErr)
	}
	return resp, apiErr
}

func isNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

func trimForErr(s string) string {
	const n = 200
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
