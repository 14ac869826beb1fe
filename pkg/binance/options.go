package binance

import (
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"nakula/internal/circuitbreaker"
	"nakula/internal/keyring"
	"nakula/pkg/endpoint"
)

const (
	// DefaultBaseURL is the production REST API host.
	DefaultBaseURL = "https://api.binance.com"

	// DefaultRecvWindow is the signed-request validity window in
	// milliseconds.
	DefaultRecvWindow = "5000"

	defaultTimeout = 10 * time.Second
	defaultLimit   = 500
)

// Option is a functional option for configuring the Client.
type Option func(*Options)

// Options holds configuration options for the Client.
type Options struct {
	BaseURL     string        `validate:"required,url"`
	Timeout     time.Duration `validate:"min=1ms"`
	RecvWindow  string        `validate:"required,number"`
	Credentials keyring.Credentials
	Logger      zerolog.Logger
	Catalog     *endpoint.Catalog
	Breaker     *circuitbreaker.Config
}

// WithBaseURL returns an option that points the client at another host,
// such as the testnet.
func WithBaseURL(url string) Option {
	return func(o *Options) {
		o.BaseURL = url
	}
}

// WithCredentials returns an option that sets the API key pair used for
// signed endpoints.
func WithCredentials(key, secret string) Option {
	return func(o *Options) {
		o.Credentials = keyring.New(key, secret)
	}
}

// WithRecvWindow returns an option that sets how many milliseconds a signed
// request stays valid after its timestamp.
func WithRecvWindow(ms int) Option {
	return func(o *Options) {
		o.RecvWindow = strconv.Itoa(ms)
	}
}

// WithTimeout returns an option that sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.Timeout = d
	}
}

// WithLogger returns an option that sets the logger for the client.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithCatalog returns an option that supplies an endpoint catalog with its
// own quota scopes instead of the process-wide one.
func WithCatalog(c *endpoint.Catalog) Option {
	return func(o *Options) {
		o.Catalog = c
	}
}

// WithCircuitBreaker returns an option that puts a circuit breaker in front
// of every request. Open-circuit rejections surface as core.ErrCircuitOpen
// before any quota is spent.
func WithCircuitBreaker(config circuitbreaker.Config) Option {
	return func(o *Options) {
		o.Breaker = &config
	}
}

// CallOption is a functional option for a single operation call.
type CallOption func(*CallOptions)

// CallOptions holds the optional filters an operation accepts. Operations
// ignore fields that do not apply to them.
type CallOptions struct {
	Limit             int
	Since             time.Time
	Until             time.Time
	OrderID           int64
	FromID            int64
	Asset             string
	Coin              string
	Symbols           []string
	BTCValuation      bool
	PermissionDetails bool
}

// ApplyCallOptions merges the given options into a CallOptions struct.
func ApplyCallOptions(opts ...CallOption) *CallOptions {
	options := &CallOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithLimit sets the per-request item cap (also the page size for paginated
// reports). Operations fall back to the endpoint's documented default when
// unset.
func WithLimit(limit int) CallOption {
	return func(o *CallOptions) {
		o.Limit = limit
	}
}

// WithSince sets the inclusive lower time bound.
func WithSince(t time.Time) CallOption {
	return func(o *CallOptions) {
		o.Since = t
	}
}

// WithUntil sets the inclusive upper time bound.
func WithUntil(t time.Time) CallOption {
	return func(o *CallOptions) {
		o.Until = t
	}
}

// WithOrderID restricts trade listings to one order.
func WithOrderID(id int64) CallOption {
	return func(o *CallOptions) {
		o.OrderID = id
	}
}

// WithFromID starts a trade listing at the given trade id.
func WithFromID(id int64) CallOption {
	return func(o *CallOptions) {
		o.FromID = id
	}
}

// WithAsset filters wallet operations to one asset.
func WithAsset(asset string) CallOption {
	return func(o *CallOptions) {
		o.Asset = asset
	}
}

// WithCoin filters deposit and withdraw history to one coin.
func WithCoin(coin string) CallOption {
	return func(o *CallOptions) {
		o.Coin = coin
	}
}

// WithSymbols restricts exchange information to the given trading pairs.
func WithSymbols(symbols ...string) CallOption {
	return func(o *CallOptions) {
		o.Symbols = symbols
	}
}

// WithBTCValuation asks the asset listing to include BTC valuations.
func WithBTCValuation() CallOption {
	return func(o *CallOptions) {
		o.BTCValuation = true
	}
}

// WithPermissionDetails asks exchange information to expand permission sets.
func WithPermissionDetails() CallOption {
	return func(o *CallOptions) {
		o.PermissionDetails = true
	}
}
