package binance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"nakula/internal/circuitbreaker"
	httpClient "nakula/internal/http"
	"nakula/internal/keyring"
	"nakula/internal/netdiag"
	"nakula/pkg/endpoint"
)

// Client issues rate-limited requests against the Binance REST API. Every
// operation acquires quota from its endpoint's scope before the request is
// signed and sent, so a Client (or several sharing a catalog) never exceeds
// the exchange's published weights.
type Client struct {
	http       *httpClient.Client
	catalog    *endpoint.Catalog
	creds      keyring.Credentials
	breaker    *circuitbreaker.Breaker
	resolver   *netdiag.Resolver
	logger     zerolog.Logger
	recvWindow string
	now        func() time.Time
}

// New creates a Client. Without WithCredentials only public endpoints work;
// without WithCatalog quota scopes are shared process-wide.
func New(opts ...Option) (*Client, error) {
	options := &Options{
		BaseURL:    DefaultBaseURL,
		Timeout:    defaultTimeout,
		RecvWindow: DefaultRecvWindow,
		Logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(options)
	}

	if err := validator.New().Struct(options); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	catalog := options.Catalog
	if catalog == nil {
		var err error
		catalog, err = endpoint.Default()
		if err != nil {
			return nil, fmt.Errorf("build endpoint catalog: %w", err)
		}
	}

	headers := make(map[string]string)
	if !options.Credentials.IsZero() {
		headers["X-MBX-APIKEY"] = options.Credentials.Key()
	}

	http, err := httpClient.NewClient(&httpClient.Config{
		BaseURL: options.BaseURL,
		Timeout: options.Timeout,
		Headers: headers,
	}, options.Logger)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}

	var breaker *circuitbreaker.Breaker
	if options.Breaker != nil {
		breaker = circuitbreaker.New(*options.Breaker, options.Logger)
	}

	options.Logger.Debug().
		Str("base_url", options.BaseURL).
		Str("api_key", options.Credentials.Masked()).
		Msg("binance client ready")

	return &Client{
		http:       http,
		catalog:    catalog,
		creds:      options.Credentials,
		breaker:    breaker,
		resolver:   netdiag.Default(),
		logger:     options.Logger,
		recvWindow: options.RecvWindow,
		now:        time.Now,
	}, nil
}

// Close releases the underlying HTTP session. Operations on a closed client
// return core.ErrClientClosed.
func (c *Client) Close() error {
	return c.http.Close()
}

// PublicIP reports the machine's public address as seen from outside. When
// the exchange rejects an API key (code -2015) the usual cause is a request
// from an IP missing from the key's allow-list, and this is the address to
// compare against it.
func (c *Client) PublicIP(ctx context.Context) (string, error) {
	return c.resolver.PublicIP(ctx)
}
