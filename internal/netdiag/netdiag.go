package netdiag

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"resty.dev/v3"
)

const defaultURL = "https://api.ipify.org"

// Resolver looks up the machine's public IP once and caches it. Exchange API
// keys are often IP-allowlisted, so the resolved address is the first thing
// to check when the exchange starts rejecting a key.
type Resolver struct {
	url    string
	logger zerolog.Logger

	mu sync.Mutex
	ip string
}

// NewResolver returns a Resolver querying the given address, or the ipify
// service when url is empty.
func NewResolver(url string, logger zerolog.Logger) *Resolver {
	if url == "" {
		url = defaultURL
	}
	return &Resolver{url: url, logger: logger}
}

// PublicIP returns the cached public address, fetching it on first use.
// Concurrent first calls serialize; only one lookup goes out.
func (r *Resolver) PublicIP(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ip != "" {
		return r.ip, nil
	}

	// A throwaway session: this runs at most once per resolver and must not
	// inherit the exchange client's base URL or headers.
	client := resty.New().SetTimeout(10 * time.Second)
	defer client.Close()

	resp, err := client.R().SetContext(ctx).SetQueryParam("format", "json").Get(r.url)
	if err != nil {
		return "", fmt.Errorf("fetch public ip: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("fetch public ip: status %d", resp.StatusCode())
	}

	var payload struct {
		IP string `json:"ip"`
	}
	if err := sonic.Unmarshal(resp.Bytes(), &payload); err != nil {
		return "", fmt.Errorf("decode public ip: %w", err)
	}
	if payload.IP == "" {
		return "", fmt.Errorf("public ip missing from response")
	}

	r.ip = payload.IP
	r.logger.Debug().Str("ip", r.ip).Msg("public ip resolved")
	return r.ip, nil
}

var defaultResolver = NewResolver("", zerolog.Nop())

// Default returns the process-wide resolver. Clients sharing it perform at
// most one lookup per process no matter how many of them ask.
func Default() *Resolver {
	return defaultResolver
}

// PublicIP resolves through the process-wide resolver.
func PublicIP(ctx context.Context) (string, error) {
	return defaultResolver.PublicIP(ctx)
}
