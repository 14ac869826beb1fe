package binance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nakula/internal/circuitbreaker"
	"nakula/pkg/core"
)

func TestClient_Do_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newTestClient(t, server.URL)
	server.Close()

	_, err := client.MarketInfo(context.Background())
	require.Error(t, err)
	assert.True(t, core.IsTransport(err))

	var te *core.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "GET /api/v3/exchangeInfo", te.Op)
}

func TestClient_Do_APIErrorCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":-1121,"msg":"Invalid symbol."}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Klines(context.Background(), "NOPEUSDT", "1m", time.UnixMilli(0), time.UnixMilli(60000))
	require.Error(t, err)

	var se *core.HTTPStatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Equal(t, -1121, se.APICode)
	assert.Equal(t, "Invalid symbol.", se.APIMessage)
	assert.Equal(t, "http status 400 (code -1121): Invalid symbol.", se.Error())
	assert.True(t, core.IsInvalidSymbol(err))
}

func TestClient_Do_ServerErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.MarketInfo(context.Background())
	require.Error(t, err)
	assert.True(t, core.IsServerError(err))

	var se *core.HTTPStatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
	assert.Zero(t, se.APICode)
	assert.Equal(t,
		"http status 503: Service Unavailable. Possible causes: 1. Maintenance. Try again later",
		se.Error())
}

func TestClient_Do_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.MarketInfo(context.Background())
	require.Error(t, err)
	assert.True(t, core.IsDecode(err))
}

func TestClient_Do_DiscardBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"anything":true}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	err := client.do(context.Background(), client.catalog.ExchangeInfo, core.Params{}, nil)
	assert.NoError(t, err)
}

func TestClient_Do_CircuitOpenSkipsTransportAndQuota(t *testing.T) {
	var (
		mu    sync.Mutex
		calls int
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithCircuitBreaker(circuitbreaker.Config{
		FailThreshold:    1,
		SuccessThreshold: 1,
		Cooldown:         time.Hour,
	}))

	_, err := client.MarketInfo(context.Background())
	require.Error(t, err)
	assert.True(t, core.IsHTTPStatus(err))

	_, err = client.MarketInfo(context.Background())
	assert.ErrorIs(t, err, core.ErrCircuitOpen)

	mu.Lock()
	assert.Equal(t, 1, calls)
	mu.Unlock()

	metrics := client.catalog.ExchangeInfo.Scope().Metrics()
	assert.Equal(t, int64(1), metrics.TotalAcquires, "rejected call should not draw quota")
}

func TestClient_Do_QuotaWaitHonorsContext(t *testing.T) {
	client := newTestClient(t, "https://api.binance.com")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.MarketInfo(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acquire exchangeInfo quota")
}

func TestClient_Do_SignedQueryShape(t *testing.T) {
	var (
		mu     sync.Mutex
		method string
		raw    string
		apiKey string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		method = r.Method
		raw = r.URL.RawQuery
		apiKey = r.Header.Get("X-MBX-APIKEY")
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newSignedTestClient(t, server.URL)

	_, err := client.UserAssets(context.Background(), WithAsset("BNB"))
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "test-key", apiKey)

	idx := strings.LastIndex(raw, "&signature=")
	require.Greater(t, idx, 0, "signed query must carry a signature")
	canonical := raw[:idx]
	signature := raw[idx+len("&signature="):]
	assert.Equal(t, signHMAC("test-secret", canonical), signature)

	values, err := url.ParseQuery(canonical)
	require.NoError(t, err)
	assert.Equal(t, "BNB", values.Get("asset"))
	assert.Equal(t, "5000", values.Get("recvWindow"))
	assert.Equal(t, "1700000000000", values.Get("timestamp"))
}
