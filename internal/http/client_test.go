package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nakula/pkg/core"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(&Config{BaseURL: baseURL, Timeout: 5 * time.Second}, zerolog.Nop())
	require.NoError(t, err)
	return client
}

func TestNewClient_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{"missing_base_url", &Config{Timeout: time.Second}},
		{"not_a_url", &Config{BaseURL: "not a url", Timeout: time.Second}},
		{"zero_timeout", &Config{BaseURL: "https://api.binance.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.config, zerolog.Nop())
			assert.Error(t, err)
			assert.Nil(t, client)
		})
	}
}

func TestClient_Do_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/api/v3/klines", r.URL.Path)
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		assert.Equal(t, "5m", r.URL.Query().Get("interval"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	defer client.Close()

	resp, err := client.Do(context.Background(), "GET", "/api/v3/klines", "interval=5m&symbol=BTCUSDT")

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.True(t, resp.IsSuccess())
	assert.False(t, resp.IsError())
	assert.Equal(t, []byte(`[]`), resp.Body)
}

func TestClient_Do_QueryUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		values := r.URL.Query()
		assert.Equal(t, "true", values.Get("needBtcValuation"))
		assert.Equal(t, `["BTCUSDT","ETHUSDT"]`, values.Get("symbols"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	defer client.Close()

	_, err := client.Do(context.Background(), "GET", "/echo",
		"needBtcValuation=true&symbols=%5B%22BTCUSDT%22%2C%22ETHUSDT%22%5D")
	require.NoError(t, err)
}

func TestClient_Do_Post(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/sapi/v3/asset/getUserAsset", r.URL.Path)
		assert.Equal(t, "BTC", r.URL.Query().Get("asset"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	defer client.Close()

	resp, err := client.Do(context.Background(), "POST", "/sapi/v3/asset/getUserAsset", "asset=BTC")

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestClient_Do_NoQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	defer client.Close()

	_, err := client.Do(context.Background(), "GET", "/api/v3/exchangeInfo", "")
	require.NoError(t, err)
}

func TestClient_Do_UnsupportedMethod(t *testing.T) {
	client := newTestClient(t, "https://api.binance.com")
	defer client.Close()

	resp, err := client.Do(context.Background(), "FETCH", "/x", "")
	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestClient_Do_ErrorStatusStillReturnsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":-1121,"msg":"Invalid symbol."}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	defer client.Close()

	resp, err := client.Do(context.Background(), "GET", "/api/v3/klines", "symbol=NOPE")

	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	assert.True(t, resp.IsError())
	assert.Contains(t, string(resp.Body), "-1121")
}

func TestClient_Do_Closed(t *testing.T) {
	client := newTestClient(t, "https://api.binance.com")
	require.NoError(t, client.Close())

	resp, err := client.Do(context.Background(), "GET", "/x", "")
	assert.ErrorIs(t, err, core.ErrClientClosed)
	assert.Nil(t, resp)

	assert.NoError(t, client.Close(), "second close should be a no-op")
}

func TestClient_DefaultHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("X-MBX-APIKEY"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := NewClient(&Config{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
		Headers: map[string]string{"X-MBX-APIKEY": "test-api-key"},
	}, zerolog.Nop())
	require.NoError(t, err)
	defer client.Close()

	resp, err := client.Do(context.Background(), "GET", "/ping", "")
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestResponse_Unmarshal(t *testing.T) {
	resp := &Response{
		StatusCode: 200,
		Body:       []byte(`{"symbol":"BTCUSDT","id":28457}`),
	}

	var result struct {
		Symbol string `json:"symbol"`
		ID     int64  `json:"id"`
	}

	err := resp.Unmarshal(&result)

	assert.NoError(t, err)
	assert.Equal(t, "BTCUSDT", result.Symbol)
	assert.Equal(t, int64(28457), result.ID)
}

func TestResponse_IsSuccess(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		expected   bool
	}{
		{"200 OK", 200, true},
		{"201 Created", 201, true},
		{"301 Redirect", 301, false},
		{"400 Bad Request", 400, false},
		{"500 Server Error", 500, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &Response{StatusCode: tt.statusCode}
			assert.Equal(t, tt.expected, resp.IsSuccess())
		})
	}
}
