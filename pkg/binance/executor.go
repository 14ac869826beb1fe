package binance

import (
	"context"
	"errors"
	"fmt"

	httpClient "nakula/internal/http"
	"nakula/pkg/core"
	"nakula/pkg/endpoint"
)

// do runs one rate-limited call end to end: circuit breaker gate, quota
// acquisition, payload signing, transport, error classification, decode.
// The payload is built after the quota wait so a long wait cannot push the
// signature timestamp outside the receive window.
func (c *Client) do(ctx context.Context, desc *endpoint.Descriptor, params core.Params, out any) error {
	if c.breaker != nil && !c.breaker.Allow() {
		return core.ErrCircuitOpen
	}

	if err := desc.Acquire(ctx); err != nil {
		return fmt.Errorf("acquire %s quota: %w", desc.Name, err)
	}

	query, err := c.buildQuery(params, desc.Security)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(ctx, desc.Method, desc.Path, query)
	if err != nil {
		c.record(false)
		if errors.Is(err, core.ErrClientClosed) {
			return err
		}
		return &core.TransportError{Op: desc.Method + " " + desc.Path, Err: err}
	}

	if !resp.IsSuccess() {
		c.record(false)
		return statusError(resp)
	}
	c.record(true)

	if out == nil {
		return nil
	}
	if err := resp.Unmarshal(out); err != nil {
		return &core.DecodeError{Err: err}
	}
	return nil
}

func (c *Client) record(success bool) {
	if c.breaker != nil {
		c.breaker.Record(success)
	}
}

// statusError turns a non-2xx response into an HTTPStatusError, attaching
// the exchange's {code,msg} payload when the body carries one.
func statusError(resp *httpClient.Response) error {
	statusErr := &core.HTTPStatusError{
		StatusCode: resp.StatusCode,
		Message:    core.StatusMessage(resp.StatusCode),
	}

	var apiErr struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	if err := resp.Unmarshal(&apiErr); err == nil && apiErr.Code != 0 {
		statusErr.APICode = apiErr.Code
		statusErr.APIMessage = apiErr.Msg
	}

	return statusErr
}
