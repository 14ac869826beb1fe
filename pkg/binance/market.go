package binance

import (
	"context"
	"time"

	"nakula/pkg/core"
)

// MarketInfo fetches exchange information: server time and the symbol
// definitions. WithSymbols narrows it to the given pairs, which are
// normalized first ("btc/usdt" works).
func (c *Client) MarketInfo(ctx context.Context, opts ...CallOption) (*ExchangeInfo, error) {
	options := ApplyCallOptions(opts...)

	params := core.Params{
		"showPermissionSets": options.PermissionDetails,
	}
	if len(options.Symbols) > 0 {
		symbols := make([]string, len(options.Symbols))
		for i, s := range options.Symbols {
			symbols[i] = core.NormalizeSymbol(s)
		}
		params["symbols"] = symbols
	}

	var info ExchangeInfo
	if err := c.do(ctx, c.catalog.ExchangeInfo, params, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Klines fetches every candle of the given interval in [since, until]. The
// range is cut into windows of limit candles each and the windows are
// fetched concurrently, so the result can exceed the per-request cap while
// each individual request stays under it. A zero until means now.
func (c *Client) Klines(ctx context.Context, symbol, interval string, since, until time.Time, opts ...CallOption) ([]Kline, error) {
	options := ApplyCallOptions(opts...)
	limit := options.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	intervalMillis, err := core.ParseInterval(interval)
	if err != nil {
		return nil, err
	}

	base := core.Params{
		"symbol":   core.NormalizeSymbol(symbol),
		"interval": interval,
		"limit":    limit,
	}

	slices := core.NewTimeRange(since, until).Slices(intervalMillis * int64(limit))
	return fetchSlices(ctx, slices, func(ctx context.Context, slice core.TimeRange) ([]Kline, error) {
		params := base.Clone()
		params["startTime"] = slice.Start
		params["endTime"] = slice.End

		var batch []Kline
		if err := c.do(ctx, c.catalog.Klines, params, &batch); err != nil {
			return nil, err
		}
		return batch, nil
	})
}
