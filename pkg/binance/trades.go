package binance

import (
	"context"
	"time"

	"nakula/pkg/core"
)

// The trades endpoint caps each response at one day of history when both
// time bounds are present.
const tradeWindow = 24 * time.Hour

// SpotTrades fetches the account's trades for one symbol. The fetch
// strategy follows from the filters: with both WithSince and WithUntil the
// range is cut into day windows fetched concurrently; with only WithUntil a
// single capped fetch runs, because the API cannot combine an upper time
// bound with an id cursor; otherwise trades are walked forward serially
// with the trade-id cursor until a short batch arrives.
func (c *Client) SpotTrades(ctx context.Context, symbol string, opts ...CallOption) ([]Trade, error) {
	options := ApplyCallOptions(opts...)
	limit := options.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	base := core.Params{
		"symbol": core.NormalizeSymbol(symbol),
		"limit":  limit,
	}
	if options.OrderID > 0 {
		base["orderId"] = options.OrderID
	}

	switch {
	case !options.Since.IsZero() && !options.Until.IsZero():
		rng := core.NewTimeRange(options.Since, options.Until)
		return fetchSlices(ctx, rng.Slices(tradeWindow.Milliseconds()), func(ctx context.Context, slice core.TimeRange) ([]Trade, error) {
			params := base.Clone()
			params["startTime"] = slice.Start
			params["endTime"] = slice.End

			var batch []Trade
			if err := c.do(ctx, c.catalog.SpotTrades, params, &batch); err != nil {
				return nil, err
			}
			return batch, nil
		})

	case !options.Until.IsZero():
		params := base.Clone()
		params["endTime"] = options.Until.UnixMilli()

		var batch []Trade
		if err := c.do(ctx, c.catalog.SpotTrades, params, &batch); err != nil {
			return nil, err
		}
		return batch, nil

	default:
		params := base.Clone()
		if !options.Since.IsZero() {
			params["startTime"] = options.Since.UnixMilli()
		}
		if options.FromID > 0 {
			params["fromId"] = options.FromID
		}
		return c.collectTrades(ctx, params, limit)
	}
}

// collectTrades walks the trade listing forward. Each full batch advances
// the cursor to the last trade id plus one; the time filter only seeds the
// first request, since the API rejects it alongside fromId.
func (c *Client) collectTrades(ctx context.Context, params core.Params, limit int) ([]Trade, error) {
	var out []Trade
	for {
		var batch []Trade
		if err := c.do(ctx, c.catalog.SpotTrades, params, &batch); err != nil {
			return nil, err
		}
		out = append(out, batch...)
		if len(batch) < limit {
			return out, nil
		}

		params = params.Clone()
		params["fromId"] = batch[len(batch)-1].ID + 1
		delete(params, "startTime")
	}
}
