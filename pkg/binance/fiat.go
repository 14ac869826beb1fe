package binance

import (
	"context"

	"nakula/pkg/core"
)

const fiatPageRows = 500

// FiatOrders lists fiat deposit or withdraw orders. The first page reveals
// the order total; remaining pages are fetched concurrently and stitched
// back in page order. Note the endpoint filters on beginTime, not the
// startTime most other history endpoints use.
func (c *Client) FiatOrders(ctx context.Context, transactionType FiatTransactionType, opts ...CallOption) ([]FiatOrder, error) {
	options := ApplyCallOptions(opts...)
	rows := options.Limit
	if rows <= 0 {
		rows = fiatPageRows
	}

	base := core.Params{
		"transactionType": string(transactionType),
		"rows":            rows,
	}
	if !options.Since.IsZero() {
		base["beginTime"] = options.Since.UnixMilli()
	}
	if !options.Until.IsZero() {
		base["endTime"] = options.Until.UnixMilli()
	}

	return fetchPages(ctx, rows, func(ctx context.Context, page int) ([]FiatOrder, int, error) {
		params := base.Clone()
		params["page"] = page

		var resp struct {
			Code    string      `json:"code"`
			Message string      `json:"message"`
			Data    []FiatOrder `json:"data"`
			Total   int         `json:"total"`
			Success bool        `json:"success"`
		}
		if err := c.do(ctx, c.catalog.FiatOrders, params, &resp); err != nil {
			return nil, 0, err
		}
		return resp.Data, resp.Total, nil
	})
}
