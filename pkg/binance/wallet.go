package binance

import (
	"context"
	"time"

	"nakula/pkg/core"
)

// Convert history queries are capped to a month of history per request.
const convertWindow = 30 * 24 * time.Hour

const (
	maxConvertRows = 1000
	rebatePageRows = 100
	earnPageRows   = 100
)

// applyTimeBounds copies the optional window filters into params.
func applyTimeBounds(params core.Params, options *CallOptions) {
	if !options.Since.IsZero() {
		params["startTime"] = options.Since.UnixMilli()
	}
	if !options.Until.IsZero() {
		params["endTime"] = options.Until.UnixMilli()
	}
}

// UserAssets lists the wallet's non-zero balances. WithAsset narrows to one
// asset and WithBTCValuation adds a BTC valuation column.
func (c *Client) UserAssets(ctx context.Context, opts ...CallOption) ([]UserAsset, error) {
	options := ApplyCallOptions(opts...)

	params := core.Params{}
	if options.Asset != "" {
		params["asset"] = options.Asset
	}
	if options.BTCValuation {
		params["needBtcValuation"] = true
	}

	var assets []UserAsset
	if err := c.do(ctx, c.catalog.UserAssets, params, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// Coins lists every currency configured for the account with per-network
// deposit and withdraw availability.
func (c *Client) Coins(ctx context.Context) ([]Coin, error) {
	var coins []Coin
	if err := c.do(ctx, c.catalog.Coins, core.Params{}, &coins); err != nil {
		return nil, err
	}
	return coins, nil
}

// AccountSnapshot fetches daily account snapshots of the given type.
// WithSince and WithUntil bound the window; WithLimit caps the number of
// days (the API accepts 7 to 30).
func (c *Client) AccountSnapshot(ctx context.Context, snapshotType SnapshotType, opts ...CallOption) (*AccountSnapshot, error) {
	options := ApplyCallOptions(opts...)

	params := core.Params{"type": string(snapshotType)}
	applyTimeBounds(params, options)
	if options.Limit > 0 {
		params["limit"] = options.Limit
	}

	var snapshot AccountSnapshot
	if err := c.do(ctx, c.catalog.AccountSnapshot, params, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Dividends lists asset dividend records, newest first.
func (c *Client) Dividends(ctx context.Context, opts ...CallOption) ([]Dividend, error) {
	options := ApplyCallOptions(opts...)

	params := core.Params{}
	if options.Asset != "" {
		params["asset"] = options.Asset
	}
	applyTimeBounds(params, options)
	if options.Limit > 0 {
		params["limit"] = options.Limit
	}

	var resp struct {
		Rows  []Dividend `json:"rows"`
		Total int        `json:"total"`
	}
	if err := c.do(ctx, c.catalog.Dividends, params, &resp); err != nil {
		return nil, err
	}
	return resp.Rows, nil
}

// DustLog lists small-balance conversions to BNB in the queried window.
func (c *Client) DustLog(ctx context.Context, opts ...CallOption) (*DustLog, error) {
	options := ApplyCallOptions(opts...)

	params := core.Params{}
	applyTimeBounds(params, options)

	var dust DustLog
	if err := c.do(ctx, c.catalog.DustLog, params, &dust); err != nil {
		return nil, err
	}
	return &dust, nil
}

// WithdrawHistory lists withdraw records. WithCoin narrows to one coin.
func (c *Client) WithdrawHistory(ctx context.Context, opts ...CallOption) ([]Withdrawal, error) {
	options := ApplyCallOptions(opts...)

	params := core.Params{}
	if options.Coin != "" {
		params["coin"] = options.Coin
	}
	applyTimeBounds(params, options)
	if options.Limit > 0 {
		params["limit"] = options.Limit
	}

	var withdrawals []Withdrawal
	if err := c.do(ctx, c.catalog.WithdrawHistory, params, &withdrawals); err != nil {
		return nil, err
	}
	return withdrawals, nil
}

// DepositHistory lists deposit records. WithCoin narrows to one coin.
func (c *Client) DepositHistory(ctx context.Context, opts ...CallOption) ([]Deposit, error) {
	options := ApplyCallOptions(opts...)

	params := core.Params{}
	if options.Coin != "" {
		params["coin"] = options.Coin
	}
	applyTimeBounds(params, options)
	if options.Limit > 0 {
		params["limit"] = options.Limit
	}

	var deposits []Deposit
	if err := c.do(ctx, c.catalog.DepositHistory, params, &deposits); err != nil {
		return nil, err
	}
	return deposits, nil
}

// ConvertHistory fetches convert trades for [since, until]. The API serves
// at most a month per request, so longer ranges are cut into 30-day slices
// fetched concurrently.
func (c *Client) ConvertHistory(ctx context.Context, since, until time.Time, opts ...CallOption) ([]ConvertTrade, error) {
	options := ApplyCallOptions(opts...)
	limit := options.Limit
	if limit <= 0 {
		limit = maxConvertRows
	}

	slices := core.NewTimeRange(since, until).Slices(convertWindow.Milliseconds())
	return fetchSlices(ctx, slices, func(ctx context.Context, slice core.TimeRange) ([]ConvertTrade, error) {
		params := core.Params{
			"startTime": slice.Start,
			"endTime":   slice.End,
			"limit":     limit,
		}

		var resp struct {
			List []ConvertTrade `json:"list"`
		}
		if err := c.do(ctx, c.catalog.ConvertHistory, params, &resp); err != nil {
			return nil, err
		}
		return resp.List, nil
	})
}

// Rebates lists spot rebate records. The report is paginated at a fixed
// hundred rows; pages after the first are fetched concurrently.
func (c *Client) Rebates(ctx context.Context, opts ...CallOption) ([]RebateRecord, error) {
	options := ApplyCallOptions(opts...)

	base := core.Params{}
	applyTimeBounds(base, options)

	return fetchPages(ctx, rebatePageRows, func(ctx context.Context, page int) ([]RebateRecord, int, error) {
		params := base.Clone()
		params["page"] = page

		var resp struct {
			Data struct {
				Page         int            `json:"page"`
				TotalRecords int            `json:"totalRecords"`
				TotalNum     int            `json:"totalNum"`
				Data         []RebateRecord `json:"data"`
			} `json:"data"`
		}
		if err := c.do(ctx, c.catalog.Rebates, params, &resp); err != nil {
			return nil, 0, err
		}
		return resp.Data.Data, resp.Data.TotalRecords, nil
	})
}

// AutoInvestHistory lists auto-invest plan executions page by page.
func (c *Client) AutoInvestHistory(ctx context.Context, opts ...CallOption) ([]AutoInvestTransaction, error) {
	options := ApplyCallOptions(opts...)
	size := options.Limit
	if size <= 0 || size > earnPageRows {
		size = earnPageRows
	}

	base := core.Params{"size": size}
	applyTimeBounds(base, options)

	return fetchPages(ctx, size, func(ctx context.Context, page int) ([]AutoInvestTransaction, int, error) {
		params := base.Clone()
		params["current"] = page

		var resp struct {
			Total int                     `json:"total"`
			List  []AutoInvestTransaction `json:"list"`
		}
		if err := c.do(ctx, c.catalog.AutoInvestHistory, params, &resp); err != nil {
			return nil, 0, err
		}
		return resp.List, resp.Total, nil
	})
}

// FlexibleRewards lists simple-earn flexible reward records of the given
// kind. WithAsset narrows to one asset.
func (c *Client) FlexibleRewards(ctx context.Context, rewardType RewardType, opts ...CallOption) ([]FlexibleReward, error) {
	options := ApplyCallOptions(opts...)
	size := options.Limit
	if size <= 0 || size > earnPageRows {
		size = earnPageRows
	}

	base := core.Params{"type": string(rewardType), "size": size}
	if options.Asset != "" {
		base["asset"] = options.Asset
	}
	applyTimeBounds(base, options)

	return fetchPages(ctx, size, func(ctx context.Context, page int) ([]FlexibleReward, int, error) {
		params := base.Clone()
		params["current"] = page

		var resp struct {
			Rows  []FlexibleReward `json:"rows"`
			Total int              `json:"total"`
		}
		if err := c.do(ctx, c.catalog.FlexibleRewards, params, &resp); err != nil {
			return nil, 0, err
		}
		return resp.Rows, resp.Total, nil
	})
}
