package endpoint

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"nakula/internal/ratelimit"
	"nakula/pkg/core"
)

// Quota capacities published by the exchange. Endpoints under /api pool one
// shared per-IP budget; each /sapi endpoint is metered on its own, per IP or
// per account (UID), and a few heavy wallet calls are metered per second.
const (
	sharedAPIWeight    = 6000
	sapiIPWeight       = 12000
	sapiUIDWeight      = 180000
	sapiIPSecondWeight = 180000
)

// dimension selects which quota scope a descriptor draws from. It exists
// only during catalog construction; descriptors hold the resolved scope.
type dimension int

const (
	dimSharedAPI dimension = iota
	dimIP
	dimUID
	dimIPSecond
)

var validate = validator.New()

// Catalog is the static registry of every supported endpoint. Construction
// resolves each descriptor's quota scope and validates the definitions; from
// then on the catalog is read-only and safe for concurrent use.
type Catalog struct {
	ExchangeInfo      *Descriptor
	Klines            *Descriptor
	SpotTrades        *Descriptor
	Coins             *Descriptor
	UserAssets        *Descriptor
	AccountSnapshot   *Descriptor
	Dividends         *Descriptor
	DustLog           *Descriptor
	WithdrawHistory   *Descriptor
	DepositHistory    *Descriptor
	FiatOrders        *Descriptor
	Rebates           *Descriptor
	ConvertHistory    *Descriptor
	AutoInvestHistory *Descriptor
	FlexibleRewards   *Descriptor

	sharedAPI *ratelimit.Scope
}

// NewCatalog builds a registry with fresh quota scopes, isolated from the
// process-wide Default catalog. Definition mistakes (zero weight, a weight
// no scope could ever grant, an endpoint bound to the wrong scope family)
// surface as a *core.RateLimitConfigError.
func NewCatalog() (*Catalog, error) {
	b := &catalogBuilder{sharedAPI: ratelimit.NewScope(sharedAPIWeight, time.Minute)}

	c := &Catalog{sharedAPI: b.sharedAPI}
	c.ExchangeInfo = b.descriptor("exchangeInfo", "/api/v3/exchangeInfo", http.MethodGet, 20, Public, dimSharedAPI)
	c.Klines = b.descriptor("klines", "/api/v3/klines", http.MethodGet, 2, Public, dimSharedAPI)
	c.SpotTrades = b.descriptor("spotTrades", "/api/v3/myTrades", http.MethodGet, 20, Signed, dimSharedAPI)
	c.Coins = b.descriptor("coins", "/sapi/v1/capital/config/getall", http.MethodGet, 10, Signed, dimIP)
	c.UserAssets = b.descriptor("userAssets", "/sapi/v3/asset/getUserAsset", http.MethodPost, 5, Signed, dimIP)
	c.AccountSnapshot = b.descriptor("accountSnapshot", "/sapi/v1/accountSnapshot", http.MethodGet, 2400, Signed, dimIP)
	c.Dividends = b.descriptor("dividends", "/sapi/v1/asset/assetDividend", http.MethodGet, 10, Signed, dimIP)
	c.DustLog = b.descriptor("dustLog", "/sapi/v1/asset/dribblet", http.MethodGet, 1, Signed, dimIP)
	c.WithdrawHistory = b.descriptor("withdrawHistory", "/sapi/v1/capital/withdraw/history", http.MethodGet, 18000, Signed, dimIPSecond)
	c.DepositHistory = b.descriptor("depositHistory", "/sapi/v1/capital/deposit/hisrec", http.MethodGet, 1, Signed, dimIP)
	c.FiatOrders = b.descriptor("fiatOrders", "/sapi/v1/fiat/orders", http.MethodGet, 90000, Signed, dimUID)
	c.Rebates = b.descriptor("rebates", "/sapi/v1/rebate/taxQuery", http.MethodGet, 12000, Signed, dimUID)
	c.ConvertHistory = b.descriptor("convertHistory", "/sapi/v1/convert/tradeFlow", http.MethodGet, 3000, Signed, dimUID)
	c.AutoInvestHistory = b.descriptor("autoInvestHistory", "/sapi/v1/lending/auto-invest/history/list", http.MethodGet, 1, Signed, dimIP)
	c.FlexibleRewards = b.descriptor("flexibleRewards", "/sapi/v1/simple-earn/flexible/history/rewardsRecord", http.MethodGet, 150, Signed, dimIP)

	if b.err != nil {
		return nil, b.err
	}
	return c, nil
}

// All returns every descriptor in the catalog.
func (c *Catalog) All() []*Descriptor {
	return []*Descriptor{
		c.ExchangeInfo,
		c.Klines,
		c.SpotTrades,
		c.Coins,
		c.UserAssets,
		c.AccountSnapshot,
		c.Dividends,
		c.DustLog,
		c.WithdrawHistory,
		c.DepositHistory,
		c.FiatOrders,
		c.Rebates,
		c.ConvertHistory,
		c.AutoInvestHistory,
		c.FlexibleRewards,
	}
}

// catalogBuilder accumulates descriptors and stops at the first definition
// error so NewCatalog reads as a flat table.
type catalogBuilder struct {
	sharedAPI *ratelimit.Scope
	err       error
}

func (b *catalogBuilder) descriptor(name, path, method string, weight int, security Security, dim dimension) *Descriptor {
	if b.err != nil {
		return nil
	}

	d := &Descriptor{
		Name:     name,
		Path:     path,
		Method:   method,
		Weight:   weight,
		Security: security,
	}
	if err := validate.Struct(d); err != nil {
		b.err = &core.RateLimitConfigError{Endpoint: name, Reason: err.Error()}
		return nil
	}

	switch {
	case dim == dimSharedAPI && !strings.HasPrefix(path, "/api/"):
		b.err = &core.RateLimitConfigError{Endpoint: name, Reason: "only /api endpoints may draw from the shared scope"}
		return nil
	case dim != dimSharedAPI && !strings.HasPrefix(path, "/sapi/"):
		b.err = &core.RateLimitConfigError{Endpoint: name, Reason: "dedicated scopes are reserved for /sapi endpoints"}
		return nil
	}

	var scope *ratelimit.Scope
	switch dim {
	case dimSharedAPI:
		scope = b.sharedAPI
	case dimIP:
		scope = ratelimit.NewScope(sapiIPWeight, time.Minute)
	case dimUID:
		scope = ratelimit.NewScope(sapiUIDWeight, time.Minute)
	case dimIPSecond:
		scope = ratelimit.NewScope(sapiIPSecondWeight, time.Second)
	}
	if weight > scope.Capacity() {
		b.err = &core.RateLimitConfigError{
			Endpoint: name,
			Reason:   fmt.Sprintf("weight %d exceeds scope capacity %d", weight, scope.Capacity()),
		}
		return nil
	}

	d.scope = scope
	return d
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the process-wide catalog, built on first use. Clients
// without an explicit catalog share its scopes, so quota accounting spans
// every client in the process the same way the exchange meters usage per
// key and IP rather than per client instance.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = NewCatalog()
	})
	return defaultCatalog, defaultErr
}
