package binance

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/apd/v3"
)

// ExchangeInfo is the /api/v3/exchangeInfo response.
type ExchangeInfo struct {
	Timezone   string       `json:"timezone"`
	ServerTime int64        `json:"serverTime"`
	Symbols    []SymbolInfo `json:"symbols"`
}

// SymbolInfo describes one trading pair.
type SymbolInfo struct {
	Symbol                 string       `json:"symbol"`
	Status                 SymbolStatus `json:"status"`
	BaseAsset              string       `json:"baseAsset"`
	BaseAssetPrecision     int          `json:"baseAssetPrecision"`
	QuoteAsset             string       `json:"quoteAsset"`
	QuoteAssetPrecision    int          `json:"quoteAssetPrecision"`
	OrderTypes             []string     `json:"orderTypes"`
	IsSpotTradingAllowed   bool         `json:"isSpotTradingAllowed"`
	IsMarginTradingAllowed bool         `json:"isMarginTradingAllowed"`
	Permissions            []string     `json:"permissions"`
	PermissionSets         [][]string   `json:"permissionSets,omitempty"`
}

// Kline is one candlestick. The API returns it as a positional array, so
// decoding is done by hand.
type Kline struct {
	OpenTime            int64
	Open                apd.Decimal
	High                apd.Decimal
	Low                 apd.Decimal
	Close               apd.Decimal
	Volume              apd.Decimal
	CloseTime           int64
	QuoteVolume         apd.Decimal
	TradeCount          int64
	TakerBuyBaseVolume  apd.Decimal
	TakerBuyQuoteVolume apd.Decimal
}

// UnmarshalJSON decodes the positional kline array the API returns.
func (k *Kline) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) < 11 {
		return fmt.Errorf("kline array has %d elements, want at least 11", len(raw))
	}

	k.OpenTime = asInt64(raw[0])
	k.CloseTime = asInt64(raw[6])
	k.TradeCount = asInt64(raw[8])

	fields := []struct {
		dest *apd.Decimal
		val  any
		name string
	}{
		{&k.Open, raw[1], "open"},
		{&k.High, raw[2], "high"},
		{&k.Low, raw[3], "low"},
		{&k.Close, raw[4], "close"},
		{&k.Volume, raw[5], "volume"},
		{&k.QuoteVolume, raw[7], "quote volume"},
		{&k.TakerBuyBaseVolume, raw[9], "taker buy base volume"},
		{&k.TakerBuyQuoteVolume, raw[10], "taker buy quote volume"},
	}
	for _, f := range fields {
		if err := parseDecimalFromAny(f.dest, f.val); err != nil {
			return fmt.Errorf("parse %s: %w", f.name, err)
		}
	}
	return nil
}

// Trade is one account trade from /api/v3/myTrades.
type Trade struct {
	Symbol          string      `json:"symbol"`
	ID              int64       `json:"id"`
	OrderID         int64       `json:"orderId"`
	OrderListID     int64       `json:"orderListId"`
	Price           apd.Decimal `json:"price"`
	Qty             apd.Decimal `json:"qty"`
	QuoteQty        apd.Decimal `json:"quoteQty"`
	Commission      apd.Decimal `json:"commission"`
	CommissionAsset string      `json:"commissionAsset"`
	Time            int64       `json:"time"`
	IsBuyer         bool        `json:"isBuyer"`
	IsMaker         bool        `json:"isMaker"`
	IsBestMatch     bool        `json:"isBestMatch"`
}

// UserAsset is one balance row from /sapi/v3/asset/getUserAsset.
type UserAsset struct {
	Asset        string      `json:"asset"`
	Free         apd.Decimal `json:"free"`
	Locked       apd.Decimal `json:"locked"`
	Freeze       apd.Decimal `json:"freeze"`
	Withdrawing  apd.Decimal `json:"withdrawing"`
	Ipoable      apd.Decimal `json:"ipoable"`
	BTCValuation apd.Decimal `json:"btcValuation"`
}

// Coin describes one currency and its networks from capital/config/getall.
type Coin struct {
	Coin              string        `json:"coin"`
	Name              string        `json:"name"`
	Free              apd.Decimal   `json:"free"`
	Locked            apd.Decimal   `json:"locked"`
	Freeze            apd.Decimal   `json:"freeze"`
	Withdrawing       apd.Decimal   `json:"withdrawing"`
	Trading           bool          `json:"trading"`
	DepositAllEnable  bool          `json:"depositAllEnable"`
	WithdrawAllEnable bool          `json:"withdrawAllEnable"`
	NetworkList       []CoinNetwork `json:"networkList"`
}

// CoinNetwork is one transfer network of a coin.
type CoinNetwork struct {
	Network        string      `json:"network"`
	Coin           string      `json:"coin"`
	IsDefault      bool        `json:"isDefault"`
	DepositEnable  bool        `json:"depositEnable"`
	WithdrawEnable bool        `json:"withdrawEnable"`
	WithdrawFee    apd.Decimal `json:"withdrawFee"`
	WithdrawMin    apd.Decimal `json:"withdrawMin"`
	WithdrawMax    apd.Decimal `json:"withdrawMax"`
}

// AccountSnapshot is the /sapi/v1/accountSnapshot response.
type AccountSnapshot struct {
	Code        int          `json:"code"`
	Msg         string       `json:"msg"`
	SnapshotVos []SnapshotVo `json:"snapshotVos"`
}

// SnapshotVo is one daily snapshot entry.
type SnapshotVo struct {
	Type       string       `json:"type"`
	UpdateTime int64        `json:"updateTime"`
	Data       SnapshotData `json:"data"`
}

// SnapshotData is the balances block inside a snapshot entry.
type SnapshotData struct {
	TotalAssetOfBTC apd.Decimal       `json:"totalAssetOfBtc"`
	Balances        []SnapshotBalance `json:"balances"`
}

// SnapshotBalance is one asset balance inside a snapshot.
type SnapshotBalance struct {
	Asset  string      `json:"asset"`
	Free   apd.Decimal `json:"free"`
	Locked apd.Decimal `json:"locked"`
}

// Dividend is one asset dividend record.
type Dividend struct {
	ID      int64       `json:"id"`
	TranID  int64       `json:"tranId"`
	Asset   string      `json:"asset"`
	Amount  apd.Decimal `json:"amount"`
	DivTime int64       `json:"divTime"`
	EnInfo  string      `json:"enInfo"`
}

// DustLog is the /sapi/v1/asset/dribblet response: every small-balance
// conversion to BNB in the queried window.
type DustLog struct {
	Total              int        `json:"total"`
	UserAssetDribblets []Dribblet `json:"userAssetDribblets"`
}

// Dribblet is one dust conversion event.
type Dribblet struct {
	OperateTime              int64            `json:"operateTime"`
	TotalTransferedAmount    apd.Decimal      `json:"totalTransferedAmount"`
	TotalServiceChargeAmount apd.Decimal      `json:"totalServiceChargeAmount"`
	TransID                  int64            `json:"transId"`
	UserAssetDribbletDetails []DribbletDetail `json:"userAssetDribbletDetails"`
}

// DribbletDetail is one asset inside a dust conversion.
type DribbletDetail struct {
	TransID             int64       `json:"transId"`
	ServiceChargeAmount apd.Decimal `json:"serviceChargeAmount"`
	Amount              apd.Decimal `json:"amount"`
	OperateTime         int64       `json:"operateTime"`
	TransferedAmount    apd.Decimal `json:"transferedAmount"`
	FromAsset           string      `json:"fromAsset"`
}

// Withdrawal is one withdraw record from capital/withdraw/history.
type Withdrawal struct {
	ID             string      `json:"id"`
	Amount         apd.Decimal `json:"amount"`
	TransactionFee apd.Decimal `json:"transactionFee"`
	Coin           string      `json:"coin"`
	Status         int         `json:"status"`
	Address        string      `json:"address"`
	TxID           string      `json:"txId"`
	ApplyTime      string      `json:"applyTime"`
	Network        string      `json:"network"`
	TransferType   int         `json:"transferType"`
	Info           string      `json:"info"`
	ConfirmNo      int         `json:"confirmNo"`
}

// Deposit is one deposit record from capital/deposit/hisrec.
type Deposit struct {
	ID           string      `json:"id"`
	Amount       apd.Decimal `json:"amount"`
	Coin         string      `json:"coin"`
	Network      string      `json:"network"`
	Status       int         `json:"status"`
	Address      string      `json:"address"`
	AddressTag   string      `json:"addressTag"`
	TxID         string      `json:"txId"`
	InsertTime   int64       `json:"insertTime"`
	TransferType int         `json:"transferType"`
	ConfirmTimes string      `json:"confirmTimes"`
}

// FiatOrder is one fiat deposit or withdraw order.
type FiatOrder struct {
	OrderNo         string      `json:"orderNo"`
	FiatCurrency    string      `json:"fiatCurrency"`
	IndicatedAmount apd.Decimal `json:"indicatedAmount"`
	Amount          apd.Decimal `json:"amount"`
	TotalFee        apd.Decimal `json:"totalFee"`
	Method          string      `json:"method"`
	Status          FiatStatus  `json:"status"`
	CreateTime      int64       `json:"createTime"`
	UpdateTime      int64       `json:"updateTime"`
}

// ConvertTrade is one convert transaction from convert/tradeFlow.
type ConvertTrade struct {
	QuoteID      string      `json:"quoteId"`
	OrderID      int64       `json:"orderId"`
	OrderStatus  string      `json:"orderStatus"`
	FromAsset    string      `json:"fromAsset"`
	FromAmount   apd.Decimal `json:"fromAmount"`
	ToAsset      string      `json:"toAsset"`
	ToAmount     apd.Decimal `json:"toAmount"`
	Ratio        apd.Decimal `json:"ratio"`
	InverseRatio apd.Decimal `json:"inverseRatio"`
	CreateTime   int64       `json:"createTime"`
}

// RebateRecord is one spot rebate entry from rebate/taxQuery.
type RebateRecord struct {
	Asset      string      `json:"asset"`
	Type       int         `json:"type"`
	Amount     apd.Decimal `json:"amount"`
	UpdateTime int64       `json:"updateTime"`
}

// AutoInvestTransaction is one auto-invest plan execution.
type AutoInvestTransaction struct {
	ID                  int64       `json:"id"`
	TargetAsset         string      `json:"targetAsset"`
	PlanType            string      `json:"planType"`
	PlanName            string      `json:"planName"`
	PlanID              int64       `json:"planId"`
	TransactionDateTime int64       `json:"transactionDateTime"`
	TransactionStatus   string      `json:"transactionStatus"`
	SourceAsset         string      `json:"sourceAsset"`
	SourceAssetAmount   apd.Decimal `json:"sourceAssetAmount"`
	TargetAssetAmount   apd.Decimal `json:"targetAssetAmount"`
	ExecutionPrice      apd.Decimal `json:"executionPrice"`
	ExecutionType       string      `json:"executionType"`
	Fee                 apd.Decimal `json:"fee"`
	FeeUnit             string      `json:"feeUnit"`
}

// FlexibleReward is one simple-earn flexible reward record.
type FlexibleReward struct {
	Asset     string      `json:"asset"`
	Rewards   apd.Decimal `json:"rewards"`
	ProjectID string      `json:"projectId"`
	Type      string      `json:"type"`
	Time      int64       `json:"time"`
}

func asInt64(v any) int64 {
	f, _ := v.(float64)
	return int64(f)
}

func parseDecimal(dest *apd.Decimal, s string) error {
	if s == "" {
		*dest = apd.Decimal{}
		return nil
	}
	_, _, err := apd.BaseContext.SetString(dest, s)
	if err != nil {
		return fmt.Errorf("set decimal from string: %w", err)
	}
	return nil
}

func parseDecimalFromAny(dest *apd.Decimal, val any) error {
	switch v := val.(type) {
	case string:
		return parseDecimal(dest, v)
	case float64:
		_, _, err := apd.BaseContext.SetString(dest, fmt.Sprintf("%v", v))
		return err
	default:
		return fmt.Errorf("unsupported type for decimal: %T", val)
	}
}
