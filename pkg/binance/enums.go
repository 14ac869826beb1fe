package binance

// FiatTransactionType selects the direction of fiat order history. The API
// encodes it as a string digit.
type FiatTransactionType string

const (
	FiatDeposit  FiatTransactionType = "0"
	FiatWithdraw FiatTransactionType = "1"
)

// FiatStatus is the lifecycle state the API reports for a fiat order.
type FiatStatus string

const (
	FiatStatusProcessing FiatStatus = "Processing"
	FiatStatusCompleted  FiatStatus = "Completed"
	FiatStatusFailed     FiatStatus = "Failed"
	FiatStatusRefunded   FiatStatus = "Refunded"
	FiatStatusExpired    FiatStatus = "Expired"
)

// SnapshotType selects which account an accountSnapshot covers.
type SnapshotType string

const (
	SnapshotSpot    SnapshotType = "SPOT"
	SnapshotMargin  SnapshotType = "MARGIN"
	SnapshotFutures SnapshotType = "FUTURES"
)

// RewardType selects which flexible-earn reward records to list.
type RewardType string

const (
	RewardBonus    RewardType = "BONUS"
	RewardRealtime RewardType = "REALTIME"
	RewardRewards  RewardType = "REWARDS"
)

// SymbolStatus is the trading state of a symbol in exchange information.
type SymbolStatus string

const (
	SymbolPreTrading   SymbolStatus = "PRE_TRADING"
	SymbolTrading      SymbolStatus = "TRADING"
	SymbolPostTrading  SymbolStatus = "POST_TRADING"
	SymbolEndOfDay     SymbolStatus = "END_OF_DAY"
	SymbolHalt         SymbolStatus = "HALT"
	SymbolAuctionMatch SymbolStatus = "AUCTION_MATCH"
	SymbolBreak        SymbolStatus = "BREAK"
)
