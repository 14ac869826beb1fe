// Package binance implements an asynchronous, rate-limited client for the
// Binance REST API.
//
// The package includes:
//   - Client: typed operations for market data, account trades, and wallet
//     history
//   - request orchestration that splits oversized time ranges, id-cursor
//     listings, and paginated reports into sub-requests, running independent
//     ones concurrently without breaching per-endpoint quotas
//   - HMAC-SHA256 request signing with recvWindow handling
//
// Example usage:
//
//	client, err := binance.New(binance.WithCredentials(apiKey, apiSecret))
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	klines, err := client.Klines(ctx, "BTC/USDT", "5m", since, until)
package binance
