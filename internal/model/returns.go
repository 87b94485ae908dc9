package model

// ReturnMetrics decomposes the USD value change of a stake across one
// window bounded by two positions.
type ReturnMetrics struct {
	HodlReturn    float64 `json:"hodl_return"`
	NetReturn     float64 `json:"net_return"`
	UniswapReturn float64 `json:"uniswap_return"`
	ImpLoss       float64 `json:"imp_loss"`
	Fees          float64 `json:"fees"`
}

// Principal is a user's net contribution into a pair, mints minus burns.
type Principal struct {
	USD     float64 `json:"usd"`
	Amount0 float64 `json:"amount0"`
	Amount1 float64 `json:"amount1"`
}

// HodlSummary reports the hodl side of lifetime returns. Sum is the
// principal USD plus the hodl return.
type HodlSummary struct {
	Sum    float64 `json:"sum"`
	Return float64 `json:"return"`
}

// ReturnSummary reports one cumulative return figure.
type ReturnSummary struct {
	Return float64 `json:"return"`
}

// LifetimeReturns aggregates a provider's returns across the full snapshot
// history on one pair.
type LifetimeReturns struct {
	Principal Principal     `json:"principal"`
	Hodl      HodlSummary   `json:"hodl"`
	Net       ReturnSummary `json:"net"`
	Uniswap   ReturnSummary `json:"uniswap"`
}

// DailyReturnPoint is one day of a provider's return history. The settled
// fields only advance on days where an on-chain position change closed the
// window; the unprefixed return fields additionally project the open
// window's delta for display.
type DailyReturnPoint struct {
	Date                 int64   `json:"date"`
	USDValue             float64 `json:"usd_value"`
	NetReturn            float64 `json:"net_return"`
	AssetReturn          float64 `json:"asset_return"`
	UniswapReturn        float64 `json:"uniswap_return"`
	SettledNetReturn     float64 `json:"settled_net_return"`
	SettledAssetReturn   float64 `json:"settled_asset_return"`
	SettledUniswapReturn float64 `json:"settled_uniswap_return"`
	ImpLoss              float64 `json:"imp_loss"`
	Fees                 float64 `json:"fees"`
}
