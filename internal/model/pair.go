package model

import "github.com/ethereum/go-ethereum/common"

// TokenRef identifies one side of a pair together with its ETH-derived
// price from the subgraph.
type TokenRef struct {
	ID         common.Address `json:"id"`
	DerivedETH float64        `json:"derived_eth"`
}

// Pair is the live state of a pool as reported by the subgraph.
type Pair struct {
	ID          common.Address `json:"id"`
	TotalSupply float64        `json:"total_supply"`
	Reserve0    float64        `json:"reserve0"`
	Reserve1    float64        `json:"reserve1"`
	ReserveUSD  float64        `json:"reserve_usd"`
	Token0      TokenRef       `json:"token0"`
	Token1      TokenRef       `json:"token1"`
}

// LiquidityEvent is a single mint or burn of pair liquidity by a user.
type LiquidityEvent struct {
	Timestamp int64          `json:"timestamp"`
	Token0    common.Address `json:"token0"`
	Token1    common.Address `json:"token1"`
	Amount0   float64        `json:"amount0"`
	Amount1   float64        `json:"amount1"`
	AmountUSD float64        `json:"amount_usd"`
}

// ShareValue is a pool valuation record for one calendar day, backfilled by
// the data source for days with no on-chain activity.
type ShareValue struct {
	Timestamp      int64   `json:"timestamp"`
	TotalSupply    float64 `json:"total_supply"`
	Reserve0       float64 `json:"reserve0"`
	Reserve1       float64 `json:"reserve1"`
	ReserveUSD     float64 `json:"reserve_usd"`
	Token0PriceUSD float64 `json:"token0_price_usd"`
	Token1PriceUSD float64 `json:"token1_price_usd"`
	SharePriceUSD  float64 `json:"share_price_usd"`
}
