package model

import "github.com/ethereum/go-ethereum/common"

// Position is a point-in-time snapshot of a liquidity provider's stake in a
// pair. Ownership fraction is LiquidityTokenBalance divided by
// LiquidityTokenTotalSupply; a zero total supply makes the position
// unpriceable and must be rejected before any window math runs.
type Position struct {
	Timestamp                 int64          `json:"timestamp"`
	Token0                    common.Address `json:"token0"`
	Token1                    common.Address `json:"token1"`
	LiquidityTokenBalance     float64        `json:"liquidity_token_balance"`
	LiquidityTokenTotalSupply float64        `json:"liquidity_token_total_supply"`
	Reserve0                  float64        `json:"reserve0"`
	Reserve1                  float64        `json:"reserve1"`
	ReserveUSD                float64        `json:"reserve_usd"`
	Token0PriceUSD            float64        `json:"token0_price_usd"`
	Token1PriceUSD            float64        `json:"token1_price_usd"`
}
