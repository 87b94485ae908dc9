package returns

import (
	"github.com/ethereum/go-ethereum/common"

	"lpreturns/internal/model"
)

// PriceDiscoveryStartTimestamp is the moment subgraph USD prices became
// reliable. Snapshots from before it carry garbage oracle prices and get
// fixed reference prices instead.
const PriceDiscoveryStartTimestamp = 1589747086

// launchEthPriceUSD is the WETH price at protocol launch, applied to every
// pre-discovery snapshot.
const launchEthPriceUSD = 203

var wethAddress = common.HexToAddress("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")

// stablecoinOverrides are USD-pegged tokens whose price is pinned to 1
// before price discovery.
var stablecoinOverrides = map[common.Address]struct{}{
	common.HexToAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"): {}, // USDC
	common.HexToAddress("0x6b175474e89094c44da98b954eedeac495271d0f"): {}, // DAI
}

// IsStablecoinOverride reports whether the token's price is pinned before
// price discovery.
func IsStablecoinOverride(token common.Address) bool {
	_, ok := stablecoinOverrides[token]
	return ok
}

// NormalizeEarlyPrices returns a copy of the position with token prices
// overridden when the snapshot predates price discovery. Unmatched tokens
// and later snapshots pass through unchanged. The input is never mutated,
// so the same snapshot can safely bound two adjacent windows.
func NormalizeEarlyPrices(position model.Position) model.Position {
	if position.Timestamp >= PriceDiscoveryStartTimestamp {
		return position
	}
	if IsStablecoinOverride(position.Token0) {
		position.Token0PriceUSD = 1
	}
	if IsStablecoinOverride(position.Token1) {
		position.Token1PriceUSD = 1
	}
	if position.Token0 == wethAddress {
		position.Token0PriceUSD = launchEthPriceUSD
	}
	if position.Token1 == wethAddress {
		position.Token1PriceUSD = launchEthPriceUSD
	}
	return position
}
