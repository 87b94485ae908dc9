package returns

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"lpreturns/internal/model"
)

var (
	usdcToken = common.HexToAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	wethToken = common.HexToAddress("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")
	miscToken = common.HexToAddress("0x1111111111111111111111111111111111111111")
)

func TestNormalizeEarlyPricesOverrides(t *testing.T) {
	position := model.Position{
		Timestamp:      PriceDiscoveryStartTimestamp - 1000,
		Token0:         usdcToken,
		Token1:         wethToken,
		Token0PriceUSD: 17.5,
		Token1PriceUSD: 0.004,
	}

	normalized := NormalizeEarlyPrices(position)

	require.Equal(t, 1.0, normalized.Token0PriceUSD)
	require.Equal(t, 203.0, normalized.Token1PriceUSD)
	// the input stays untouched
	require.Equal(t, 17.5, position.Token0PriceUSD)
	require.Equal(t, 0.004, position.Token1PriceUSD)
}

func TestNormalizeEarlyPricesUnmatchedToken(t *testing.T) {
	position := model.Position{
		Timestamp:      PriceDiscoveryStartTimestamp - 1000,
		Token0:         miscToken,
		Token1:         usdcToken,
		Token0PriceUSD: 42,
		Token1PriceUSD: 0.98,
	}

	normalized := NormalizeEarlyPrices(position)

	require.Equal(t, 42.0, normalized.Token0PriceUSD)
	require.Equal(t, 1.0, normalized.Token1PriceUSD)
}

func TestNormalizeEarlyPricesAfterDiscovery(t *testing.T) {
	position := model.Position{
		Timestamp:      PriceDiscoveryStartTimestamp,
		Token0:         usdcToken,
		Token1:         wethToken,
		Token0PriceUSD: 0.97,
		Token1PriceUSD: 210,
	}

	require.Equal(t, position, NormalizeEarlyPrices(position))
}

func TestNormalizeEarlyPricesIdempotent(t *testing.T) {
	position := model.Position{
		Timestamp:      PriceDiscoveryStartTimestamp - 86400,
		Token0:         wethToken,
		Token1:         miscToken,
		Token0PriceUSD: 190,
		Token1PriceUSD: 3,
	}

	once := NormalizeEarlyPrices(position)
	twice := NormalizeEarlyPrices(once)

	require.Equal(t, once, twice)
}
