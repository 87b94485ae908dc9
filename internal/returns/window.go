package returns

import (
	"math"

	"lpreturns/internal/model"
)

// WindowMetrics decomposes the value change of a stake between two
// positions bounding a time window.
//
// End-of-window ownership reuses the starting liquidity token balance
// against the end total supply, so the window measures what happened to the
// stake held at t0 under dilution, not a re-queried balance. The no-fee
// baseline comes from the constant-product assumption at t1 prices; its
// divergence from actual t1 amounts is the fee take, and its USD shortfall
// against the hodl valuation is the impermanent loss.
//
// Inputs must satisfy ValidatePosition; this function does not guard
// against a zero total supply itself.
func WindowMetrics(t0, t1 model.Position) model.ReturnMetrics {
	t0Ownership := t0.LiquidityTokenBalance / t0.LiquidityTokenTotalSupply
	t1Ownership := t0.LiquidityTokenBalance / t1.LiquidityTokenTotalSupply

	token0AmountT0 := t0Ownership * t0.Reserve0
	token1AmountT0 := t0Ownership * t0.Reserve1

	token0AmountT1 := t1Ownership * t1.Reserve0
	token1AmountT1 := t1Ownership * t1.Reserve1

	var token0NoFees, token1NoFees float64
	if t1.Token1PriceUSD != 0 {
		sqrK := math.Sqrt(t1.Token1PriceUSD)
		token0NoFees = sqrK * math.Sqrt(t1.Token1PriceUSD)
		token1NoFees = sqrK / math.Sqrt(t1.Token1PriceUSD)
	}
	noFeesUSD := token0NoFees*t1.Token0PriceUSD + token1NoFees*t1.Token1PriceUSD

	feesToken0 := token0AmountT1 - token0NoFees
	feesToken1 := token1AmountT1 - token1NoFees
	feesUSD := feesToken0*t1.Token0PriceUSD + feesToken1*t1.Token1PriceUSD

	// the t0 token amounts never change, only the prices valuing them
	assetValueT0 := token0AmountT0*t0.Token0PriceUSD + token1AmountT0*t0.Token1PriceUSD
	assetValueT1 := token0AmountT0*t1.Token0PriceUSD + token1AmountT0*t1.Token1PriceUSD

	impLossUSD := noFeesUSD - assetValueT1

	netValueT0 := t0Ownership * t0.ReserveUSD
	netValueT1 := t1Ownership * t1.ReserveUSD

	return model.ReturnMetrics{
		HodlReturn:    assetValueT1 - assetValueT0,
		NetReturn:     netValueT1 - netValueT0,
		UniswapReturn: feesUSD + impLossUSD,
		ImpLoss:       impLossUSD,
		Fees:          feesUSD,
	}
}
