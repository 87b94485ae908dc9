package returns

import "lpreturns/internal/model"

// PrincipalFromEvents nets a user's mints and burns into the principal
// contributed to a pair.
//
// Events touching a pinned stablecoin from before price discovery are
// valued at twice the stablecoin side instead of the reported USD amount:
// the reported figure is unusable that early, and the paired side matched
// the stablecoin in value at deposit time. Token-unit accumulators are
// plain sums of mints minus burns.
func PrincipalFromEvents(mints, burns []model.LiquidityEvent) model.Principal {
	var principal model.Principal

	for _, mint := range mints {
		switch {
		case IsStablecoinOverride(mint.Token0) && mint.Timestamp < PriceDiscoveryStartTimestamp:
			principal.USD += 2 * mint.Amount0
		case IsStablecoinOverride(mint.Token1) && mint.Timestamp < PriceDiscoveryStartTimestamp:
			principal.USD += 2 * mint.Amount1
		default:
			principal.USD += mint.AmountUSD
		}
		principal.Amount0 += mint.Amount0
		principal.Amount1 += mint.Amount1
	}

	for _, burn := range burns {
		switch {
		case IsStablecoinOverride(burn.Token0) && burn.Timestamp < PriceDiscoveryStartTimestamp:
			principal.USD -= 2 * burn.Amount0
		case IsStablecoinOverride(burn.Token1) && burn.Timestamp < PriceDiscoveryStartTimestamp:
			principal.USD -= 2 * burn.Amount1
		default:
			principal.USD -= burn.AmountUSD
		}
		principal.Amount0 -= burn.Amount0
		principal.Amount1 -= burn.Amount1
	}

	return principal
}
