package returns

import (
	"errors"
	"fmt"
	"math"

	"lpreturns/internal/model"
)

var (
	// ErrEmptyHistory is returned when a computation needs at least one
	// position snapshot and none exist for the user on the pair.
	ErrEmptyHistory = errors.New("no position snapshots for pair")

	// ErrInvalidPosition marks a position that cannot be priced, such as
	// one with a zero liquidity token total supply.
	ErrInvalidPosition = errors.New("invalid position")
)

// ValidatePosition rejects positions whose fields would poison the window
// arithmetic with NaN or Inf. WindowMetrics assumes validated inputs; both
// orchestrators call this before evaluating a window.
func ValidatePosition(position model.Position) error {
	if position.LiquidityTokenTotalSupply <= 0 {
		return fmt.Errorf("%w: liquidity token total supply %v at %d",
			ErrInvalidPosition, position.LiquidityTokenTotalSupply, position.Timestamp)
	}
	fields := []float64{
		position.LiquidityTokenBalance,
		position.LiquidityTokenTotalSupply,
		position.Reserve0,
		position.Reserve1,
		position.ReserveUSD,
		position.Token0PriceUSD,
		position.Token1PriceUSD,
	}
	for _, value := range fields {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("%w: non-finite field at %d", ErrInvalidPosition, position.Timestamp)
		}
	}
	return nil
}
