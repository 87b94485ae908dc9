package returns

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"lpreturns/internal/model"
)

// Calculator computes LP return metrics over data pulled from a DataSource.
type Calculator struct {
	source DataSource
	logger *zap.Logger
	now    func() time.Time
}

// NewCalculator builds a Calculator with its dependencies.
func NewCalculator(source DataSource, logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{
		source: source,
		logger: logger,
		now:    time.Now,
	}
}

// Lifetime computes the user's principal and cumulative returns across the
// full snapshot history on one pair. Each snapshot bounds a window with the
// next one; the last window closes against a synthetic position built from
// the pair's live state at the current ETH price.
func (c *Calculator) Lifetime(ctx context.Context, user common.Address, pair model.Pair, ethPriceUSD float64) (model.LifetimeReturns, error) {
	if c.source == nil {
		return model.LifetimeReturns{}, fmt.Errorf("data source is nil")
	}

	mints, burns, err := c.source.MintsAndBurns(ctx, user, pair.ID)
	if err != nil {
		return model.LifetimeReturns{}, fmt.Errorf("fetch mints and burns: %w", err)
	}
	principal := PrincipalFromEvents(mints, burns)

	history, err := c.source.PositionSnapshots(ctx, user, pair.ID)
	if err != nil {
		return model.LifetimeReturns{}, fmt.Errorf("fetch position snapshots: %w", err)
	}

	result := model.LifetimeReturns{Principal: principal}
	if len(history) == 0 {
		// nothing was ever pooled, so there are no windows to evaluate
		result.Hodl.Sum = principal.USD
		return result, nil
	}

	sortSnapshots(history)

	current := currentPosition(pair, history[len(history)-1].LiquidityTokenBalance, ethPriceUSD, c.now().Unix())

	var totalHodl, totalNet, totalUniswap float64
	for i := range history {
		t0 := NormalizeEarlyPrices(history[i])
		t1 := current
		if i+1 < len(history) {
			t1 = NormalizeEarlyPrices(history[i+1])
		}

		if err := ValidatePosition(t0); err != nil {
			return model.LifetimeReturns{}, err
		}
		if err := ValidatePosition(t1); err != nil {
			return model.LifetimeReturns{}, err
		}

		metrics := WindowMetrics(t0, t1)
		totalHodl += metrics.HodlReturn
		totalNet += metrics.NetReturn
		totalUniswap += metrics.UniswapReturn
	}

	c.logger.Debug("lifetime returns computed",
		zap.String("user", user.Hex()),
		zap.String("pair", pair.ID.Hex()),
		zap.Int("windows", len(history)),
	)

	result.Hodl = model.HodlSummary{Sum: principal.USD + totalHodl, Return: totalHodl}
	result.Net = model.ReturnSummary{Return: totalNet}
	result.Uniswap = model.ReturnSummary{Return: totalUniswap}
	return result, nil
}

// currentPosition synthesizes a position from live pair state. Token prices
// come from each token's ETH-derived price at the current ETH price; the
// balance is carried from the provider's last known snapshot.
func currentPosition(pair model.Pair, balance float64, ethPriceUSD float64, now int64) model.Position {
	return model.Position{
		Timestamp:                 now,
		Token0:                    pair.Token0.ID,
		Token1:                    pair.Token1.ID,
		LiquidityTokenBalance:     balance,
		LiquidityTokenTotalSupply: pair.TotalSupply,
		Reserve0:                  pair.Reserve0,
		Reserve1:                  pair.Reserve1,
		ReserveUSD:                pair.ReserveUSD,
		Token0PriceUSD:            pair.Token0.DerivedETH * ethPriceUSD,
		Token1PriceUSD:            pair.Token1.DerivedETH * ethPriceUSD,
	}
}

func sortSnapshots(history []model.Position) {
	sort.Slice(history, func(i, j int) bool {
		return history[i].Timestamp < history[j].Timestamp
	})
}
