package returns

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"lpreturns/internal/model"
)

const daySeconds = 86400

// runningReturns carries the committed position and cumulative totals
// through the per-day fold. Totals only advance on days where a real
// on-chain position change closed the window, so overlapping projected
// windows are never double counted.
type runningReturns struct {
	lastUpdated   int64
	position      model.Position
	assetReturn   float64
	netReturn     float64
	uniswapReturn float64
}

// dayInputs bounds one day's transition of the fold.
type dayInputs struct {
	dayTimestamp int64
	shareValue   model.ShareValue
	finalDay     bool
	current      model.Position
	snapshots    []model.Position
}

// DailyHistory produces one return record per whole UTC day, from the later
// of startTimestamp and the first snapshot up to but excluding the current
// day. Day values for days without an on-chain event come from the data
// source's backfilled share-value series; the final day closes against the
// pair's live state instead.
func (c *Calculator) DailyHistory(ctx context.Context, startTimestamp int64, pair model.Pair, snapshots []model.Position, ethPriceUSD float64) ([]model.DailyReturnPoint, error) {
	if c.source == nil {
		return nil, fmt.Errorf("data source is nil")
	}
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("%w: daily history needs at least one snapshot", ErrEmptyHistory)
	}

	sorted := make([]model.Position, len(snapshots))
	copy(sorted, snapshots)
	sortSnapshots(sorted)

	dayStart := dayFloor(startTimestamp)
	if first := dayFloor(sorted[0].Timestamp); first > dayStart {
		dayStart = first
	}
	currentDay := dayFloor(c.now().Unix())
	if currentDay <= dayStart {
		return nil, nil
	}

	dayTimestamps := make([]int64, 0, (currentDay-dayStart)/daySeconds)
	for day := dayStart; day < currentDay; day += daySeconds {
		dayTimestamps = append(dayTimestamps, day)
	}

	shareValues, err := c.source.ShareValues(ctx, pair.ID, dayTimestamps)
	if err != nil {
		return nil, fmt.Errorf("fetch share values: %w", err)
	}
	if len(shareValues) != len(dayTimestamps) {
		return nil, fmt.Errorf("share value series has %d records, want %d", len(shareValues), len(dayTimestamps))
	}

	if err := ValidatePosition(sorted[0]); err != nil {
		return nil, err
	}
	state := runningReturns{
		lastUpdated: sorted[0].Timestamp,
		position:    sorted[0],
	}

	history := make([]model.DailyReturnPoint, 0, len(dayTimestamps))
	commits := 0
	for i, dayTimestamp := range dayTimestamps {
		in := dayInputs{
			dayTimestamp: dayTimestamp,
			shareValue:   shareValues[i],
			finalDay:     i == len(dayTimestamps)-1,
			snapshots:    sorted,
		}
		if in.finalDay {
			in.current = currentPosition(pair, state.position.LiquidityTokenBalance, ethPriceUSD, c.now().Unix())
		}

		point, next, err := dailyStep(state, in)
		if err != nil {
			return nil, err
		}
		if next.lastUpdated > state.lastUpdated {
			commits++
		}
		state = next
		history = append(history, point)
	}

	c.logger.Debug("daily history computed",
		zap.String("pair", pair.ID.Hex()),
		zap.Int("days", len(history)),
		zap.Int("position_changes", commits),
	)

	return history, nil
}

// dailyStep evaluates one day's window against the running state and
// returns the emitted point together with the advanced state.
func dailyStep(state runningReturns, in dayInputs) (model.DailyReturnPoint, runningReturns, error) {
	ceiling := in.dayTimestamp + daySeconds

	t0 := state.position
	t1 := model.Position{
		Timestamp:                 in.shareValue.Timestamp,
		Token0:                    t0.Token0,
		Token1:                    t0.Token1,
		LiquidityTokenBalance:     t0.LiquidityTokenBalance,
		LiquidityTokenTotalSupply: in.shareValue.TotalSupply,
		Reserve0:                  in.shareValue.Reserve0,
		Reserve1:                  in.shareValue.Reserve1,
		ReserveUSD:                in.shareValue.ReserveUSD,
		Token0PriceUSD:            in.shareValue.Token0PriceUSD,
		Token1PriceUSD:            in.shareValue.Token1PriceUSD,
	}
	if in.finalDay {
		t1 = in.current
	}

	// a position change strictly inside the day ends the window there; the
	// latest such change wins
	committed := false
	for _, snapshot := range in.snapshots {
		if snapshot.Timestamp <= in.dayTimestamp || snapshot.Timestamp >= ceiling {
			continue
		}
		if snapshot.Timestamp > state.lastUpdated {
			state.lastUpdated = snapshot.Timestamp
			t1 = snapshot
			committed = true
		}
	}

	if err := ValidatePosition(t1); err != nil {
		return model.DailyReturnPoint{}, state, err
	}

	metrics := WindowMetrics(t0, t1)

	projectedNet := state.netReturn + metrics.NetReturn
	projectedAsset := state.assetReturn + metrics.HodlReturn
	projectedUniswap := state.uniswapReturn + metrics.UniswapReturn

	if committed {
		state.netReturn = projectedNet
		state.assetReturn = projectedAsset
		state.uniswapReturn = projectedUniswap
		state.position = t1
	}

	point := model.DailyReturnPoint{
		Date:                 in.dayTimestamp,
		USDValue:             t0.LiquidityTokenBalance * in.shareValue.SharePriceUSD,
		NetReturn:            projectedNet,
		AssetReturn:          projectedAsset,
		UniswapReturn:        projectedUniswap,
		SettledNetReturn:     state.netReturn,
		SettledAssetReturn:   state.assetReturn,
		SettledUniswapReturn: state.uniswapReturn,
		ImpLoss:              metrics.ImpLoss,
		Fees:                 metrics.Fees,
	}
	return point, state, nil
}

func dayFloor(ts int64) int64 {
	return ts - ts%daySeconds
}
