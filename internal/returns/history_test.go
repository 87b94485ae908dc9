package returns

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"lpreturns/internal/model"
)

const day0 int64 = 1599955200 // UTC midnight, after price discovery

func historyFixture() (s0, s1 model.Position, source *stubSource) {
	s0 = model.Position{
		Timestamp:                 day0 + 3600,
		Token0:                    miscToken,
		Token1:                    wethToken,
		LiquidityTokenBalance:     100,
		LiquidityTokenTotalSupply: 1000,
		Reserve0:                  500,
		Reserve1:                  500,
		ReserveUSD:                1000,
		Token0PriceUSD:            1,
		Token1PriceUSD:            1,
	}
	s1 = s0
	s1.Timestamp = day0 + daySeconds + 7200
	s1.LiquidityTokenBalance = 200
	s1.LiquidityTokenTotalSupply = 2000
	s1.Reserve0 = 600
	s1.Reserve1 = 600
	s1.ReserveUSD = 1200

	source = &stubSource{
		snapshots: []model.Position{s1, s0}, // unsorted on purpose
		shareValue: model.ShareValue{
			TotalSupply:    1000,
			Reserve0:       500,
			Reserve1:       500,
			ReserveUSD:     1000,
			Token0PriceUSD: 1,
			Token1PriceUSD: 1,
			SharePriceUSD:  1,
		},
	}
	return s0, s1, source
}

func historyCalculator(source *stubSource, now int64) *Calculator {
	calc := NewCalculator(source, nil)
	calc.now = func() time.Time { return time.Unix(now, 0) }
	return calc
}

func TestDailyHistoryDayGrid(t *testing.T) {
	_, _, source := historyFixture()
	now := day0 + 3*daySeconds + 43200 // midday, three full days elapsed

	calc := historyCalculator(source, now)
	points, err := calc.DailyHistory(context.Background(), day0-5*daySeconds, testPairState(), source.snapshots, 2000)
	require.NoError(t, err)

	// start clamps forward to the first snapshot's day; the current day is
	// excluded
	require.Len(t, points, 3)
	require.Equal(t, []int64{day0, day0 + daySeconds, day0 + 2*daySeconds}, source.requestedDays)
	for i, point := range points {
		require.Equal(t, day0+int64(i)*daySeconds, point.Date)
	}
}

func TestDailyHistoryStartAfterFirstSnapshot(t *testing.T) {
	_, _, source := historyFixture()
	now := day0 + 3*daySeconds + 43200

	calc := historyCalculator(source, now)
	points, err := calc.DailyHistory(context.Background(), day0+daySeconds+100, testPairState(), source.snapshots, 2000)
	require.NoError(t, err)

	require.Len(t, points, 2)
	require.Equal(t, day0+daySeconds, points[0].Date)
}

func TestDailyHistoryCommitsOnPositionChange(t *testing.T) {
	s0, s1, source := historyFixture()
	now := day0 + 3*daySeconds + 43200
	pair := testPairState()
	ethPrice := 2000.0

	calc := historyCalculator(source, now)
	points, err := calc.DailyHistory(context.Background(), day0, pair, source.snapshots, ethPrice)
	require.NoError(t, err)
	require.Len(t, points, 3)

	// day 0: the seed snapshot opened the series, nothing commits
	require.Zero(t, points[0].SettledNetReturn)
	require.Zero(t, points[0].SettledAssetReturn)
	require.Zero(t, points[0].SettledUniswapReturn)
	require.InDelta(t, 100, points[0].USDValue, 1e-9)

	// day 1: the second snapshot falls inside the day and commits its window
	committed := WindowMetrics(s0, s1)
	require.InDelta(t, committed.NetReturn, points[1].SettledNetReturn, 1e-9)
	require.InDelta(t, committed.HodlReturn, points[1].SettledAssetReturn, 1e-9)
	require.InDelta(t, committed.UniswapReturn, points[1].SettledUniswapReturn, 1e-9)
	require.InDelta(t, points[1].SettledNetReturn, points[1].NetReturn, 1e-9)
	require.InDelta(t, committed.ImpLoss, points[1].ImpLoss, 1e-9)
	require.InDelta(t, committed.Fees, points[1].Fees, 1e-9)

	// day 2 is the final day: it projects against live pair state without
	// touching the settled totals
	require.InDelta(t, points[1].SettledNetReturn, points[2].SettledNetReturn, 1e-9)
	projected := WindowMetrics(s1, currentPosition(pair, s1.LiquidityTokenBalance, ethPrice, now))
	require.InDelta(t, points[2].SettledNetReturn+projected.NetReturn, points[2].NetReturn, 1e-9)
	require.InDelta(t, 200, points[2].USDValue, 1e-9)
}

func TestDailyHistoryEmptySnapshots(t *testing.T) {
	_, _, source := historyFixture()

	calc := historyCalculator(source, day0+3*daySeconds)
	_, err := calc.DailyHistory(context.Background(), day0, testPairState(), nil, 2000)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrEmptyHistory))
}

func TestDailyHistoryShareValueFetchError(t *testing.T) {
	_, _, source := historyFixture()
	snapshots := source.snapshots
	source.err = errors.New("subgraph unavailable")

	calc := historyCalculator(source, day0+3*daySeconds)
	_, err := calc.DailyHistory(context.Background(), day0, testPairState(), snapshots, 2000)
	require.Error(t, err)
	require.True(t, errors.Is(err, source.err))
}
