package returns

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"lpreturns/internal/model"
)

// DataSource supplies the remote pair data the calculators consume. The
// implementation owns retries; failures propagate to callers unchanged.
type DataSource interface {
	// MintsAndBurns returns every liquidity deposit and withdrawal the
	// user made on the pair.
	MintsAndBurns(ctx context.Context, user, pair common.Address) (mints, burns []model.LiquidityEvent, err error)

	// PositionSnapshots returns the user's historical position snapshots
	// for the pair, in no particular order.
	PositionSnapshots(ctx context.Context, user, pair common.Address) ([]model.Position, error)

	// ShareValues returns one pool valuation record per requested day
	// timestamp, aligned by index, backfilled for days with no on-chain
	// activity.
	ShareValues(ctx context.Context, pair common.Address, dayTimestamps []int64) ([]model.ShareValue, error)
}
