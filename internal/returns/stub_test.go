package returns

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"lpreturns/internal/model"
)

// stubSource serves canned data and records the requested day grid.
type stubSource struct {
	mints     []model.LiquidityEvent
	burns     []model.LiquidityEvent
	snapshots []model.Position

	shareValue    model.ShareValue
	requestedDays []int64

	err error
}

func (s *stubSource) MintsAndBurns(_ context.Context, _, _ common.Address) ([]model.LiquidityEvent, []model.LiquidityEvent, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.mints, s.burns, nil
}

func (s *stubSource) PositionSnapshots(_ context.Context, _, _ common.Address) ([]model.Position, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.snapshots, nil
}

func (s *stubSource) ShareValues(_ context.Context, _ common.Address, dayTimestamps []int64) ([]model.ShareValue, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.requestedDays = dayTimestamps
	values := make([]model.ShareValue, 0, len(dayTimestamps))
	for _, day := range dayTimestamps {
		value := s.shareValue
		value.Timestamp = day
		values = append(values, value)
	}
	return values, nil
}
