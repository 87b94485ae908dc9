package subgraph

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/machinebox/graphql"

	"lpreturns/internal/model"
)

const pairDayPageSize = 1000

const pairDaysQuery = `
query ($pair: Bytes!, $until: Int!, $skip: Int!) {
  pairDayDatas(first: 1000, skip: $skip, orderBy: date, orderDirection: asc,
    where: { pairAddress: $pair, date_lte: $until }) {
    date
    totalSupply
    reserve0
    reserve1
    reserveUSD
  }
}`

// ShareValues returns one pool valuation record per requested day
// timestamp, aligned by index. Days with no on-chain activity are
// backfilled by carrying the latest earlier day record forward; days before
// the pool's first record get that first record.
func (c *Client) ShareValues(ctx context.Context, pair common.Address, dayTimestamps []int64) ([]model.ShareValue, error) {
	if len(dayTimestamps) == 0 {
		return nil, nil
	}
	until := dayTimestamps[len(dayTimestamps)-1]

	records, err := c.fetchPairDays(ctx, pair, until)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no day data for pair %s", idOf(pair))
	}

	values := make([]model.ShareValue, 0, len(records))
	for _, record := range records {
		value, err := parsePairDay(record)
		if err != nil {
			return nil, fmt.Errorf("parse pair day data: %w", err)
		}
		values = append(values, value)
	}

	return alignShareValues(values, dayTimestamps), nil
}

func (c *Client) fetchPairDays(ctx context.Context, pair common.Address, until int64) ([]pairDayRecord, error) {
	var records []pairDayRecord
	for skip := 0; ; skip += pairDayPageSize {
		req := graphql.NewRequest(pairDaysQuery)
		req.Var("pair", idOf(pair))
		req.Var("until", until)
		req.Var("skip", skip)

		var resp struct {
			PairDayDatas []pairDayRecord `json:"pairDayDatas"`
		}
		if err := c.run(ctx, "pair_day_datas", req, &resp); err != nil {
			return nil, fmt.Errorf("query pair day data: %w", err)
		}

		records = append(records, resp.PairDayDatas...)
		if len(resp.PairDayDatas) < pairDayPageSize {
			return records, nil
		}
	}
}

// alignShareValues maps ascending day records onto the requested day grid,
// carrying the last known record forward across gaps.
func alignShareValues(records []model.ShareValue, dayTimestamps []int64) []model.ShareValue {
	aligned := make([]model.ShareValue, 0, len(dayTimestamps))
	last := records[0]
	idx := 0
	for _, day := range dayTimestamps {
		for idx < len(records) && records[idx].Timestamp <= day {
			last = records[idx]
			idx++
		}
		value := last
		value.Timestamp = day
		aligned = append(aligned, value)
	}
	return aligned
}
