package subgraph

import (
	"testing"

	"lpreturns/internal/model"
)

func TestParseLiquidityEvents(t *testing.T) {
	records := []liquidityEventRecord{
		{
			Timestamp: "1599955200",
			Amount0:   "10.5",
			Amount1:   "0.25",
			AmountUSD: "500",
			Pair: pairTokensRecord{
				Token0: tokenIDRecord{ID: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"},
				Token1: tokenIDRecord{ID: "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"},
			},
		},
	}

	events, err := parseLiquidityEvents(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Timestamp != 1599955200 {
		t.Fatalf("timestamp mismatch: %d", events[0].Timestamp)
	}
	if events[0].Amount0 != 10.5 || events[0].Amount1 != 0.25 || events[0].AmountUSD != 500 {
		t.Fatalf("amounts mismatch: %+v", events[0])
	}
}

func TestParseLiquidityEventsInvalidNumber(t *testing.T) {
	records := []liquidityEventRecord{
		{
			Timestamp: "1599955200",
			Amount0:   "not-a-number",
			Pair: pairTokensRecord{
				Token0: tokenIDRecord{ID: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"},
				Token1: tokenIDRecord{ID: "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"},
			},
		},
	}

	if _, err := parseLiquidityEvents(records); err == nil {
		t.Fatalf("expected error for invalid amount")
	}
}

func TestParseLiquidityEventsInvalidAddress(t *testing.T) {
	records := []liquidityEventRecord{
		{
			Timestamp: "1599955200",
			Pair: pairTokensRecord{
				Token0: tokenIDRecord{ID: "nonsense"},
				Token1: tokenIDRecord{ID: "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"},
			},
		},
	}

	if _, err := parseLiquidityEvents(records); err == nil {
		t.Fatalf("expected error for invalid address")
	}
}

func TestParsePairDayDerivedFields(t *testing.T) {
	record := pairDayRecord{
		Date:        1599955200,
		TotalSupply: "500",
		Reserve0:    "1000",
		Reserve1:    "4",
		ReserveUSD:  "2000",
	}

	value, err := parsePairDay(record)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// each side holds half the pool value
	if value.Token0PriceUSD != 1 {
		t.Fatalf("token0 price mismatch: %v", value.Token0PriceUSD)
	}
	if value.Token1PriceUSD != 250 {
		t.Fatalf("token1 price mismatch: %v", value.Token1PriceUSD)
	}
	if value.SharePriceUSD != 4 {
		t.Fatalf("share price mismatch: %v", value.SharePriceUSD)
	}
}

func TestAlignShareValuesCarryForward(t *testing.T) {
	const day = int64(86400)
	records := []model.ShareValue{
		{Timestamp: 10 * day, ReserveUSD: 100},
		{Timestamp: 12 * day, ReserveUSD: 300},
	}
	days := []int64{9 * day, 10 * day, 11 * day, 12 * day, 13 * day}

	aligned := alignShareValues(records, days)

	if len(aligned) != len(days) {
		t.Fatalf("expected %d values, got %d", len(days), len(aligned))
	}

	wantUSD := []float64{100, 100, 100, 300, 300}
	for i, value := range aligned {
		if value.Timestamp != days[i] {
			t.Fatalf("day %d: timestamp %d, want %d", i, value.Timestamp, days[i])
		}
		if value.ReserveUSD != wantUSD[i] {
			t.Fatalf("day %d: reserveUSD %v, want %v", i, value.ReserveUSD, wantUSD[i])
		}
	}
}
