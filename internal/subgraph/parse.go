package subgraph

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"lpreturns/internal/model"
)

// The subgraph serializes every numeric entity field as a decimal string;
// these records mirror that wire shape before conversion into model types.

type tokenIDRecord struct {
	ID string `json:"id"`
}

type pairTokensRecord struct {
	Token0 tokenIDRecord `json:"token0"`
	Token1 tokenIDRecord `json:"token1"`
}

type liquidityEventRecord struct {
	Timestamp string           `json:"timestamp"`
	Amount0   string           `json:"amount0"`
	Amount1   string           `json:"amount1"`
	AmountUSD string           `json:"amountUSD"`
	Pair      pairTokensRecord `json:"pair"`
}

type positionSnapshotRecord struct {
	Timestamp                 int64            `json:"timestamp"`
	LiquidityTokenBalance     string           `json:"liquidityTokenBalance"`
	LiquidityTokenTotalSupply string           `json:"liquidityTokenTotalSupply"`
	Reserve0                  string           `json:"reserve0"`
	Reserve1                  string           `json:"reserve1"`
	ReserveUSD                string           `json:"reserveUSD"`
	Token0PriceUSD            string           `json:"token0PriceUSD"`
	Token1PriceUSD            string           `json:"token1PriceUSD"`
	Pair                      pairTokensRecord `json:"pair"`
}

type derivedTokenRecord struct {
	ID         string `json:"id"`
	DerivedETH string `json:"derivedETH"`
}

type pairRecord struct {
	ID          string             `json:"id"`
	TotalSupply string             `json:"totalSupply"`
	Reserve0    string             `json:"reserve0"`
	Reserve1    string             `json:"reserve1"`
	ReserveUSD  string             `json:"reserveUSD"`
	Token0      derivedTokenRecord `json:"token0"`
	Token1      derivedTokenRecord `json:"token1"`
}

type pairDayRecord struct {
	Date        int64  `json:"date"`
	TotalSupply string `json:"totalSupply"`
	Reserve0    string `json:"reserve0"`
	Reserve1    string `json:"reserve1"`
	ReserveUSD  string `json:"reserveUSD"`
}

func parseFloat(field, value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, value, err)
	}
	return parsed, nil
}

func parseInt64(field, value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, value, err)
	}
	return parsed, nil
}

func parseAddress(field, value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("parse %s: invalid address %q", field, value)
	}
	return common.HexToAddress(value), nil
}

func parseLiquidityEvents(records []liquidityEventRecord) ([]model.LiquidityEvent, error) {
	events := make([]model.LiquidityEvent, 0, len(records))
	for _, record := range records {
		timestamp, err := parseInt64("timestamp", record.Timestamp)
		if err != nil {
			return nil, err
		}
		amount0, err := parseFloat("amount0", record.Amount0)
		if err != nil {
			return nil, err
		}
		amount1, err := parseFloat("amount1", record.Amount1)
		if err != nil {
			return nil, err
		}
		amountUSD, err := parseFloat("amountUSD", record.AmountUSD)
		if err != nil {
			return nil, err
		}
		token0, err := parseAddress("token0", record.Pair.Token0.ID)
		if err != nil {
			return nil, err
		}
		token1, err := parseAddress("token1", record.Pair.Token1.ID)
		if err != nil {
			return nil, err
		}

		events = append(events, model.LiquidityEvent{
			Timestamp: timestamp,
			Token0:    token0,
			Token1:    token1,
			Amount0:   amount0,
			Amount1:   amount1,
			AmountUSD: amountUSD,
		})
	}
	return events, nil
}

func parsePositionSnapshots(records []positionSnapshotRecord) ([]model.Position, error) {
	positions := make([]model.Position, 0, len(records))
	for _, record := range records {
		position := model.Position{Timestamp: record.Timestamp}

		var err error
		if position.Token0, err = parseAddress("token0", record.Pair.Token0.ID); err != nil {
			return nil, err
		}
		if position.Token1, err = parseAddress("token1", record.Pair.Token1.ID); err != nil {
			return nil, err
		}
		if position.LiquidityTokenBalance, err = parseFloat("liquidityTokenBalance", record.LiquidityTokenBalance); err != nil {
			return nil, err
		}
		if position.LiquidityTokenTotalSupply, err = parseFloat("liquidityTokenTotalSupply", record.LiquidityTokenTotalSupply); err != nil {
			return nil, err
		}
		if position.Reserve0, err = parseFloat("reserve0", record.Reserve0); err != nil {
			return nil, err
		}
		if position.Reserve1, err = parseFloat("reserve1", record.Reserve1); err != nil {
			return nil, err
		}
		if position.ReserveUSD, err = parseFloat("reserveUSD", record.ReserveUSD); err != nil {
			return nil, err
		}
		if position.Token0PriceUSD, err = parseFloat("token0PriceUSD", record.Token0PriceUSD); err != nil {
			return nil, err
		}
		if position.Token1PriceUSD, err = parseFloat("token1PriceUSD", record.Token1PriceUSD); err != nil {
			return nil, err
		}

		positions = append(positions, position)
	}
	return positions, nil
}

func parsePair(record pairRecord) (model.Pair, error) {
	pair := model.Pair{}

	var err error
	if pair.ID, err = parseAddress("pair id", record.ID); err != nil {
		return model.Pair{}, err
	}
	if pair.TotalSupply, err = parseFloat("totalSupply", record.TotalSupply); err != nil {
		return model.Pair{}, err
	}
	if pair.Reserve0, err = parseFloat("reserve0", record.Reserve0); err != nil {
		return model.Pair{}, err
	}
	if pair.Reserve1, err = parseFloat("reserve1", record.Reserve1); err != nil {
		return model.Pair{}, err
	}
	if pair.ReserveUSD, err = parseFloat("reserveUSD", record.ReserveUSD); err != nil {
		return model.Pair{}, err
	}
	if pair.Token0.ID, err = parseAddress("token0 id", record.Token0.ID); err != nil {
		return model.Pair{}, err
	}
	if pair.Token0.DerivedETH, err = parseFloat("token0 derivedETH", record.Token0.DerivedETH); err != nil {
		return model.Pair{}, err
	}
	if pair.Token1.ID, err = parseAddress("token1 id", record.Token1.ID); err != nil {
		return model.Pair{}, err
	}
	if pair.Token1.DerivedETH, err = parseFloat("token1 derivedETH", record.Token1.DerivedETH); err != nil {
		return model.Pair{}, err
	}

	return pair, nil
}

func parsePairDay(record pairDayRecord) (model.ShareValue, error) {
	value := model.ShareValue{Timestamp: record.Date}

	var err error
	if value.TotalSupply, err = parseFloat("totalSupply", record.TotalSupply); err != nil {
		return model.ShareValue{}, err
	}
	if value.Reserve0, err = parseFloat("reserve0", record.Reserve0); err != nil {
		return model.ShareValue{}, err
	}
	if value.Reserve1, err = parseFloat("reserve1", record.Reserve1); err != nil {
		return model.ShareValue{}, err
	}
	if value.ReserveUSD, err = parseFloat("reserveUSD", record.ReserveUSD); err != nil {
		return model.ShareValue{}, err
	}

	// constant-product pools hold equal USD value per side
	if value.Reserve0 > 0 {
		value.Token0PriceUSD = value.ReserveUSD / 2 / value.Reserve0
	}
	if value.Reserve1 > 0 {
		value.Token1PriceUSD = value.ReserveUSD / 2 / value.Reserve1
	}
	if value.TotalSupply > 0 {
		value.SharePriceUSD = value.ReserveUSD / value.TotalSupply
	}

	return value, nil
}
