package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lpreturns/internal/model"
)

// Store provides Postgres persistence for computed returns.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertDailyReturns inserts or updates one row per day of a provider's
// return history on a pair.
func (s *Store) UpsertDailyReturns(ctx context.Context, user, pair string, points []model.DailyReturnPoint) error {
	if len(points) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, p := range points {
		batch.Queue(`
			INSERT INTO lp_daily_returns (
				user_address, pair_address, day_ts, usd_value,
				net_return, asset_return, uniswap_return,
				settled_net_return, settled_asset_return, settled_uniswap_return,
				imp_loss, fees, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,now(),now())
			ON CONFLICT (user_address, pair_address, day_ts)
			DO UPDATE SET
				usd_value = EXCLUDED.usd_value,
				net_return = EXCLUDED.net_return,
				asset_return = EXCLUDED.asset_return,
				uniswap_return = EXCLUDED.uniswap_return,
				settled_net_return = EXCLUDED.settled_net_return,
				settled_asset_return = EXCLUDED.settled_asset_return,
				settled_uniswap_return = EXCLUDED.settled_uniswap_return,
				imp_loss = EXCLUDED.imp_loss,
				fees = EXCLUDED.fees,
				updated_at = now()
		`,
			user,
			pair,
			p.Date,
			p.USDValue,
			p.NetReturn,
			p.AssetReturn,
			p.UniswapReturn,
			p.SettledNetReturn,
			p.SettledAssetReturn,
			p.SettledUniswapReturn,
			p.ImpLoss,
			p.Fees,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range points {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// UpsertLifetimeReturns inserts or updates the provider's lifetime summary
// row for a pair.
func (s *Store) UpsertLifetimeReturns(ctx context.Context, user, pair string, lr model.LifetimeReturns) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO lp_lifetime_returns (
			user_address, pair_address, principal_usd, principal_amount0, principal_amount1,
			hodl_sum, hodl_return, net_return, uniswap_return, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,now(),now())
		ON CONFLICT (user_address, pair_address)
		DO UPDATE SET
			principal_usd = EXCLUDED.principal_usd,
			principal_amount0 = EXCLUDED.principal_amount0,
			principal_amount1 = EXCLUDED.principal_amount1,
			hodl_sum = EXCLUDED.hodl_sum,
			hodl_return = EXCLUDED.hodl_return,
			net_return = EXCLUDED.net_return,
			uniswap_return = EXCLUDED.uniswap_return,
			updated_at = now()
	`,
		user,
		pair,
		lr.Principal.USD,
		lr.Principal.Amount0,
		lr.Principal.Amount1,
		lr.Hodl.Sum,
		lr.Hodl.Return,
		lr.Net.Return,
		lr.Uniswap.Return,
	)
	return err
}
