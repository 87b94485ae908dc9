package subgraph

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/machinebox/graphql"
	"go.uber.org/zap"

	"lpreturns/internal/model"
)

// Client queries a Uniswap-V2-compatible subgraph for pair and position
// data. Retries live here; the computation layer sees only final errors.
type Client struct {
	gql          *graphql.Client
	logger       *zap.Logger
	maxRetries   int
	retryBackoff time.Duration
}

// Config holds connection settings for the subgraph endpoint.
type Config struct {
	URL          string
	MaxRetries   int
	RetryBackoff time.Duration
	HTTPTimeout  time.Duration
}

// NewClient creates a subgraph client for the endpoint URL.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("subgraph url is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		gql:          graphql.NewClient(cfg.URL, graphql.WithHTTPClient(&http.Client{Timeout: timeout})),
		logger:       logger,
		maxRetries:   cfg.MaxRetries,
		retryBackoff: cfg.RetryBackoff,
	}, nil
}

func (c *Client) run(ctx context.Context, name string, req *graphql.Request, out interface{}) error {
	return withRetry(ctx, c.maxRetries, c.retryBackoff, func(ctx context.Context) error {
		err := c.gql.Run(ctx, req, out)
		if err != nil {
			c.logger.Warn("subgraph query failed", zap.String("query", name), zap.Error(err))
		}
		return err
	})
}

// subgraph entity ids are lowercase hex
func idOf(address common.Address) string {
	return strings.ToLower(address.Hex())
}

const mintsBurnsQuery = `
query ($user: Bytes!, $pair: String!) {
  mints(where: { to: $user, pair: $pair }) {
    timestamp
    amount0
    amount1
    amountUSD
    pair { token0 { id } token1 { id } }
  }
  burns(where: { sender: $user, pair: $pair }) {
    timestamp
    amount0
    amount1
    amountUSD
    pair { token0 { id } token1 { id } }
  }
}`

// MintsAndBurns returns every liquidity deposit and withdrawal the user
// made on the pair.
func (c *Client) MintsAndBurns(ctx context.Context, user, pair common.Address) ([]model.LiquidityEvent, []model.LiquidityEvent, error) {
	req := graphql.NewRequest(mintsBurnsQuery)
	req.Var("user", idOf(user))
	req.Var("pair", idOf(pair))

	var resp struct {
		Mints []liquidityEventRecord `json:"mints"`
		Burns []liquidityEventRecord `json:"burns"`
	}
	if err := c.run(ctx, "mints_burns", req, &resp); err != nil {
		return nil, nil, fmt.Errorf("query mints and burns: %w", err)
	}

	mints, err := parseLiquidityEvents(resp.Mints)
	if err != nil {
		return nil, nil, fmt.Errorf("parse mints: %w", err)
	}
	burns, err := parseLiquidityEvents(resp.Burns)
	if err != nil {
		return nil, nil, fmt.Errorf("parse burns: %w", err)
	}
	return mints, burns, nil
}

const snapshotsQuery = `
query ($user: String!, $pair: String!) {
  liquidityPositionSnapshots(first: 1000, where: { user: $user, pair: $pair }) {
    timestamp
    liquidityTokenBalance
    liquidityTokenTotalSupply
    reserve0
    reserve1
    reserveUSD
    token0PriceUSD
    token1PriceUSD
    pair { token0 { id } token1 { id } }
  }
}`

// PositionSnapshots returns the user's historical position snapshots for
// the pair, in subgraph order.
func (c *Client) PositionSnapshots(ctx context.Context, user, pair common.Address) ([]model.Position, error) {
	req := graphql.NewRequest(snapshotsQuery)
	req.Var("user", idOf(user))
	req.Var("pair", idOf(pair))

	var resp struct {
		Snapshots []positionSnapshotRecord `json:"liquidityPositionSnapshots"`
	}
	if err := c.run(ctx, "position_snapshots", req, &resp); err != nil {
		return nil, fmt.Errorf("query position snapshots: %w", err)
	}

	return parsePositionSnapshots(resp.Snapshots)
}

const pairQuery = `
query ($pair: ID!) {
  pair(id: $pair) {
    id
    totalSupply
    reserve0
    reserve1
    reserveUSD
    token0 { id derivedETH }
    token1 { id derivedETH }
  }
}`

// PairState returns the pair's live state.
func (c *Client) PairState(ctx context.Context, pair common.Address) (model.Pair, error) {
	req := graphql.NewRequest(pairQuery)
	req.Var("pair", idOf(pair))

	var resp struct {
		Pair *pairRecord `json:"pair"`
	}
	if err := c.run(ctx, "pair_state", req, &resp); err != nil {
		return model.Pair{}, fmt.Errorf("query pair state: %w", err)
	}
	if resp.Pair == nil {
		return model.Pair{}, fmt.Errorf("pair %s not found", idOf(pair))
	}

	return parsePair(*resp.Pair)
}

const ethPriceQuery = `
query {
  bundle(id: "1") {
    ethPrice
  }
}`

// EthPriceUSD returns the subgraph's current native asset USD price.
func (c *Client) EthPriceUSD(ctx context.Context) (float64, error) {
	req := graphql.NewRequest(ethPriceQuery)

	var resp struct {
		Bundle *struct {
			EthPrice string `json:"ethPrice"`
		} `json:"bundle"`
	}
	if err := c.run(ctx, "eth_price", req, &resp); err != nil {
		return 0, fmt.Errorf("query eth price: %w", err)
	}
	if resp.Bundle == nil {
		return 0, fmt.Errorf("eth price bundle not found")
	}

	return parseFloat("ethPrice", resp.Bundle.EthPrice)
}
