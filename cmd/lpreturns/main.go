package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lpreturns/internal/config"
	"lpreturns/internal/returns"
	"lpreturns/internal/storage"
	"lpreturns/internal/storage/postgres"
	"lpreturns/internal/subgraph"
)

func main() {
	root := &cobra.Command{
		Use:          "lpreturns",
		Short:        "LP return metrics over subgraph data",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	returnsCmd := &cobra.Command{
		Use:   "returns",
		Short: "Compute lifetime returns for a user on a pair",
		RunE:  runReturns,
	}

	returnsCmd.Flags().String("subgraph-url", "", "subgraph endpoint URL")
	returnsCmd.Flags().String("user", "", "user address")
	returnsCmd.Flags().String("pair", "", "pair address")
	returnsCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for persisting results")
	returnsCmd.Flags().Int("max-retries", 5, "maximum retry attempts per query")
	returnsCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	returnsCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(returnsCmd)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Compute the daily return history for a user on a pair",
		RunE:  runHistory,
	}

	historyCmd.Flags().String("subgraph-url", "", "subgraph endpoint URL")
	historyCmd.Flags().String("user", "", "user address")
	historyCmd.Flags().String("pair", "", "pair address")
	historyCmd.Flags().String("start", "", "series start (unix seconds or RFC3339, defaults to first snapshot)")
	historyCmd.Flags().String("out", "", "output JSONL path")
	historyCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for persisting results")
	historyCmd.Flags().Int("max-retries", 5, "maximum retry attempts per query")
	historyCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	historyCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(historyCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runReturns(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadReturns(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	user, pair, err := parseAddresses(cfg.User, cfg.Pair)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := subgraph.NewClient(subgraph.Config{
		URL:          cfg.SubgraphURL,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}, logger)
	if err != nil {
		return err
	}

	logger.Info("returns start",
		zap.String("subgraph", cfg.SubgraphURL),
		zap.String("user", user.Hex()),
		zap.String("pair", pair.Hex()),
	)

	pairState, err := client.PairState(ctx, pair)
	if err != nil {
		return err
	}
	ethPrice, err := client.EthPriceUSD(ctx)
	if err != nil {
		return err
	}

	calc := returns.NewCalculator(client, logger)
	result, err := calc.Lifetime(ctx, user, pairState, ethPrice)
	if err != nil {
		return err
	}

	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()

		if err := store.UpsertLifetimeReturns(ctx, user.Hex(), pair.Hex(), result); err != nil {
			return fmt.Errorf("store lifetime returns: %w", err)
		}
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	logger.Info("returns complete",
		zap.Float64("principal_usd", result.Principal.USD),
		zap.Float64("hodl_return", result.Hodl.Return),
		zap.Float64("net_return", result.Net.Return),
		zap.Float64("uniswap_return", result.Uniswap.Return),
	)

	return nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadHistory(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	user, pair, err := parseAddresses(cfg.User, cfg.Pair)
	if err != nil {
		return err
	}
	if cfg.Out == "" && cfg.PGDSN == "" {
		return fmt.Errorf("at least one of out or pg-dsn is required")
	}

	start, err := config.ParseTimestamp(cfg.Start)
	if err != nil {
		return fmt.Errorf("parse start: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := subgraph.NewClient(subgraph.Config{
		URL:          cfg.SubgraphURL,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}, logger)
	if err != nil {
		return err
	}

	logger.Info("history start",
		zap.String("subgraph", cfg.SubgraphURL),
		zap.String("user", user.Hex()),
		zap.String("pair", pair.Hex()),
		zap.Int64("start", start),
		zap.String("out", cfg.Out),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
	)

	pairState, err := client.PairState(ctx, pair)
	if err != nil {
		return err
	}
	ethPrice, err := client.EthPriceUSD(ctx)
	if err != nil {
		return err
	}
	snapshots, err := client.PositionSnapshots(ctx, user, pair)
	if err != nil {
		return err
	}

	calc := returns.NewCalculator(client, logger)
	points, err := calc.DailyHistory(ctx, start, pairState, snapshots, ethPrice)
	if err != nil {
		return err
	}

	if cfg.Out != "" {
		var sink storage.Storage = storage.NewJsonlStorage(cfg.Out)
		if err := sink.PutDailyPoints(points); err != nil {
			return fmt.Errorf("write history: %w", err)
		}
	}

	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()

		if err := store.UpsertDailyReturns(ctx, user.Hex(), pair.Hex(), points); err != nil {
			return fmt.Errorf("store history: %w", err)
		}
	}

	logger.Info("history complete", zap.Int("days", len(points)))

	return nil
}

func parseAddresses(user, pair string) (common.Address, common.Address, error) {
	if !common.IsHexAddress(user) {
		return common.Address{}, common.Address{}, fmt.Errorf("invalid user address: %q", user)
	}
	if !common.IsHexAddress(pair) {
		return common.Address{}, common.Address{}, fmt.Errorf("invalid pair address: %q", pair)
	}
	return common.HexToAddress(user), common.HexToAddress(pair), nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
