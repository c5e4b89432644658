package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gagliardetto/solana-go"
	"github.com/gtdvccc/orcacpi/internal/config"
	"github.com/gtdvccc/orcacpi/pkg/pool/orca"
	"github.com/gtdvccc/orcacpi/pkg/protocol"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "orcacpi",
		Short:        "Relay swaps to Orca Whirlpool pools",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("rpc", "", "Solana RPC URL")
	root.PersistentFlags().String("ws", "", "Solana websocket URL (optional)")
	root.PersistentFlags().String("whirlpool-program", orca.ORCA_WHIRLPOOL_PROGRAM_ID.String(), "whirlpool program id")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	swapCmd := &cobra.Command{
		Use:   "swap",
		Short: "Swap on a whirlpool through the relay",
		RunE:  runSwap,
	}
	addPoolFlags(swapCmd.Flags())
	swapCmd.Flags().Uint64("amount", 0, "amount in (exact-in) or out (exact-out)")
	swapCmd.Flags().Uint64("other-amount-threshold", 0, "minimum out (exact-in) or maximum in (exact-out)")
	swapCmd.Flags().String("sqrt-price-limit", "", "Q64.64 sqrt price limit, defaults to the protocol bound for the direction")
	swapCmd.Flags().Bool("exact-in", true, "amount is the input amount")
	swapCmd.Flags().Bool("simulate", true, "simulate instead of sending")
	swapCmd.Flags().Bool("tick-array-diagnostics", true, "log the first tick array before forwarding")
	swapCmd.Flags().Bool("onchain", false, "submit proxy_swap to the deployed relay instead of forwarding locally")
	swapCmd.Flags().String("proxy-program", "", "relay program id used with --onchain")
	swapCmd.Flags().Uint32("compute-unit-limit", 0, "compute unit limit, 0 keeps the default")
	swapCmd.Flags().Uint64("compute-unit-price", 0, "priority fee in micro lamports per compute unit")
	root.AddCommand(swapCmd)

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Decode a whirlpool and the tick arrays a swap would use",
		RunE:  runInspect,
	}
	addPoolFlags(inspectCmd.Flags())
	root.AddCommand(inspectCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPoolFlags(flags *pflag.FlagSet) {
	flags.String("pool", "", "whirlpool address")
	flags.String("mint-a", "", "token mint A, with --mint-b and --tick-spacing instead of --pool")
	flags.String("mint-b", "", "token mint B")
	flags.Uint16("tick-spacing", 64, "pool tick spacing")
	flags.String("whirlpools-config", orca.ORCA_WHIRLPOOLS_CONFIG.String(), "whirlpools config the pool belongs to")
	flags.Bool("a-to-b", true, "swap token A for token B")
}

// setup loads config and builds the logger every command uses.
func setup(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return config.Config{}, nil, err
	}
	if cfg.RPCURL == "" {
		return config.Config{}, nil, fmt.Errorf("rpc is required")
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// resolvePool fetches the pool named by --pool, or derived from the mint
// pair and tick spacing.
func resolvePool(ctx context.Context, flags *pflag.FlagSet, whirlpools *protocol.OrcaWhirlpoolProtocol) (*orca.WhirlpoolPool, error) {
	if poolStr, _ := flags.GetString("pool"); poolStr != "" {
		poolID, err := solana.PublicKeyFromBase58(poolStr)
		if err != nil {
			return nil, fmt.Errorf("invalid pool: %w", err)
		}
		return whirlpools.FetchPoolByID(ctx, poolID)
	}

	mintAStr, _ := flags.GetString("mint-a")
	mintBStr, _ := flags.GetString("mint-b")
	if mintAStr == "" || mintBStr == "" {
		return nil, fmt.Errorf("either --pool or --mint-a and --mint-b are required")
	}
	mintA, err := solana.PublicKeyFromBase58(mintAStr)
	if err != nil {
		return nil, fmt.Errorf("invalid mint-a: %w", err)
	}
	mintB, err := solana.PublicKeyFromBase58(mintBStr)
	if err != nil {
		return nil, fmt.Errorf("invalid mint-b: %w", err)
	}
	configStr, _ := flags.GetString("whirlpools-config")
	whirlpoolsConfig, err := solana.PublicKeyFromBase58(configStr)
	if err != nil {
		return nil, fmt.Errorf("invalid whirlpools-config: %w", err)
	}
	tickSpacing, _ := flags.GetUint16("tick-spacing")

	return whirlpools.FetchPoolByPair(ctx, whirlpoolsConfig, mintA, mintB, tickSpacing)
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
