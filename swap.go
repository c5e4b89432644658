package main

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
	"github.com/gtdvccc/orcacpi/pkg"
	"github.com/gtdvccc/orcacpi/pkg/pool/orca"
	"github.com/gtdvccc/orcacpi/pkg/protocol"
	"github.com/gtdvccc/orcacpi/pkg/proxy"
	"github.com/gtdvccc/orcacpi/pkg/sol"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"lukechampine.com/uint128"
)

func runSwap(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	signer, err := cfg.Signer()
	if err != nil {
		return err
	}
	args, err := swapArgs(cmd.Flags())
	if err != nil {
		return err
	}
	onchain, _ := cmd.Flags().GetBool("onchain")

	ctx, stop := signalContext()
	defer stop()

	client, err := sol.NewClient(ctx, cfg.RPCURL, cfg.WSURL)
	if err != nil {
		return fmt.Errorf("create solana client: %w", err)
	}
	defer client.Close()

	whirlpools := protocol.NewOrcaWhirlpool(client, cfg.WhirlpoolProgram)
	pool, err := resolvePool(ctx, cmd.Flags(), whirlpools)
	if err != nil {
		return err
	}
	snap, err := whirlpools.LoadSwapAccounts(ctx, pool.PoolId, signer.PublicKey(), args.AToB)
	if err != nil {
		return err
	}

	logger.Info("swap accounts loaded",
		zap.Stringer("whirlpool", pool.PoolId),
		zap.Stringer("authority", signer.PublicKey()),
		zap.Int32("tick_current_index", pool.TickCurrentIndex),
		zap.Uint16("tick_spacing", pool.TickSpacing),
		zap.Bool("onchain", onchain),
		zap.Bool("simulate", cfg.Simulate || !onchain),
	)

	// the local path sends the relay's swap layout straight to the whirlpool
	// program, so it is only ever simulated
	simulate := cfg.Simulate || !onchain
	if !onchain && !cfg.Simulate {
		logger.Warn("local forwarding is simulation only, pass --onchain to send")
	}
	invoker := client.NewTxInvoker([]solana.PrivateKey{signer}, simulate)
	cuLimit, _ := cmd.Flags().GetUint32("compute-unit-limit")
	cuPrice, _ := cmd.Flags().GetUint64("compute-unit-price")
	if err := invoker.SetComputeBudget(cuLimit, cuPrice); err != nil {
		return err
	}

	if onchain {
		// same checks the relay runs, before paying for them
		if _, err := proxy.LoadProxySwapAccounts(snap.Accounts, cfg.WhirlpoolProgram); err != nil {
			return err
		}
		ix, err := proxy.NewProxySwapInstruction(cfg.ProxyProgram, snap.Accounts, args)
		if err != nil {
			return err
		}
		if err := invoker.Invoke(ctx, ix, snap.Accounts); err != nil {
			return err
		}
	} else {
		data, err := proxy.EncodeProxySwapArgs(args)
		if err != nil {
			return err
		}
		processor := proxy.NewProcessor(loggingInvoker(logger, invoker),
			proxy.WithLogger(logger),
			proxy.WithWhirlpoolProgramID(cfg.WhirlpoolProgram),
			proxy.WithTickArrayDiagnostics(cfg.TickArrayDiagnostics),
		)
		if err := processor.Process(ctx, snap.Accounts, data); err != nil {
			return err
		}
	}

	if simulate {
		logger.Info("swap simulated")
		return nil
	}
	logger.Info("swap sent", zap.Stringer("signature", invoker.LastSignature))
	return nil
}

// loggingInvoker logs the swap arguments of each forwarded instruction before
// handing it to next.
func loggingInvoker(logger *zap.Logger, next pkg.Invoker) pkg.Invoker {
	return pkg.InvokerFunc(func(ctx context.Context, ix solana.Instruction, accounts []*sol.AccountInfo) error {
		data, err := ix.Data()
		if err != nil {
			return err
		}
		args, err := orca.DecodeSwapArgs(data)
		if err != nil {
			return err
		}
		logger.Info("forwarding swap",
			zap.Stringer("program", ix.ProgramID()),
			zap.Int("accounts", len(accounts)),
			zap.Uint64("amount", args.Amount),
			zap.Uint64("other_amount_threshold", args.OtherAmountThreshold),
			zap.String("sqrt_price_limit", args.SqrtPriceLimit.String()),
			zap.Bool("amount_specified_is_input", args.AmountSpecifiedIsInput),
			zap.Bool("a_to_b", args.AToB),
		)
		return next.Invoke(ctx, ix, accounts)
	})
}

func swapArgs(flags *pflag.FlagSet) (proxy.ProxySwapArgs, error) {
	amount, _ := flags.GetUint64("amount")
	threshold, _ := flags.GetUint64("other-amount-threshold")
	exactIn, _ := flags.GetBool("exact-in")
	aToB, _ := flags.GetBool("a-to-b")
	limitStr, _ := flags.GetString("sqrt-price-limit")

	limit := orca.DefaultSqrtPriceLimit(aToB)
	if limitStr != "" {
		var err error
		if limit, err = parseU128(limitStr); err != nil {
			return proxy.ProxySwapArgs{}, fmt.Errorf("invalid sqrt-price-limit: %w", err)
		}
	}

	return proxy.ProxySwapArgs{
		Amount:                 amount,
		OtherAmountThreshold:   threshold,
		SqrtPriceLimit:         limit,
		AmountSpecifiedIsInput: exactIn,
		AToB:                   aToB,
	}, nil
}

func parseU128(s string) (uint128.Uint128, error) {
	v, ok := math.NewIntFromString(s)
	if !ok {
		return uint128.Zero, fmt.Errorf("not an integer: %q", s)
	}
	if v.IsNegative() {
		return uint128.Zero, fmt.Errorf("negative value: %s", s)
	}
	if v.BigInt().BitLen() > 128 {
		return uint128.Zero, fmt.Errorf("value exceeds 128 bits: %s", s)
	}
	return uint128.FromBig(v.BigInt()), nil
}
