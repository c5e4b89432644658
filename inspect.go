package main

import (
	"fmt"

	"github.com/gtdvccc/orcacpi/pkg/pool/orca"
	"github.com/gtdvccc/orcacpi/pkg/protocol"
	"github.com/gtdvccc/orcacpi/pkg/sol"
	"github.com/spf13/cobra"
)

func runInspect(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	aToB, _ := cmd.Flags().GetBool("a-to-b")

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
	keys, err := whirlpools.TickArrayKeys(pool, aToB)
	if err != nil {
		return err
	}
	arrays, err := whirlpools.FetchTickArrays(ctx, pool, aToB)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "whirlpool          %s\n", pool.PoolId)
	fmt.Fprintf(out, "token_mint_a       %s\n", pool.TokenMintA)
	fmt.Fprintf(out, "token_vault_a      %s\n", pool.TokenVaultA)
	fmt.Fprintf(out, "token_mint_b       %s\n", pool.TokenMintB)
	fmt.Fprintf(out, "token_vault_b      %s\n", pool.TokenVaultB)
	fmt.Fprintf(out, "tick_spacing       %d\n", pool.TickSpacing)
	fmt.Fprintf(out, "fee_rate           %d\n", pool.FeeRate)
	fmt.Fprintf(out, "liquidity          %s\n", pool.Liquidity)
	fmt.Fprintf(out, "sqrt_price         %s\n", pool.SqrtPrice)
	fmt.Fprintf(out, "tick_current_index %d\n", pool.TickCurrentIndex)

	for i, ta := range arrays {
		if ta == nil {
			fmt.Fprintf(out, "tick_array_%d       %s not initialized\n", i, keys[i])
			continue
		}
		fmt.Fprintf(out, "tick_array_%d       %s start=%d initialized_ticks=%d\n", i, keys[i], ta.StartTickIndex, initializedTicks(ta))
	}
	return nil
}

func initializedTicks(ta *orca.WhirlpoolTickArray) int {
	n := 0
	for _, tick := range ta.Ticks {
		if tick.Initialized {
			n++
		}
	}
	return n
}
