package orca

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// DeriveWhirlpoolOraclePDA derives the oracle of a whirlpool under programID.
// seeds = ["oracle", whirlpool_pubkey]
func DeriveWhirlpoolOraclePDA(whirlpoolPubkey solana.PublicKey, programID solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{
		[]byte(ORACLE_SEED),
		whirlpoolPubkey.Bytes(),
	}

	pda, _, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to find program address for oracle: %w", err)
	}

	return pda, nil
}

// DeriveWhirlpoolPDA derives a whirlpool address from its config, token pair
// and tick spacing.
// seeds = ["whirlpool", config, mint_a, mint_b, tick_spacing.to_le_bytes()]
func DeriveWhirlpoolPDA(programID, config, mintA, mintB solana.PublicKey, tickSpacing uint16) (solana.PublicKey, error) {
	seeds := [][]byte{
		[]byte(WHIRLPOOL_SEED),
		config.Bytes(),
		mintA.Bytes(),
		mintB.Bytes(),
		{byte(tickSpacing), byte(tickSpacing >> 8)},
	}

	pda, _, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to find program address for whirlpool: %w", err)
	}

	return pda, nil
}
