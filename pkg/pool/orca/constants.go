package orca

import (
	"cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
)

// Program IDs
var (
	// Orca Whirlpool Program ID, same on mainnet and devnet
	ORCA_WHIRLPOOL_PROGRAM_ID = solana.MustPublicKeyFromBase58("whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc")

	// Mainnet WhirlpoolsConfig used by the Orca UI pools
	ORCA_WHIRLPOOLS_CONFIG = solana.MustPublicKeyFromBase58("2LecshUwdy9xi7meFgHtFJQNSKk4KdTrcpvaB56dP2NQ")
)

// Tick Array Configuration - Based on Orca Whirlpool specification
const (
	TICK_ARRAY_SIZE = 88
	MAX_TICK        = 443636
	MIN_TICK        = -443636

	// Tick record: initialized(1) + liquidityNet(16) + liquidityGross(16) +
	// feeGrowthOutsideA(16) + feeGrowthOutsideB(16) + rewardGrowthsOutside(3*16)
	TICK_SIZE = 1 + 16 + 16 + 16 + 16 + 3*16 // = 113

	// discriminator(8) + startTickIndex(4) + ticks(88*113) + whirlpool(32)
	TICK_ARRAY_ACCOUNT_SIZE = 8 + 4 + TICK_ARRAY_SIZE*TICK_SIZE + 32 // = 9988
)

// Price bounds - whirlpools/programs/whirlpool/src/math/tick_math.rs
var (
	MIN_SQRT_PRICE_X64    = math.NewInt(4295048016)
	MAX_SQRT_PRICE_X64, _ = math.NewIntFromString("79226673515401279992447579055")
)

// Seeds and Discriminators
var (
	WHIRLPOOL_SEED  = "whirlpool"
	TICK_ARRAY_SEED = "tick_array"
	ORACLE_SEED     = "oracle"

	// Account discriminators (sha256("account:<Name>")[:8])
	WhirlpoolDiscriminator = [8]byte{63, 149, 209, 12, 225, 128, 99, 9}
	TickArrayDiscriminator = [8]byte{69, 97, 189, 190, 110, 7, 66, 187}

	// Whirlpool Swap instruction discriminator (sha256("global:swap")[:8])
	SwapDiscriminator = [8]byte{248, 198, 158, 145, 225, 117, 135, 200}
)

// Whirlpool-specific constants
const (
	// Whirlpool account data size (653 bytes including discriminator)
	WHIRLPOOL_SIZE = 653
)
