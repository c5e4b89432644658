package sol

import "github.com/gagliardetto/solana-go"

var (
	// SPL Token program, the only token program the whirlpool swap (v1) accepts
	TokenProgramID = solana.TokenProgramID

	TokenAccountSize = uint64(165)
)
