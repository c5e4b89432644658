// Package testutil builds raw account data and consistent proxy_swap account
// sets for tests.
package testutil

import (
	"encoding/binary"
	"math/big"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gtdvccc/orcacpi/pkg/pool/orca"
	"github.com/gtdvccc/orcacpi/pkg/sol"
	"lukechampine.com/uint128"
)

// TickSpacing and TickCurrentIndex of the fixture pool
const (
	TickSpacing      = 64
	TickCurrentIndex = -100
)

var bpfLoader = solana.MustPublicKeyFromBase58("BPFLoaderUpgradeab1e11111111111111111111111")

// WhirlpoolData encodes pool as whirlpool account data.
func WhirlpoolData(pool *orca.WhirlpoolPool) []byte {
	data := make([]byte, orca.WHIRLPOOL_SIZE)
	copy(data[0:8], orca.WhirlpoolDiscriminator[:])
	copy(data[8:40], pool.WhirlpoolsConfig.Bytes())
	data[40] = pool.WhirlpoolBump[0]
	binary.LittleEndian.PutUint16(data[pool.Offset("TickSpacing"):], pool.TickSpacing)
	binary.LittleEndian.PutUint16(data[pool.Offset("FeeRate"):], pool.FeeRate)
	pool.Liquidity.PutBytes(data[49:65])
	pool.SqrtPrice.PutBytes(data[pool.Offset("SqrtPrice"):])
	binary.LittleEndian.PutUint32(data[pool.Offset("TickCurrentIndex"):], uint32(pool.TickCurrentIndex))
	copy(data[pool.Offset("TokenMintA"):], pool.TokenMintA.Bytes())
	copy(data[pool.Offset("TokenVaultA"):], pool.TokenVaultA.Bytes())
	copy(data[pool.Offset("TokenMintB"):], pool.TokenMintB.Bytes())
	copy(data[pool.Offset("TokenVaultB"):], pool.TokenVaultB.Bytes())
	return data
}

// TokenAccountData encodes an initialized SPL token account.
func TokenAccountData(mint, owner solana.PublicKey, amount uint64) []byte {
	data := make([]byte, sol.TokenAccountSize)
	copy(data[0:32], mint.Bytes())
	copy(data[32:64], owner.Bytes())
	binary.LittleEndian.PutUint64(data[64:72], amount)
	data[108] = 1 // initialized
	return data
}

// TickArrayData encodes a tick array of whirlpool starting at start. ticks
// fill the first slots; the rest stay zero.
func TickArrayData(start int32, whirlpool solana.PublicKey, ticks ...orca.WhirlpoolTick) []byte {
	data := make([]byte, orca.TICK_ARRAY_ACCOUNT_SIZE)
	copy(data[0:8], orca.TickArrayDiscriminator[:])
	binary.LittleEndian.PutUint32(data[8:12], uint32(start))

	for i, tick := range ticks {
		off := 12 + i*orca.TICK_SIZE
		if tick.Initialized {
			data[off] = 1
		}
		if tick.LiquidityNet != nil {
			putInt128(data[off+1:off+17], tick.LiquidityNet)
		}
		tick.LiquidityGross.PutBytes(data[off+17 : off+33])
		tick.FeeGrowthOutsideA.PutBytes(data[off+33 : off+49])
		tick.FeeGrowthOutsideB.PutBytes(data[off+49 : off+65])
		for r, growth := range tick.RewardGrowthsOutside {
			growth.PutBytes(data[off+65+r*16 : off+81+r*16])
		}
	}

	copy(data[orca.TICK_ARRAY_ACCOUNT_SIZE-32:], whirlpool.Bytes())
	return data
}

func putInt128(b []byte, v *big.Int) {
	u := new(big.Int).Set(v)
	if u.Sign() < 0 {
		u.Add(u, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	uint128.FromBig(u).PutBytes(b)
}

// SwapAccounts is a consistent proxy_swap account set for one whirlpool.
// Mutate the fields, then pass List() to the code under test.
type SwapAccounts struct {
	WhirlpoolProgram   *sol.AccountInfo
	TokenProgram       *sol.AccountInfo
	TokenAuthority     *sol.AccountInfo
	Whirlpool          *sol.AccountInfo
	TokenOwnerAccountA *sol.AccountInfo
	TokenVaultA        *sol.AccountInfo
	TokenOwnerAccountB *sol.AccountInfo
	TokenVaultB        *sol.AccountInfo
	TickArray0         *sol.AccountInfo
	TickArray1         *sol.AccountInfo
	TickArray2         *sol.AccountInfo
	Oracle             *sol.AccountInfo

	Pool            *orca.WhirlpoolPool
	TickArrayStarts [3]int32
	ProgramID       solana.PublicKey
}

// NewSwapAccounts builds an A->B account set for a fresh pool owned by the
// mainnet whirlpool program.
func NewSwapAccounts(t testing.TB) *SwapAccounts {
	t.Helper()

	programID := orca.ORCA_WHIRLPOOL_PROGRAM_ID
	authority := solana.NewWallet().PublicKey()
	whirlpool := solana.NewWallet().PublicKey()

	pool := &orca.WhirlpoolPool{
		WhirlpoolsConfig: orca.ORCA_WHIRLPOOLS_CONFIG,
		WhirlpoolBump:    [1]uint8{254},
		TickSpacing:      TickSpacing,
		FeeRate:          3000,
		Liquidity:        uint128.From64(1_000_000_000),
		SqrtPrice:        uint128.FromBig(new(big.Int).Lsh(big.NewInt(1), 64)),
		TickCurrentIndex: TickCurrentIndex,
		TokenMintA:       solana.NewWallet().PublicKey(),
		TokenVaultA:      solana.NewWallet().PublicKey(),
		TokenMintB:       solana.NewWallet().PublicKey(),
		TokenVaultB:      solana.NewWallet().PublicKey(),
		PoolId:           whirlpool,
	}

	ta0, ta1, ta2, err := orca.DeriveMultipleWhirlpoolTickArrayPDAs(programID, whirlpool, TickCurrentIndex, TickSpacing, true)
	if err != nil {
		t.Fatalf("derive tick arrays: %v", err)
	}
	oracle, err := orca.DeriveWhirlpoolOraclePDA(whirlpool, programID)
	if err != nil {
		t.Fatalf("derive oracle: %v", err)
	}

	// floor(-100 / (64*88)) = -1
	width := int32(TickSpacing * orca.TICK_ARRAY_SIZE)
	starts := [3]int32{-width, -2 * width, -3 * width}

	tokenAccount := func(key, mint, owner solana.PublicKey) *sol.AccountInfo {
		return &sol.AccountInfo{
			Key:        key,
			Owner:      sol.TokenProgramID,
			Lamports:   2_039_280,
			Data:       TokenAccountData(mint, owner, 1_000_000),
			IsWritable: true,
		}
	}
	tickArray := func(key solana.PublicKey, start int32) *sol.AccountInfo {
		return &sol.AccountInfo{
			Key:        key,
			Owner:      programID,
			Data:       TickArrayData(start, whirlpool),
			IsWritable: true,
		}
	}

	return &SwapAccounts{
		WhirlpoolProgram: &sol.AccountInfo{Key: programID, Owner: bpfLoader, Executable: true},
		TokenProgram:     &sol.AccountInfo{Key: sol.TokenProgramID, Owner: bpfLoader, Executable: true},
		TokenAuthority:   &sol.AccountInfo{Key: authority, Owner: solana.SystemProgramID, IsSigner: true, IsWritable: true},
		Whirlpool: &sol.AccountInfo{
			Key:        whirlpool,
			Owner:      programID,
			Data:       WhirlpoolData(pool),
			IsWritable: true,
		},
		TokenOwnerAccountA: tokenAccount(solana.NewWallet().PublicKey(), pool.TokenMintA, authority),
		TokenVaultA:        tokenAccount(pool.TokenVaultA, pool.TokenMintA, whirlpool),
		TokenOwnerAccountB: tokenAccount(solana.NewWallet().PublicKey(), pool.TokenMintB, authority),
		TokenVaultB:        tokenAccount(pool.TokenVaultB, pool.TokenMintB, whirlpool),
		TickArray0:         tickArray(ta0, starts[0]),
		TickArray1:         tickArray(ta1, starts[1]),
		TickArray2:         tickArray(ta2, starts[2]),
		Oracle:             &sol.AccountInfo{Key: oracle, Owner: solana.SystemProgramID, IsWritable: true},

		Pool:            pool,
		TickArrayStarts: starts,
		ProgramID:       programID,
	}
}

// List returns the accounts in proxy_swap order.
func (s *SwapAccounts) List() []*sol.AccountInfo {
	return []*sol.AccountInfo{
		s.WhirlpoolProgram,
		s.TokenProgram,
		s.TokenAuthority,
		s.Whirlpool,
		s.TokenOwnerAccountA,
		s.TokenVaultA,
		s.TokenOwnerAccountB,
		s.TokenVaultB,
		s.TickArray0,
		s.TickArray1,
		s.TickArray2,
		s.Oracle,
	}
}

// SwapKeys returns the keys the whirlpool swap expects, in its order.
func (s *SwapAccounts) SwapKeys() []solana.PublicKey {
	return sol.Keys([]*sol.AccountInfo{
		s.Whirlpool,
		s.TokenProgram,
		s.TokenAuthority,
		s.TokenOwnerAccountA,
		s.TokenVaultA,
		s.TokenOwnerAccountB,
		s.TokenVaultB,
		s.TickArray0,
		s.TickArray1,
		s.TickArray2,
		s.Oracle,
	})
}
