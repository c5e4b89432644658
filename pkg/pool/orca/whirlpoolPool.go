package orca

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"
)

var (
	ErrDiscriminatorMismatch = errors.New("account discriminator mismatch")
	ErrAccountDataTooSmall   = errors.New("account data too small")
)

// WhirlpoolPool maps the Orca Whirlpool pool account.
//
// Total account size: 653 bytes (including 8-byte discriminator)
type WhirlpoolPool struct {
	WhirlpoolsConfig solana.PublicKey
	WhirlpoolBump    [1]uint8
	TickSpacing      uint16
	FeeTierIndexSeed [2]uint8
	FeeRate          uint16
	ProtocolFeeRate  uint16

	Liquidity        uint128.Uint128
	SqrtPrice        uint128.Uint128
	TickCurrentIndex int32

	ProtocolFeeOwedA uint64
	ProtocolFeeOwedB uint64

	TokenMintA       solana.PublicKey
	TokenVaultA      solana.PublicKey
	FeeGrowthGlobalA uint128.Uint128

	TokenMintB       solana.PublicKey
	TokenVaultB      solana.PublicKey
	FeeGrowthGlobalB uint128.Uint128

	RewardLastUpdatedTimestamp uint64
	RewardInfos                [3]WhirlpoolRewardInfo

	// Pool address, not part of account data
	PoolId solana.PublicKey
}

// WhirlpoolRewardInfo reward information structure
type WhirlpoolRewardInfo struct {
	Mint                  solana.PublicKey
	Vault                 solana.PublicKey
	Authority             solana.PublicKey
	EmissionsPerSecondX64 uint128.Uint128
	GrowthGlobalX64       uint128.Uint128
}

// GetTokens returns the token pair
func (pool *WhirlpoolPool) GetTokens() (mintA, mintB solana.PublicKey) {
	return pool.TokenMintA, pool.TokenMintB
}

// Decode parses Whirlpool account data, discriminator included.
func (pool *WhirlpoolPool) Decode(data []byte) error {
	if uint64(len(data)) < pool.Span() {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrAccountDataTooSmall, len(data), pool.Span())
	}
	if !bytes.Equal(data[:8], WhirlpoolDiscriminator[:]) {
		return fmt.Errorf("%w: not a whirlpool", ErrDiscriminatorMismatch)
	}
	data = data[8:]

	offset := 0

	pool.WhirlpoolsConfig = solana.PublicKeyFromBytes(data[offset : offset+32])
	offset += 32

	copy(pool.WhirlpoolBump[:], data[offset:offset+1])
	offset += 1

	pool.TickSpacing = binary.LittleEndian.Uint16(data[offset : offset+2])
	offset += 2

	copy(pool.FeeTierIndexSeed[:], data[offset:offset+2])
	offset += 2

	pool.FeeRate = binary.LittleEndian.Uint16(data[offset : offset+2])
	offset += 2

	pool.ProtocolFeeRate = binary.LittleEndian.Uint16(data[offset : offset+2])
	offset += 2

	pool.Liquidity = uint128.FromBytes(data[offset : offset+16])
	offset += 16

	pool.SqrtPrice = uint128.FromBytes(data[offset : offset+16])
	offset += 16

	pool.TickCurrentIndex = int32(binary.LittleEndian.Uint32(data[offset : offset+4]))
	offset += 4

	pool.ProtocolFeeOwedA = binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8

	pool.ProtocolFeeOwedB = binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8

	pool.TokenMintA = solana.PublicKeyFromBytes(data[offset : offset+32])
	offset += 32

	pool.TokenVaultA = solana.PublicKeyFromBytes(data[offset : offset+32])
	offset += 32

	pool.FeeGrowthGlobalA = uint128.FromBytes(data[offset : offset+16])
	offset += 16

	pool.TokenMintB = solana.PublicKeyFromBytes(data[offset : offset+32])
	offset += 32

	pool.TokenVaultB = solana.PublicKeyFromBytes(data[offset : offset+32])
	offset += 32

	pool.FeeGrowthGlobalB = uint128.FromBytes(data[offset : offset+16])
	offset += 16

	pool.RewardLastUpdatedTimestamp = binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8

	for i := 0; i < 3; i++ {
		pool.RewardInfos[i].Mint = solana.PublicKeyFromBytes(data[offset : offset+32])
		offset += 32

		pool.RewardInfos[i].Vault = solana.PublicKeyFromBytes(data[offset : offset+32])
		offset += 32

		pool.RewardInfos[i].Authority = solana.PublicKeyFromBytes(data[offset : offset+32])
		offset += 32

		pool.RewardInfos[i].EmissionsPerSecondX64 = uint128.FromBytes(data[offset : offset+16])
		offset += 16

		pool.RewardInfos[i].GrowthGlobalX64 = uint128.FromBytes(data[offset : offset+16])
		offset += 16
	}

	return nil
}

// Span returns account data size
func (pool *WhirlpoolPool) Span() uint64 {
	// discriminator(8) + config(32) + bump(1) + tickSpacing(2) + feeTierIndexSeed(2) +
	// feeRate(2) + protocolFeeRate(2) + liquidity(16) + sqrtPrice(16) + tickCurrentIndex(4) +
	// protocolFeeOwedA(8) + protocolFeeOwedB(8) + mintA(32) + vaultA(32) + feeGrowthA(16) +
	// mintB(32) + vaultB(32) + feeGrowthB(16) + rewardTimestamp(8) + 3*rewardInfo(128)
	return uint64(8 + 32 + 1 + 2 + 2 + 2 + 2 + 16 + 16 + 4 + 8 + 8 + 32 + 32 + 16 + 32 + 32 + 16 + 8 + 3*128)
}

// Offset returns field offset in account data, used for RPC memcmp filters
func (pool *WhirlpoolPool) Offset(field string) uint64 {
	const (
		tickSpacing      = 8 + 32 + 1
		feeRate          = tickSpacing + 2 + 2
		sqrtPrice        = feeRate + 2 + 2 + 16
		tickCurrentIndex = sqrtPrice + 16
		tokenMintA       = tickCurrentIndex + 4 + 8 + 8
		tokenVaultA      = tokenMintA + 32
		tokenMintB       = tokenVaultA + 32 + 16
		tokenVaultB      = tokenMintB + 32
	)

	switch field {
	case "TickSpacing":
		return tickSpacing // 41
	case "FeeRate":
		return feeRate // 45
	case "SqrtPrice":
		return sqrtPrice // 65
	case "TickCurrentIndex":
		return tickCurrentIndex // 81
	case "TokenMintA":
		return tokenMintA // 101
	case "TokenVaultA":
		return tokenVaultA // 133
	case "TokenMintB":
		return tokenMintB // 181
	case "TokenVaultB":
		return tokenVaultB // 213
	}
	return 0
}
