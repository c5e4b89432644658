package orca

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/big"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gtdvccc/orcacpi/pkg/sol"
	"lukechampine.com/uint128"
)

// WhirlpoolTickArray - fixed Whirlpool tick array account
//
//	discriminator    [8]u8
//	start_tick_index i32
//	ticks            [Tick; 88]
//	whirlpool        Pubkey
type WhirlpoolTickArray struct {
	StartTickIndex int32
	Ticks          [TICK_ARRAY_SIZE]WhirlpoolTick
	Whirlpool      solana.PublicKey
}

// WhirlpoolTick - one tick record (113 bytes)
type WhirlpoolTick struct {
	Initialized          bool
	LiquidityNet         *big.Int // i128
	LiquidityGross       uint128.Uint128
	FeeGrowthOutsideA    uint128.Uint128
	FeeGrowthOutsideB    uint128.Uint128
	RewardGrowthsOutside [3]uint128.Uint128
}

// Decode parses Whirlpool tick array data
func (t *WhirlpoolTickArray) Decode(data []byte) error {
	if err := checkTickArrayData(data); err != nil {
		return err
	}
	decoder := bin.NewBinDecoder(data[8:])

	start, err := decoder.ReadInt32(binary.LittleEndian)
	if err != nil {
		return fmt.Errorf("failed to decode start tick index: %w", err)
	}
	t.StartTickIndex = start

	for i := 0; i < TICK_ARRAY_SIZE; i++ {
		if err := decodeTick(decoder, &t.Ticks[i]); err != nil {
			return fmt.Errorf("failed to decode tick %d: %w", i, err)
		}
	}

	whirlpool, err := decoder.ReadNBytes(32)
	if err != nil {
		return fmt.Errorf("failed to decode whirlpool: %w", err)
	}
	t.Whirlpool = solana.PublicKeyFromBytes(whirlpool)

	return nil
}

func decodeTick(decoder *bin.Decoder, tick *WhirlpoolTick) error {
	initialized, err := decoder.ReadBool()
	if err != nil {
		return err
	}
	tick.Initialized = initialized

	raw, err := decoder.ReadNBytes(16)
	if err != nil {
		return err
	}
	tick.LiquidityNet = int128FromBytes(raw)

	for _, dst := range []*uint128.Uint128{
		&tick.LiquidityGross,
		&tick.FeeGrowthOutsideA,
		&tick.FeeGrowthOutsideB,
		&tick.RewardGrowthsOutside[0],
		&tick.RewardGrowthsOutside[1],
		&tick.RewardGrowthsOutside[2],
	} {
		raw, err := decoder.ReadNBytes(16)
		if err != nil {
			return err
		}
		*dst = uint128.FromBytes(raw)
	}
	return nil
}

// int128FromBytes reads a little-endian two's complement i128
func int128FromBytes(b []byte) *big.Int {
	u := uint128.FromBytes(b)
	v := u.Big()
	if u.Hi>>63 == 1 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	return v
}

func checkTickArrayData(data []byte) error {
	if len(data) < TICK_ARRAY_ACCOUNT_SIZE {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrAccountDataTooSmall, len(data), TICK_ARRAY_ACCOUNT_SIZE)
	}
	if !bytes.Equal(data[:8], TickArrayDiscriminator[:]) {
		return fmt.Errorf("%w: not a tick array", ErrDiscriminatorMismatch)
	}
	return nil
}

// TickArrayWhirlpool returns the pool a tick array belongs to without
// decoding its ticks.
func TickArrayWhirlpool(data []byte) (solana.PublicKey, error) {
	if err := checkTickArrayData(data); err != nil {
		return solana.PublicKey{}, err
	}
	offset := TICK_ARRAY_ACCOUNT_SIZE - 32
	return solana.PublicKeyFromBytes(data[offset : offset+32]), nil
}

// ReadTickArray decodes a loaded tick array account.
func ReadTickArray(acc *sol.AccountInfo) (*WhirlpoolTickArray, error) {
	if acc == nil {
		return nil, fmt.Errorf("tick array account is nil")
	}
	ta := &WhirlpoolTickArray{}
	if err := ta.Decode(acc.Data); err != nil {
		return nil, fmt.Errorf("tick array %s: %w", acc.Key, err)
	}
	return ta, nil
}

// getWhirlpoolTickCount returns the number of ticks covered by one tick array
func getWhirlpoolTickCount(tickSpacing int64) int64 {
	return tickSpacing * TICK_ARRAY_SIZE
}

// DeriveWhirlpoolTickArrayPDA derives PDA address for Whirlpool tick array
// seeds = ["tick_array", whirlpool_pubkey, start_tick_index.to_string()]
func DeriveWhirlpoolTickArrayPDA(programID solana.PublicKey, whirlpoolPubkey solana.PublicKey, startTickIndex int64) (solana.PublicKey, error) {
	seeds := [][]byte{
		[]byte(TICK_ARRAY_SEED),
		whirlpoolPubkey.Bytes(),
		[]byte(fmt.Sprintf("%d", startTickIndex)),
	}

	pda, _, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to find program address for tick array: %w", err)
	}

	return pda, nil
}

// getOfficialTickArrayStartIndex implements Whirlpool TickUtil.getStartTickIndex
// Reference: whirlpools/legacy-sdk/whirlpool/src/utils/public/tick-utils.ts
func getOfficialTickArrayStartIndex(tickIndex int64, tickSpacing int64, offset int64) (int64, error) {
	ticksInArray := getWhirlpoolTickCount(tickSpacing)

	// floor towards negative infinity
	realIndex := tickIndex / ticksInArray
	if tickIndex < 0 && tickIndex%ticksInArray != 0 {
		realIndex--
	}

	startTickIndex := (realIndex + offset) * ticksInArray

	minTickIndex := MIN_TICK - ((MIN_TICK % ticksInArray) + ticksInArray)
	if startTickIndex < minTickIndex {
		return 0, fmt.Errorf("startTickIndex is too small - %d", startTickIndex)
	}
	if startTickIndex > MAX_TICK {
		return 0, fmt.Errorf("startTickIndex is too large - %d", startTickIndex)
	}

	return startTickIndex, nil
}

// DeriveMultipleWhirlpoolTickArrayPDAs derives the three tick arrays a swap
// in direction aToB walks through, starting at the array holding currentTick.
// Reference: whirlpools/legacy-sdk/whirlpool/src/utils/swap-utils.ts:getTickArrayPublicKeys
func DeriveMultipleWhirlpoolTickArrayPDAs(programID solana.PublicKey, whirlpoolPubkey solana.PublicKey, currentTick int64, tickSpacing int64, aToB bool) (tickArray0, tickArray1, tickArray2 solana.PublicKey, err error) {
	if tickSpacing <= 0 {
		return solana.PublicKey{}, solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("invalid tick spacing: %d", tickSpacing)
	}

	// B->A starts from currentTick + tickSpacing, per the Whirlpool SDK
	var shift int64
	if !aToB {
		shift = tickSpacing
	}

	tickArrayAddresses := make([]solana.PublicKey, 0, 3)
	offset := int64(0)

	for i := 0; i < 3; i++ {
		startIndex, err := getOfficialTickArrayStartIndex(currentTick+shift, tickSpacing, offset)
		if err != nil {
			if len(tickArrayAddresses) > 0 {
				break
			}
			return solana.PublicKey{}, solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("failed to calculate startIndex for tick_array0: %w", err)
		}

		tickArrayPDA, err := DeriveWhirlpoolTickArrayPDA(programID, whirlpoolPubkey, startIndex)
		if err != nil {
			return solana.PublicKey{}, solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("failed to derive tick_array%d: %w", i, err)
		}

		tickArrayAddresses = append(tickArrayAddresses, tickArrayPDA)

		if aToB {
			offset--
		} else {
			offset++
		}
	}

	// The swap instruction still needs three accounts at the price bounds;
	// repeat the last valid array like the SDK does.
	for len(tickArrayAddresses) < 3 {
		tickArrayAddresses = append(tickArrayAddresses, tickArrayAddresses[len(tickArrayAddresses)-1])
	}

	return tickArrayAddresses[0], tickArrayAddresses[1], tickArrayAddresses[2], nil
}
