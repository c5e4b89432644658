package orca

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"
)

// SwapArgs are the parameters of the Whirlpool swap instruction
type SwapArgs struct {
	Amount                 uint64
	OtherAmountThreshold   uint64
	SqrtPriceLimit         uint128.Uint128
	AmountSpecifiedIsInput bool
	AToB                   bool
}

// SwapAccounts are the accounts of the Whirlpool swap instruction
type SwapAccounts struct {
	TokenProgram       solana.PublicKey
	TokenAuthority     solana.PublicKey
	Whirlpool          solana.PublicKey
	TokenOwnerAccountA solana.PublicKey
	TokenVaultA        solana.PublicKey
	TokenOwnerAccountB solana.PublicKey
	TokenVaultB        solana.PublicKey
	TickArray0         solana.PublicKey
	TickArray1         solana.PublicKey
	TickArray2         solana.PublicKey
	Oracle             solana.PublicKey
}

// SwapAccountsLen is the number of accounts the swap instruction takes
const SwapAccountsLen = 11

// Metas returns the account metas in the order the Whirlpool program
// deserializes them.
func (a *SwapAccounts) Metas() solana.AccountMetaSlice {
	accounts := solana.AccountMetaSlice{}

	accounts.Append(solana.NewAccountMeta(a.Whirlpool, true, false))          // 0: whirlpool (writable)
	accounts.Append(solana.NewAccountMeta(a.TokenProgram, false, false))      // 1: token_program
	accounts.Append(solana.NewAccountMeta(a.TokenAuthority, false, true))     // 2: token_authority (signer)
	accounts.Append(solana.NewAccountMeta(a.TokenOwnerAccountA, true, false)) // 3: token_owner_account_a (writable)
	accounts.Append(solana.NewAccountMeta(a.TokenVaultA, true, false))        // 4: token_vault_a (writable)
	accounts.Append(solana.NewAccountMeta(a.TokenOwnerAccountB, true, false)) // 5: token_owner_account_b (writable)
	accounts.Append(solana.NewAccountMeta(a.TokenVaultB, true, false))        // 6: token_vault_b (writable)
	accounts.Append(solana.NewAccountMeta(a.TickArray0, true, false))         // 7: tick_array_0 (writable)
	accounts.Append(solana.NewAccountMeta(a.TickArray1, true, false))         // 8: tick_array_1 (writable)
	accounts.Append(solana.NewAccountMeta(a.TickArray2, true, false))         // 9: tick_array_2 (writable)
	accounts.Append(solana.NewAccountMeta(a.Oracle, true, false))             // 10: oracle (writable)

	return accounts
}

// EncodeSwapArgs serializes the swap instruction data: discriminator followed
// by the Borsh encoded arguments.
func EncodeSwapArgs(args SwapArgs) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)

	if err := enc.WriteBytes(SwapDiscriminator[:], false); err != nil {
		return nil, fmt.Errorf("failed to write discriminator: %w", err)
	}
	if err := enc.WriteUint64(args.Amount, binary.LittleEndian); err != nil {
		return nil, fmt.Errorf("failed to encode amount: %w", err)
	}
	if err := enc.WriteUint64(args.OtherAmountThreshold, binary.LittleEndian); err != nil {
		return nil, fmt.Errorf("failed to encode otherAmountThreshold: %w", err)
	}

	// u128 little endian: low 64 bits first
	if err := enc.WriteUint64(args.SqrtPriceLimit.Lo, binary.LittleEndian); err != nil {
		return nil, fmt.Errorf("failed to encode sqrtPriceLimit lo: %w", err)
	}
	if err := enc.WriteUint64(args.SqrtPriceLimit.Hi, binary.LittleEndian); err != nil {
		return nil, fmt.Errorf("failed to encode sqrtPriceLimit hi: %w", err)
	}

	if err := enc.WriteBool(args.AmountSpecifiedIsInput); err != nil {
		return nil, fmt.Errorf("failed to encode amountSpecifiedIsInput: %w", err)
	}
	if err := enc.WriteBool(args.AToB); err != nil {
		return nil, fmt.Errorf("failed to encode aToB: %w", err)
	}

	return buf.Bytes(), nil
}

// DecodeSwapArgs parses swap instruction data produced by EncodeSwapArgs
func DecodeSwapArgs(data []byte) (SwapArgs, error) {
	var args SwapArgs
	if len(data) != 8+8+8+16+1+1 {
		return args, fmt.Errorf("invalid swap instruction data length: %d", len(data))
	}
	if !bytes.Equal(data[:8], SwapDiscriminator[:]) {
		return args, fmt.Errorf("%w: not a swap instruction", ErrDiscriminatorMismatch)
	}

	dec := bin.NewBorshDecoder(data[8:])
	var err error
	if args.Amount, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return args, fmt.Errorf("failed to decode amount: %w", err)
	}
	if args.OtherAmountThreshold, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return args, fmt.Errorf("failed to decode otherAmountThreshold: %w", err)
	}
	raw, err := dec.ReadNBytes(16)
	if err != nil {
		return args, fmt.Errorf("failed to decode sqrtPriceLimit: %w", err)
	}
	args.SqrtPriceLimit = uint128.FromBytes(raw)
	if args.AmountSpecifiedIsInput, err = dec.ReadBool(); err != nil {
		return args, fmt.Errorf("failed to decode amountSpecifiedIsInput: %w", err)
	}
	if args.AToB, err = dec.ReadBool(); err != nil {
		return args, fmt.Errorf("failed to decode aToB: %w", err)
	}
	return args, nil
}

// NewSwapInstruction builds a Whirlpool swap instruction against programID.
func NewSwapInstruction(programID solana.PublicKey, accounts SwapAccounts, args SwapArgs) (solana.Instruction, error) {
	data, err := EncodeSwapArgs(args)
	if err != nil {
		return nil, err
	}

	return solana.NewInstruction(
		programID,
		accounts.Metas(),
		data,
	), nil
}

// DefaultSqrtPriceLimit returns the protocol price bound for a direction:
// the minimum sqrt price for A->B, the maximum for B->A.
// Reference: whirlpools/legacy-sdk/whirlpool/src/utils/public/swap-utils.ts
func DefaultSqrtPriceLimit(aToB bool) uint128.Uint128 {
	if aToB {
		return uint128.FromBig(MIN_SQRT_PRICE_X64.BigInt())
	}
	return uint128.FromBig(MAX_SQRT_PRICE_X64.BigInt())
}
