package proxy

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gtdvccc/orcacpi/pkg/sol"
	"lukechampine.com/uint128"
)

var (
	// ProgramID is the deployed relay program
	ProgramID = solana.MustPublicKeyFromBase58("3pQ97qmmc4ifb75ZCUvXwk9Q7DtSuymzKknd7CnroLD1")

	ProxySwapDiscriminator = sol.AnchorDiscriminator("global", "proxy_swap")
)

const (
	ProxySwapArgsSize = (8 + // amount
		8 + // other_amount_threshold
		16 + // sqrt_price_limit
		1 + // amount_specified_is_input
		1) // a_to_b
)

// ProxySwapArgs are the arguments of proxy_swap, forwarded untouched.
type ProxySwapArgs struct {
	Amount                 uint64
	OtherAmountThreshold   uint64
	SqrtPriceLimit         uint128.Uint128
	AmountSpecifiedIsInput bool
	AToB                   bool
}

// EncodeProxySwapArgs serializes proxy_swap instruction data
func EncodeProxySwapArgs(args ProxySwapArgs) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)

	if err := enc.WriteBytes(ProxySwapDiscriminator[:], false); err != nil {
		return nil, fmt.Errorf("failed to write discriminator: %w", err)
	}
	if err := enc.WriteUint64(args.Amount, binary.LittleEndian); err != nil {
		return nil, fmt.Errorf("failed to encode amount: %w", err)
	}
	if err := enc.WriteUint64(args.OtherAmountThreshold, binary.LittleEndian); err != nil {
		return nil, fmt.Errorf("failed to encode other_amount_threshold: %w", err)
	}
	if err := enc.WriteUint64(args.SqrtPriceLimit.Lo, binary.LittleEndian); err != nil {
		return nil, fmt.Errorf("failed to encode sqrt_price_limit lo: %w", err)
	}
	if err := enc.WriteUint64(args.SqrtPriceLimit.Hi, binary.LittleEndian); err != nil {
		return nil, fmt.Errorf("failed to encode sqrt_price_limit hi: %w", err)
	}
	if err := enc.WriteBool(args.AmountSpecifiedIsInput); err != nil {
		return nil, fmt.Errorf("failed to encode amount_specified_is_input: %w", err)
	}
	if err := enc.WriteBool(args.AToB); err != nil {
		return nil, fmt.Errorf("failed to encode a_to_b: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeProxySwapArgs parses proxy_swap instruction data. Trailing bytes
// after the arguments are accepted and dropped.
func DecodeProxySwapArgs(data []byte) (ProxySwapArgs, error) {
	var args ProxySwapArgs
	if len(data) < 8 {
		return args, ErrInstructionMissing
	}
	if !bytes.Equal(data[:8], ProxySwapDiscriminator[:]) {
		return args, ErrInstructionFallbackNotFound
	}
	if len(data)-8 < ProxySwapArgsSize {
		return args, ErrInstructionDidNotDeserialize.WithCause(
			fmt.Errorf("got %d argument bytes, want at least %d", len(data)-8, ProxySwapArgsSize))
	}

	dec := bin.NewBorshDecoder(data[8:])
	var err error
	if args.Amount, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return args, ErrInstructionDidNotDeserialize.WithCause(err)
	}
	if args.OtherAmountThreshold, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return args, ErrInstructionDidNotDeserialize.WithCause(err)
	}
	raw, err := dec.ReadNBytes(16)
	if err != nil {
		return args, ErrInstructionDidNotDeserialize.WithCause(err)
	}
	args.SqrtPriceLimit = uint128.FromBytes(raw)

	// Borsh only accepts 0 or 1 for bool
	flags, err := dec.ReadNBytes(2)
	if err != nil {
		return args, ErrInstructionDidNotDeserialize.WithCause(err)
	}
	for i, b := range flags {
		if b > 1 {
			return args, ErrInstructionDidNotDeserialize.WithCause(fmt.Errorf("invalid bool %d at flag %d", b, i))
		}
	}
	args.AmountSpecifiedIsInput = flags[0] == 1
	args.AToB = flags[1] == 1

	return args, nil
}

// NewProxySwapInstruction builds a proxy_swap instruction for the relay at
// programID. accounts are taken in proxy_swap order with the privileges they
// carry.
func NewProxySwapInstruction(programID solana.PublicKey, accounts []*sol.AccountInfo, args ProxySwapArgs) (solana.Instruction, error) {
	if len(accounts) != ProxySwapAccountsLen {
		return nil, fmt.Errorf("proxy_swap takes %d accounts, got %d", ProxySwapAccountsLen, len(accounts))
	}
	data, err := EncodeProxySwapArgs(args)
	if err != nil {
		return nil, err
	}

	metas := make(solana.AccountMetaSlice, 0, len(accounts))
	for _, acc := range accounts {
		metas = append(metas, acc.Meta())
	}
	return solana.NewInstruction(programID, metas, data), nil
}
