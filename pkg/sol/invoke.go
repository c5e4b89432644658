package sol

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/rpc"
)

// TxInvoker issues a forwarded instruction as its own transaction signed by
// the configured signers. The cluster reloads account state itself, so the
// account infos handed to Invoke are only used to check signers are present.
type TxInvoker struct {
	client   *Client
	signers  []solana.PrivateKey
	simulate bool
	budget   []solana.Instruction

	LastSignature solana.Signature
}

// NewTxInvoker returns an invoker that sends (or simulates) through c
func (c *Client) NewTxInvoker(signers []solana.PrivateKey, simulate bool) *TxInvoker {
	return &TxInvoker{
		client:   c,
		signers:  signers,
		simulate: simulate,
	}
}

func (i *TxInvoker) Invoke(ctx context.Context, ix solana.Instruction, accounts []*AccountInfo) error {
	for _, acc := range accounts {
		if !acc.IsSigner {
			continue
		}
		if !i.hasSigner(acc.Key) {
			return fmt.Errorf("no private key for signer %s", acc.Key)
		}
	}

	recent, err := i.client.RpcClient.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return fmt.Errorf("failed to get latest blockhash: %w", err)
	}
	insts := append(append([]solana.Instruction{}, i.budget...), ix)
	sig, err := i.client.SendTx(ctx, recent.Value.Blockhash, i.signers, insts, i.simulate)
	if err != nil {
		return err
	}
	i.LastSignature = sig
	return nil
}

// SetComputeBudget prepends compute unit limit and price instructions to
// every transaction. Zero values leave the cluster defaults in place.
func (i *TxInvoker) SetComputeBudget(unitLimit uint32, microLamportsPerUnit uint64) error {
	i.budget = nil
	if microLamportsPerUnit > 0 {
		cuPriceIx, err := computebudget.NewSetComputeUnitPriceInstruction(microLamportsPerUnit).ValidateAndBuild()
		if err != nil {
			return fmt.Errorf("failed to build compute unit price instruction: %w", err)
		}
		i.budget = append(i.budget, cuPriceIx)
	}
	if unitLimit > 0 {
		cuLimitIx, err := computebudget.NewSetComputeUnitLimitInstruction(unitLimit).ValidateAndBuild()
		if err != nil {
			return fmt.Errorf("failed to build compute unit limit instruction: %w", err)
		}
		i.budget = append(i.budget, cuLimitIx)
	}
	return nil
}

func (i *TxInvoker) hasSigner(key solana.PublicKey) bool {
	for _, s := range i.signers {
		if s.PublicKey().Equals(key) {
			return true
		}
	}
	return false
}
