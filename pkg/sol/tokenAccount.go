package sol

import (
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

// TokenAccount is a decoded SPL token account
type TokenAccount = token.Account

// DecodeTokenAccount decodes an initialized SPL token account.
func DecodeTokenAccount(data []byte) (*TokenAccount, error) {
	if uint64(len(data)) != TokenAccountSize {
		return nil, fmt.Errorf("invalid token account size: got %d, want %d", len(data), TokenAccountSize)
	}

	acc := &TokenAccount{}
	if err := acc.UnmarshalWithDecoder(bin.NewBinDecoder(data)); err != nil {
		return nil, fmt.Errorf("failed to decode token account: %w", err)
	}
	if acc.State == token.Uninitialized {
		return nil, fmt.Errorf("token account is not initialized")
	}
	return acc, nil
}

// FindTokenAccount returns the first token account of owner for mint, or the
// associated token address when the owner holds none.
func (c *Client) FindTokenAccount(ctx context.Context, owner solana.PublicKey, mint solana.PublicKey) (solana.PublicKey, error) {
	acc, err := c.RpcClient.GetTokenAccountsByOwner(ctx, owner,
		&rpc.GetTokenAccountsConfig{Mint: mint.ToPointer()},
		&rpc.GetTokenAccountsOpts{
			Encoding: solana.EncodingBase64,
		},
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to get token accounts by owner: %w", err)
	}
	if len(acc.Value) > 0 {
		return acc.Value[0].Pubkey, nil
	}

	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to find associated token address: %w", err)
	}
	return ata, nil
}
