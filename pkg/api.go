package pkg

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gtdvccc/orcacpi/pkg/sol"
)

// Invoker issues an instruction to another program on behalf of the current
// request. accounts are the account infos backing ix.Accounts(), in order.
// An error returned by the callee aborts the request.
type Invoker interface {
	Invoke(ctx context.Context, ix solana.Instruction, accounts []*sol.AccountInfo) error
}

// AccountSource loads account state by key, preserving order
type AccountSource interface {
	GetAccountInfos(ctx context.Context, keys ...solana.PublicKey) ([]*sol.AccountInfo, error)
}

// InvokerFunc adapts a function to Invoker
type InvokerFunc func(ctx context.Context, ix solana.Instruction, accounts []*sol.AccountInfo) error

func (f InvokerFunc) Invoke(ctx context.Context, ix solana.Instruction, accounts []*sol.AccountInfo) error {
	return f(ctx, ix, accounts)
}

// TokenAccountFinder resolves the token account an owner uses for a mint
type TokenAccountFinder interface {
	FindTokenAccount(ctx context.Context, owner solana.PublicKey, mint solana.PublicKey) (solana.PublicKey, error)
}
