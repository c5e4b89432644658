package proxy

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gtdvccc/orcacpi/pkg"
	"github.com/gtdvccc/orcacpi/pkg/pool/orca"
	"github.com/gtdvccc/orcacpi/pkg/sol"
)

// SwapInstruction builds the whirlpool swap a validated request forwards,
// together with the account infos backing its metas. The instruction targets
// the supplied whirlpool program as is.
func SwapInstruction(accs *ProxySwapAccounts, args ProxySwapArgs) (solana.Instruction, []*sol.AccountInfo, error) {
	swapAccounts := orca.SwapAccounts{
		Whirlpool:          accs.Whirlpool.Key,
		TokenProgram:       accs.TokenProgram.Key,
		TokenAuthority:     accs.TokenAuthority.Key,
		TokenOwnerAccountA: accs.TokenOwnerAccountA.Key,
		TokenVaultA:        accs.TokenVaultA.Key,
		TokenOwnerAccountB: accs.TokenOwnerAccountB.Key,
		TokenVaultB:        accs.TokenVaultB.Key,
		TickArray0:         accs.TickArray0.Key,
		TickArray1:         accs.TickArray1.Key,
		TickArray2:         accs.TickArray2.Key,
		Oracle:             accs.Oracle.Key,
	}
	swapArgs := orca.SwapArgs{
		Amount:                 args.Amount,
		OtherAmountThreshold:   args.OtherAmountThreshold,
		SqrtPriceLimit:         args.SqrtPriceLimit,
		AmountSpecifiedIsInput: args.AmountSpecifiedIsInput,
		AToB:                   args.AToB,
	}

	ix, err := orca.NewSwapInstruction(accs.WhirlpoolProgram.Key, swapAccounts, swapArgs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build whirlpool swap: %w", err)
	}

	// same order as SwapAccounts.Metas
	infos := []*sol.AccountInfo{
		accs.Whirlpool,
		accs.TokenProgram,
		accs.TokenAuthority,
		accs.TokenOwnerAccountA,
		accs.TokenVaultA,
		accs.TokenOwnerAccountB,
		accs.TokenVaultB,
		accs.TickArray0,
		accs.TickArray1,
		accs.TickArray2,
		accs.Oracle,
	}
	return ix, infos, nil
}

// ForwardSwap issues the whirlpool swap for accs through invoker under the
// privileges the request already holds. The callee's error is returned as is.
func ForwardSwap(ctx context.Context, invoker pkg.Invoker, accs *ProxySwapAccounts, args ProxySwapArgs) error {
	ix, infos, err := SwapInstruction(accs, args)
	if err != nil {
		return err
	}
	if err := checkPrivileges(ix.Accounts(), infos); err != nil {
		return err
	}
	return invoker.Invoke(ctx, ix, infos)
}

// checkPrivileges rejects metas asking for signer or writable access the
// backing account was not granted.
func checkPrivileges(metas []*solana.AccountMeta, infos []*sol.AccountInfo) error {
	if len(metas) != len(infos) {
		return ErrPrivilegeEscalation.WithCause(fmt.Errorf("%d metas for %d accounts", len(metas), len(infos)))
	}
	for i, meta := range metas {
		info := infos[i]
		if !meta.PublicKey.Equals(info.Key) {
			return ErrPrivilegeEscalation.WithAccount(meta.PublicKey.String()).WithCause(fmt.Errorf("meta %d does not match account %s", i, info.Key))
		}
		if meta.IsSigner && !info.IsSigner {
			return ErrPrivilegeEscalation.WithAccount(meta.PublicKey.String()).WithCause(fmt.Errorf("signer privilege escalated"))
		}
		if meta.IsWritable && !info.IsWritable {
			return ErrPrivilegeEscalation.WithAccount(meta.PublicKey.String()).WithCause(fmt.Errorf("writable privilege escalated"))
		}
	}
	return nil
}
