package proxy

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gtdvccc/orcacpi/internal/testutil"
	"github.com/gtdvccc/orcacpi/pkg"
	"github.com/gtdvccc/orcacpi/pkg/sol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForwardSwapRejectsEscalatedSigner(t *testing.T) {
	fx := testutil.NewSwapAccounts(t)
	accs, err := LoadProxySwapAccounts(fx.List(), fx.ProgramID)
	require.NoError(t, err)

	accs.TokenAuthority.IsSigner = false

	called := false
	invoker := pkg.InvokerFunc(func(context.Context, solana.Instruction, []*sol.AccountInfo) error {
		called = true
		return nil
	})

	err = ForwardSwap(context.Background(), invoker, accs, ProxySwapArgs{Amount: 1})
	assert.ErrorIs(t, err, ErrPrivilegeEscalation)
	assert.False(t, called)
}

func TestForwardSwapRejectsEscalatedWritable(t *testing.T) {
	fx := testutil.NewSwapAccounts(t)
	accs, err := LoadProxySwapAccounts(fx.List(), fx.ProgramID)
	require.NoError(t, err)

	accs.TickArray2.IsWritable = false

	err = ForwardSwap(context.Background(), &recordingInvoker{}, accs, ProxySwapArgs{Amount: 1})
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrCodePrivilegeEscalation, perr.Code)
	assert.Equal(t, fx.TickArray2.Key.String(), perr.Account)
}

func TestCheckPrivileges(t *testing.T) {
	key := solana.NewWallet().PublicKey()
	other := solana.NewWallet().PublicKey()

	tests := []struct {
		name    string
		metas   []*solana.AccountMeta
		infos   []*sol.AccountInfo
		wantErr bool
	}{
		{
			name:  "same privileges",
			metas: []*solana.AccountMeta{solana.NewAccountMeta(key, true, true)},
			infos: []*sol.AccountInfo{{Key: key, IsSigner: true, IsWritable: true}},
		},
		{
			name:  "fewer privileges",
			metas: []*solana.AccountMeta{solana.NewAccountMeta(key, false, false)},
			infos: []*sol.AccountInfo{{Key: key, IsSigner: true, IsWritable: true}},
		},
		{
			name:    "signer escalated",
			metas:   []*solana.AccountMeta{solana.NewAccountMeta(key, false, true)},
			infos:   []*sol.AccountInfo{{Key: key}},
			wantErr: true,
		},
		{
			name:    "writable escalated",
			metas:   []*solana.AccountMeta{solana.NewAccountMeta(key, true, false)},
			infos:   []*sol.AccountInfo{{Key: key, IsSigner: true}},
			wantErr: true,
		},
		{
			name:    "key mismatch",
			metas:   []*solana.AccountMeta{solana.NewAccountMeta(key, false, false)},
			infos:   []*sol.AccountInfo{{Key: other}},
			wantErr: true,
		},
		{
			name:    "count mismatch",
			metas:   []*solana.AccountMeta{solana.NewAccountMeta(key, false, false)},
			infos:   nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkPrivileges(tt.metas, tt.infos)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPrivilegeEscalation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSwapInstructionTargetsSuppliedProgram(t *testing.T) {
	fx := testutil.NewSwapAccounts(t)
	accs, err := LoadProxySwapAccounts(fx.List(), fx.ProgramID)
	require.NoError(t, err)

	ix, infos, err := SwapInstruction(accs, ProxySwapArgs{Amount: 3})
	require.NoError(t, err)
	assert.Equal(t, accs.WhirlpoolProgram.Key, ix.ProgramID())
	assert.Equal(t, fx.SwapKeys(), sol.Keys(infos))
	assert.NotContains(t, sol.Keys(infos), accs.WhirlpoolProgram.Key)
}
