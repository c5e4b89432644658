package sol

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxInvokerComputeBudget(t *testing.T) {
	inv := (&Client{}).NewTxInvoker(nil, true)

	require.NoError(t, inv.SetComputeBudget(120_000, 1000))
	require.Len(t, inv.budget, 2)
	for _, ix := range inv.budget {
		assert.Equal(t, computebudget.ProgramID, ix.ProgramID())
	}

	require.NoError(t, inv.SetComputeBudget(0, 0))
	assert.Empty(t, inv.budget)
}

func TestTxInvokerHasSigner(t *testing.T) {
	wallet := solana.NewWallet()
	inv := (&Client{}).NewTxInvoker([]solana.PrivateKey{wallet.PrivateKey}, true)

	assert.True(t, inv.hasSigner(wallet.PublicKey()))
	assert.False(t, inv.hasSigner(solana.NewWallet().PublicKey()))
}
