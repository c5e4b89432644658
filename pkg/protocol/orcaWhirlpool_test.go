package protocol

import (
	"context"
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gtdvccc/orcacpi/internal/testutil"
	"github.com/gtdvccc/orcacpi/pkg/pool/orca"
	"github.com/gtdvccc/orcacpi/pkg/proxy"
	"github.com/gtdvccc/orcacpi/pkg/sol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chain serves account state from memory, without privileges, the way
// sol.Client does.
type chain struct {
	accounts map[solana.PublicKey]*sol.AccountInfo
	owned    map[solana.PublicKey]solana.PublicKey // mint -> token account
}

func newChain(fx *testutil.SwapAccounts) *chain {
	c := &chain{
		accounts: make(map[solana.PublicKey]*sol.AccountInfo),
		owned: map[solana.PublicKey]solana.PublicKey{
			fx.Pool.TokenMintA: fx.TokenOwnerAccountA.Key,
			fx.Pool.TokenMintB: fx.TokenOwnerAccountB.Key,
		},
	}
	for _, acc := range fx.List() {
		stored := *acc
		stored.IsSigner = false
		stored.IsWritable = false
		c.accounts[acc.Key] = &stored
	}
	// the oracle is never initialized on chain
	delete(c.accounts, fx.Oracle.Key)
	return c
}

func (c *chain) GetAccountInfos(_ context.Context, keys ...solana.PublicKey) ([]*sol.AccountInfo, error) {
	infos := make([]*sol.AccountInfo, len(keys))
	for i, key := range keys {
		info := &sol.AccountInfo{Key: key}
		if acc, ok := c.accounts[key]; ok {
			copied := *acc
			info = &copied
		}
		infos[i] = info
	}
	return infos, nil
}

func (c *chain) FindTokenAccount(_ context.Context, owner solana.PublicKey, mint solana.PublicKey) (solana.PublicKey, error) {
	if acc, ok := c.owned[mint]; ok {
		return acc, nil
	}
	return solana.PublicKey{}, fmt.Errorf("no token account for %s", mint)
}

func newProtocol(c *chain) *OrcaWhirlpoolProtocol {
	return &OrcaWhirlpoolProtocol{Accounts: c, TokenAccounts: c, ProgramID: orca.ORCA_WHIRLPOOL_PROGRAM_ID}
}

func TestLoadSwapAccounts(t *testing.T) {
	fx := testutil.NewSwapAccounts(t)
	p := newProtocol(newChain(fx))

	snap, err := p.LoadSwapAccounts(context.Background(), fx.Whirlpool.Key, fx.TokenAuthority.Key, true)
	require.NoError(t, err)

	assert.Equal(t, fx.Pool.TokenMintA, snap.Pool.TokenMintA)
	assert.Equal(t, fx.Whirlpool.Key, snap.Pool.PoolId)
	assert.Equal(t, sol.Keys(fx.List()), sol.Keys(snap.Accounts))

	for i, acc := range snap.Accounts {
		assert.Equal(t, i == 2, acc.IsSigner, "signer flag of account %d", i)
		assert.Equal(t, i >= 2, acc.IsWritable, "writable flag of account %d", i)
	}

	// the snapshot passes the relay's own checks
	_, err = proxy.LoadProxySwapAccounts(snap.Accounts, p.ProgramID)
	assert.NoError(t, err)
}

func TestLoadSwapAccountsMissingTickArray(t *testing.T) {
	fx := testutil.NewSwapAccounts(t)
	c := newChain(fx)
	delete(c.accounts, fx.TickArray2.Key)

	_, err := newProtocol(c).LoadSwapAccounts(context.Background(), fx.Whirlpool.Key, fx.TokenAuthority.Key, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tick_array_2")
}

func TestFetchPoolByID(t *testing.T) {
	fx := testutil.NewSwapAccounts(t)
	c := newChain(fx)
	p := newProtocol(c)

	pool, err := p.FetchPoolByID(context.Background(), fx.Whirlpool.Key)
	require.NoError(t, err)
	assert.Equal(t, fx.Pool.TokenVaultB, pool.TokenVaultB)

	_, err = p.FetchPoolByID(context.Background(), solana.NewWallet().PublicKey())
	assert.Error(t, err)

	c.accounts[fx.Whirlpool.Key].Owner = solana.SystemProgramID
	_, err = p.FetchPoolByID(context.Background(), fx.Whirlpool.Key)
	assert.Error(t, err)
}

func TestFetchPoolByPair(t *testing.T) {
	fx := testutil.NewSwapAccounts(t)
	c := newChain(fx)
	p := newProtocol(c)

	poolID, err := orca.DeriveWhirlpoolPDA(p.ProgramID, orca.ORCA_WHIRLPOOLS_CONFIG, fx.Pool.TokenMintA, fx.Pool.TokenMintB, testutil.TickSpacing)
	require.NoError(t, err)
	stored := *fx.Whirlpool
	stored.Key = poolID
	c.accounts[poolID] = &stored

	pool, err := p.FetchPoolByPair(context.Background(), orca.ORCA_WHIRLPOOLS_CONFIG, fx.Pool.TokenMintA, fx.Pool.TokenMintB, testutil.TickSpacing)
	require.NoError(t, err)
	assert.Equal(t, poolID, pool.PoolId)
}

func TestFetchTickArrays(t *testing.T) {
	fx := testutil.NewSwapAccounts(t)
	c := newChain(fx)
	delete(c.accounts, fx.TickArray1.Key)

	arrays, err := newProtocol(c).FetchTickArrays(context.Background(), fx.Pool, true)
	require.NoError(t, err)
	require.Len(t, arrays, 3)

	require.NotNil(t, arrays[0])
	assert.Equal(t, fx.TickArrayStarts[0], arrays[0].StartTickIndex)
	assert.Nil(t, arrays[1])
	require.NotNil(t, arrays[2])
	assert.Equal(t, fx.TickArrayStarts[2], arrays[2].StartTickIndex)
}
