package protocol

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gtdvccc/orcacpi/pkg"
	"github.com/gtdvccc/orcacpi/pkg/pool/orca"
	"github.com/gtdvccc/orcacpi/pkg/sol"
)

// OrcaWhirlpoolProtocol loads Orca Whirlpool state over RPC and assembles the
// accounts a proxy_swap request needs.
//
// Program ID: whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc
type OrcaWhirlpoolProtocol struct {
	Accounts      pkg.AccountSource
	TokenAccounts pkg.TokenAccountFinder
	ProgramID     solana.PublicKey
}

// NewOrcaWhirlpool creates a protocol instance reading through solClient
//
// Parameters:
//   - solClient: Solana client for blockchain interaction
//   - programID: whirlpool program owning the pools
func NewOrcaWhirlpool(solClient *sol.Client, programID solana.PublicKey) *OrcaWhirlpoolProtocol {
	return &OrcaWhirlpoolProtocol{
		Accounts:      solClient,
		TokenAccounts: solClient,
		ProgramID:     programID,
	}
}

// SwapSnapshot is the state of one proxy_swap request: the pool and the
// accounts in proxy_swap order with the privileges the transaction grants.
type SwapSnapshot struct {
	Pool     *orca.WhirlpoolPool
	Accounts []*sol.AccountInfo
}

// FetchPoolByID gets a single whirlpool by address
func (p *OrcaWhirlpoolProtocol) FetchPoolByID(ctx context.Context, poolID solana.PublicKey) (*orca.WhirlpoolPool, error) {
	infos, err := p.Accounts.GetAccountInfos(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool account %s: %w", poolID, err)
	}
	return p.decodePool(infos[0])
}

// FetchPoolByPair gets the whirlpool of a token pair and tick spacing under
// the given config.
func (p *OrcaWhirlpoolProtocol) FetchPoolByPair(ctx context.Context, config, mintA, mintB solana.PublicKey, tickSpacing uint16) (*orca.WhirlpoolPool, error) {
	poolID, err := orca.DeriveWhirlpoolPDA(p.ProgramID, config, mintA, mintB, tickSpacing)
	if err != nil {
		return nil, err
	}
	return p.FetchPoolByID(ctx, poolID)
}

func (p *OrcaWhirlpoolProtocol) decodePool(info *sol.AccountInfo) (*orca.WhirlpoolPool, error) {
	if len(info.Data) == 0 {
		return nil, fmt.Errorf("pool account %s not found", info.Key)
	}
	if !info.Owner.Equals(p.ProgramID) {
		return nil, fmt.Errorf("pool account %s is owned by %s, not %s", info.Key, info.Owner, p.ProgramID)
	}
	layout := &orca.WhirlpoolPool{}
	if err := layout.Decode(info.Data); err != nil {
		return nil, fmt.Errorf("failed to decode pool data for %s: %w", info.Key, err)
	}
	layout.PoolId = info.Key
	return layout, nil
}

// TickArrayKeys returns the three tick arrays a swap on pool in direction aToB
// walks through.
func (p *OrcaWhirlpoolProtocol) TickArrayKeys(pool *orca.WhirlpoolPool, aToB bool) ([]solana.PublicKey, error) {
	tickArray0, tickArray1, tickArray2, err := orca.DeriveMultipleWhirlpoolTickArrayPDAs(
		p.ProgramID,
		pool.PoolId,
		int64(pool.TickCurrentIndex),
		int64(pool.TickSpacing),
		aToB,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to derive tick array PDAs: %w", err)
	}
	return []solana.PublicKey{tickArray0, tickArray1, tickArray2}, nil
}

// FetchTickArrays loads and decodes the tick arrays for direction aToB. An
// array that does not exist yet is returned as nil.
func (p *OrcaWhirlpoolProtocol) FetchTickArrays(ctx context.Context, pool *orca.WhirlpoolPool, aToB bool) ([]*orca.WhirlpoolTickArray, error) {
	keys, err := p.TickArrayKeys(pool, aToB)
	if err != nil {
		return nil, err
	}
	infos, err := p.Accounts.GetAccountInfos(ctx, keys...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tick arrays: %w", err)
	}

	res := make([]*orca.WhirlpoolTickArray, len(infos))
	for i, info := range infos {
		if len(info.Data) == 0 {
			continue
		}
		ta, err := orca.ReadTickArray(info)
		if err != nil {
			return nil, err
		}
		res[i] = ta
	}
	return res, nil
}

// LoadSwapAccounts assembles the proxy_swap accounts for authority swapping
// on poolID in direction aToB. The authority's token accounts are looked up
// per mint; the first one found wins, otherwise its associated token account
// is used.
func (p *OrcaWhirlpoolProtocol) LoadSwapAccounts(ctx context.Context, poolID, authority solana.PublicKey, aToB bool) (*SwapSnapshot, error) {
	pool, err := p.FetchPoolByID(ctx, poolID)
	if err != nil {
		return nil, err
	}

	tickArrays, err := p.TickArrayKeys(pool, aToB)
	if err != nil {
		return nil, err
	}
	oracle, err := orca.DeriveWhirlpoolOraclePDA(poolID, p.ProgramID)
	if err != nil {
		return nil, err
	}

	mintA, mintB := pool.GetTokens()
	ownerA, err := p.TokenAccounts.FindTokenAccount(ctx, authority, mintA)
	if err != nil {
		return nil, fmt.Errorf("failed to find token account for mint %s: %w", mintA, err)
	}
	ownerB, err := p.TokenAccounts.FindTokenAccount(ctx, authority, mintB)
	if err != nil {
		return nil, fmt.Errorf("failed to find token account for mint %s: %w", mintB, err)
	}

	keys := []solana.PublicKey{
		p.ProgramID,
		sol.TokenProgramID,
		authority,
		poolID,
		ownerA,
		pool.TokenVaultA,
		ownerB,
		pool.TokenVaultB,
		tickArrays[0],
		tickArrays[1],
		tickArrays[2],
		oracle,
	}
	infos, err := p.Accounts.GetAccountInfos(ctx, keys...)
	if err != nil {
		return nil, fmt.Errorf("failed to load swap accounts: %w", err)
	}

	// Missing tick arrays make the whirlpool program fail the swap; report
	// them here instead of after a round trip.
	for i, info := range infos[8:11] {
		if len(info.Data) == 0 {
			return nil, fmt.Errorf("tick_array_%d %s is not initialized for direction aToB=%v", i, info.Key, aToB)
		}
	}

	// authority pays and signs; everything the swap mutates is writable
	infos[2].IsSigner = true
	infos[2].IsWritable = true
	for _, info := range infos[3:] {
		info.IsWritable = true
	}

	return &SwapSnapshot{Pool: pool, Accounts: infos}, nil
}
