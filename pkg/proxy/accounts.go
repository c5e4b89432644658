package proxy

import (
	"errors"

	"github.com/gagliardetto/solana-go"
	"github.com/gtdvccc/orcacpi/pkg/pool/orca"
	"github.com/gtdvccc/orcacpi/pkg/sol"
)

// ProxySwapAccountsLen is the number of accounts proxy_swap requires.
// Any further accounts are ignored and never forwarded.
const ProxySwapAccountsLen = 12

// ProxySwapAccounts are the accounts of a proxy_swap request after loading.
// A value is only handed out once every check in LoadProxySwapAccounts has
// passed.
type ProxySwapAccounts struct {
	// Destination of the forwarded swap. Not checked: whoever assembles the
	// transaction vouches for it.
	WhirlpoolProgram *sol.AccountInfo

	TokenProgram       *sol.AccountInfo
	TokenAuthority     *sol.AccountInfo
	Whirlpool          *sol.AccountInfo
	TokenOwnerAccountA *sol.AccountInfo
	TokenVaultA        *sol.AccountInfo
	TokenOwnerAccountB *sol.AccountInfo
	TokenVaultB        *sol.AccountInfo
	TickArray0         *sol.AccountInfo
	TickArray1         *sol.AccountInfo
	TickArray2         *sol.AccountInfo
	Oracle             *sol.AccountInfo

	Pool        *orca.WhirlpoolPool
	OwnerStateA *sol.TokenAccount
	VaultStateA *sol.TokenAccount
	OwnerStateB *sol.TokenAccount
	VaultStateB *sol.TokenAccount
}

// LoadProxySwapAccounts maps accounts onto the proxy_swap layout and checks
// every relationship the forwarded swap relies on. whirlpoolProgramID is the
// program expected to own the pool and tick array accounts.
//
// Type checks (ownership, discriminators, signer, program id) run first for
// all accounts, then constraints in declaration order. The first failure is
// returned.
func LoadProxySwapAccounts(accounts []*sol.AccountInfo, whirlpoolProgramID solana.PublicKey) (*ProxySwapAccounts, error) {
	if len(accounts) < ProxySwapAccountsLen {
		return nil, ErrAccountNotEnoughKeys
	}
	for _, acc := range accounts[:ProxySwapAccountsLen] {
		if acc == nil {
			return nil, ErrAccountNotEnoughKeys
		}
	}

	accs := &ProxySwapAccounts{
		WhirlpoolProgram:   accounts[0],
		TokenProgram:       accounts[1],
		TokenAuthority:     accounts[2],
		Whirlpool:          accounts[3],
		TokenOwnerAccountA: accounts[4],
		TokenVaultA:        accounts[5],
		TokenOwnerAccountB: accounts[6],
		TokenVaultB:        accounts[7],
		TickArray0:         accounts[8],
		TickArray1:         accounts[9],
		TickArray2:         accounts[10],
		Oracle:             accounts[11],
	}

	if err := accs.load(whirlpoolProgramID); err != nil {
		return nil, err
	}
	if err := accs.constrain(); err != nil {
		return nil, err
	}
	return accs, nil
}

func (a *ProxySwapAccounts) load(whirlpoolProgramID solana.PublicKey) error {
	var err error

	if !a.TokenProgram.Key.Equals(sol.TokenProgramID) {
		return ErrInvalidProgram.WithAccount("token_program")
	}
	if !a.TokenProgram.Executable {
		return ErrInvalidProgramExecutable.WithAccount("token_program")
	}

	if !a.TokenAuthority.IsSigner {
		return ErrAccountNotSigner.WithAccount("token_authority")
	}

	if a.Pool, err = loadWhirlpool(a.Whirlpool, whirlpoolProgramID); err != nil {
		return err
	}

	if a.OwnerStateA, err = loadTokenAccount(a.TokenOwnerAccountA, "token_owner_account_a"); err != nil {
		return err
	}
	if a.VaultStateA, err = loadTokenAccount(a.TokenVaultA, "token_vault_a"); err != nil {
		return err
	}
	if a.OwnerStateB, err = loadTokenAccount(a.TokenOwnerAccountB, "token_owner_account_b"); err != nil {
		return err
	}
	if a.VaultStateB, err = loadTokenAccount(a.TokenVaultB, "token_vault_b"); err != nil {
		return err
	}

	for _, ta := range a.tickArrays() {
		if err := checkTickArrayType(ta.acc, ta.name, whirlpoolProgramID); err != nil {
			return err
		}
	}
	return nil
}

func (a *ProxySwapAccounts) constrain() error {
	if err := checkMut(a.Whirlpool, "whirlpool"); err != nil {
		return err
	}

	if err := checkMut(a.TokenOwnerAccountA, "token_owner_account_a"); err != nil {
		return err
	}
	if !a.OwnerStateA.Mint.Equals(a.Pool.TokenMintA) {
		return ErrConstraintMintMismatch.WithAccount("token_owner_account_a")
	}

	if err := checkMut(a.TokenVaultA, "token_vault_a"); err != nil {
		return err
	}
	if !a.TokenVaultA.Key.Equals(a.Pool.TokenVaultA) {
		return ErrConstraintAddressMismatch.WithAccount("token_vault_a")
	}

	if err := checkMut(a.TokenOwnerAccountB, "token_owner_account_b"); err != nil {
		return err
	}
	if !a.OwnerStateB.Mint.Equals(a.Pool.TokenMintB) {
		return ErrConstraintMintMismatch.WithAccount("token_owner_account_b")
	}

	if err := checkMut(a.TokenVaultB, "token_vault_b"); err != nil {
		return err
	}
	if !a.TokenVaultB.Key.Equals(a.Pool.TokenVaultB) {
		return ErrConstraintAddressMismatch.WithAccount("token_vault_b")
	}

	for _, ta := range a.tickArrays() {
		if err := checkMut(ta.acc, ta.name); err != nil {
			return err
		}
		// layout was checked in load
		whirlpool, _ := orca.TickArrayWhirlpool(ta.acc.Data)
		if !whirlpool.Equals(a.Whirlpool.Key) {
			return ErrConstraintHasOneMismatch.WithAccount(ta.name)
		}
	}

	if err := checkMut(a.Oracle, "oracle"); err != nil {
		return err
	}
	oracle, err := orca.DeriveWhirlpoolOraclePDA(a.Whirlpool.Key, a.WhirlpoolProgram.Key)
	if err != nil {
		return ErrConstraintSeedsMismatch.WithAccount("oracle").WithCause(err)
	}
	if !a.Oracle.Key.Equals(oracle) {
		return ErrConstraintSeedsMismatch.WithAccount("oracle")
	}

	return nil
}

type namedAccount struct {
	name string
	acc  *sol.AccountInfo
}

func (a *ProxySwapAccounts) tickArrays() []namedAccount {
	return []namedAccount{
		{"tick_array_0", a.TickArray0},
		{"tick_array_1", a.TickArray1},
		{"tick_array_2", a.TickArray2},
	}
}

func checkMut(acc *sol.AccountInfo, name string) error {
	if !acc.IsWritable {
		return ErrConstraintMut.WithAccount(name)
	}
	return nil
}

func loadWhirlpool(acc *sol.AccountInfo, programID solana.PublicKey) (*orca.WhirlpoolPool, error) {
	if !acc.Owner.Equals(programID) {
		return nil, ErrAccountOwnedByWrongProgram.WithAccount("whirlpool")
	}
	pool := &orca.WhirlpoolPool{}
	if err := pool.Decode(acc.Data); err != nil {
		return nil, accountDecodeError(err).WithAccount("whirlpool")
	}
	pool.PoolId = acc.Key
	return pool, nil
}

func loadTokenAccount(acc *sol.AccountInfo, name string) (*sol.TokenAccount, error) {
	if !acc.Owner.Equals(sol.TokenProgramID) {
		return nil, ErrAccountOwnedByWrongProgram.WithAccount(name)
	}
	state, err := sol.DecodeTokenAccount(acc.Data)
	if err != nil {
		return nil, ErrAccountDidNotDeserialize.WithAccount(name).WithCause(err)
	}
	return state, nil
}

func checkTickArrayType(acc *sol.AccountInfo, name string, programID solana.PublicKey) error {
	if !acc.Owner.Equals(programID) {
		return ErrAccountOwnedByWrongProgram.WithAccount(name)
	}
	if _, err := orca.TickArrayWhirlpool(acc.Data); err != nil {
		return accountDecodeError(err).WithAccount(name)
	}
	return nil
}

func accountDecodeError(err error) *Error {
	if errors.Is(err, orca.ErrDiscriminatorMismatch) {
		return ErrAccountDiscriminatorMismatch.WithCause(err)
	}
	return ErrAccountDidNotDeserialize.WithCause(err)
}
