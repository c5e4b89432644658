package sol

import (
	"github.com/gagliardetto/solana-go"
)

// AccountInfo is an account as seen by an instruction handler: the loaded
// state plus the privileges the enclosing transaction grants it.
type AccountInfo struct {
	Key        solana.PublicKey
	Owner      solana.PublicKey
	Lamports   uint64
	Data       []byte
	Executable bool

	IsSigner   bool
	IsWritable bool
}

// Meta returns the account meta carrying the same key and privileges
func (a *AccountInfo) Meta() *solana.AccountMeta {
	return solana.NewAccountMeta(a.Key, a.IsWritable, a.IsSigner)
}

// Keys returns the keys of accounts in order
func Keys(accounts []*AccountInfo) []solana.PublicKey {
	keys := make([]solana.PublicKey, 0, len(accounts))
	for _, acc := range accounts {
		keys = append(keys, acc.Key)
	}
	return keys
}
