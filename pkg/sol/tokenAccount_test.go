package sol_test

import (
	"encoding/binary"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gtdvccc/orcacpi/internal/testutil"
	"github.com/gtdvccc/orcacpi/pkg/sol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTokenAccount(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()

	acc, err := sol.DecodeTokenAccount(testutil.TokenAccountData(mint, owner, 1_500))
	require.NoError(t, err)
	assert.Equal(t, mint, acc.Mint)
	assert.Equal(t, owner, acc.Owner)
	assert.Equal(t, uint64(1_500), acc.Amount)
	assert.Equal(t, token.Initialized, acc.State)
	assert.Nil(t, acc.Delegate)
	assert.Nil(t, acc.IsNative)
	assert.Nil(t, acc.CloseAuthority)
}

func TestDecodeTokenAccountOptionalFields(t *testing.T) {
	delegate := solana.NewWallet().PublicKey()
	closer := solana.NewWallet().PublicKey()

	data := testutil.TokenAccountData(solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), 10)
	binary.LittleEndian.PutUint32(data[72:76], 1)
	copy(data[76:108], delegate.Bytes())
	binary.LittleEndian.PutUint32(data[109:113], 1)
	binary.LittleEndian.PutUint64(data[113:121], 2_039_280)
	binary.LittleEndian.PutUint64(data[121:129], 7)
	binary.LittleEndian.PutUint32(data[129:133], 1)
	copy(data[133:165], closer.Bytes())

	acc, err := sol.DecodeTokenAccount(data)
	require.NoError(t, err)
	require.NotNil(t, acc.Delegate)
	assert.Equal(t, delegate, *acc.Delegate)
	require.NotNil(t, acc.IsNative)
	assert.Equal(t, uint64(2_039_280), *acc.IsNative)
	assert.Equal(t, uint64(7), acc.DelegatedAmount)
	require.NotNil(t, acc.CloseAuthority)
	assert.Equal(t, closer, *acc.CloseAuthority)

	var direct token.Account
	require.NoError(t, direct.UnmarshalWithDecoder(bin.NewBinDecoder(data)))
	assert.Equal(t, direct, *acc)
}

func TestDecodeTokenAccountErrors(t *testing.T) {
	data := testutil.TokenAccountData(solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), 1)

	_, err := sol.DecodeTokenAccount(data[:100])
	assert.Error(t, err)

	data[108] = byte(token.Uninitialized)
	_, err = sol.DecodeTokenAccount(data)
	assert.Error(t, err)
}

func TestAccountInfoMeta(t *testing.T) {
	acc := &sol.AccountInfo{Key: solana.NewWallet().PublicKey(), IsSigner: true}
	meta := acc.Meta()
	assert.Equal(t, acc.Key, meta.PublicKey)
	assert.True(t, meta.IsSigner)
	assert.False(t, meta.IsWritable)
}

func TestAnchorDiscriminator(t *testing.T) {
	assert.Equal(t, [8]byte{248, 198, 158, 145, 225, 117, 135, 200}, sol.AnchorDiscriminator("global", "swap"))
	assert.Equal(t, [8]byte{63, 149, 209, 12, 225, 128, 99, 9}, sol.AnchorDiscriminator("account", "Whirlpool"))
}
