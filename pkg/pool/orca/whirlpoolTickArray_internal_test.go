package orca

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOfficialTickArrayStartIndex(t *testing.T) {
	tests := []struct {
		tick, spacing, offset int64
		want                  int64
	}{
		{0, 64, 0, 0},
		{5631, 64, 0, 0},
		{5632, 64, 0, 5632},
		{-1, 64, 0, -5632},
		{-5632, 64, 0, -5632},
		{-5633, 64, 0, -11264},
		{-100, 64, -1, -11264},
		{100, 1, 1, 176},
		{-100, 8, 2, 704},
	}

	for _, tt := range tests {
		got, err := getOfficialTickArrayStartIndex(tt.tick, tt.spacing, tt.offset)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "tick %d spacing %d offset %d", tt.tick, tt.spacing, tt.offset)
	}
}

func TestGetOfficialTickArrayStartIndexBounds(t *testing.T) {
	_, err := getOfficialTickArrayStartIndex(MAX_TICK, 64, 1)
	assert.Error(t, err)

	_, err = getOfficialTickArrayStartIndex(MIN_TICK, 64, -2)
	assert.Error(t, err)
}

func TestInt128FromBytes(t *testing.T) {
	minusOne := make([]byte, 16)
	for i := range minusOne {
		minusOne[i] = 0xff
	}
	assert.Equal(t, 0, big.NewInt(-1).Cmp(int128FromBytes(minusOne)))

	five := make([]byte, 16)
	five[0] = 5
	assert.Equal(t, 0, big.NewInt(5).Cmp(int128FromBytes(five)))

	minInt128 := make([]byte, 16)
	minInt128[15] = 0x80
	want := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	assert.Equal(t, 0, want.Cmp(int128FromBytes(minInt128)))
}
