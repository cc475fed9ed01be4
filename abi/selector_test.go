package abi

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorUnpackFallsBackToWholeInputWhenPrefixMismatches(t *testing.T) {
	u256, _ := NewType("uint256", "", nil)
	errSel := NewErrorSelector("Oops", Arguments{{Name: "code", Type: u256}})

	body, err := errSel.Inputs.Pack(big.NewInt(7))
	require.NoError(t, err)

	// No ID prefix at all: the whole input is the body, not rejected for
	// lacking errSel's own 4-byte ID.
	values, err := errSel.Unpack(body, InputDirection)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, big.NewInt(7), values[0])
}

func TestSelectorUnpackStripsMatchingPrefix(t *testing.T) {
	u256, _ := NewType("uint256", "", nil)
	errSel := NewErrorSelector("Oops", Arguments{{Name: "code", Type: u256}})

	packed, err := errSel.Pack(big.NewInt(7))
	require.NoError(t, err)

	values, err := errSel.Unpack(packed, InputDirection)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, big.NewInt(7), values[0])
}
