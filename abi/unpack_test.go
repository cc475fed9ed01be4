package abi

import (
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHexDecode(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestReadIntegerNarrowsToNativeWidth(t *testing.T) {
	u8, _ := NewType("uint8", "", nil)
	v, err := ReadInteger(u8, mustHexDecode(t, word32("ff")))
	require.NoError(t, err)
	assert.Equal(t, byte(255), v)

	i8, _ := NewType("int8", "", nil)
	v, err = ReadInteger(i8, mustHexDecode(t, strings.Repeat("ff", 32)))
	require.NoError(t, err)
	assert.Equal(t, int8(-1), v)

	u256, _ := NewType("uint256", "", nil)
	v, err = ReadInteger(u256, mustHexDecode(t, word32("ff")))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(255), v)
}

func TestReadBoolRejectsGarbage(t *testing.T) {
	_, err := readBool(mustHexDecode(t, word32("01")))
	require.NoError(t, err)

	_, err = readBool(mustHexDecode(t, word32("02")))
	require.Error(t, err)
	var invalid *InvalidBooleanError
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, byte(2), invalid.Byte)

	dirty := mustHexDecode(t, word32("01"))
	dirty[5] = 1
	_, err = readBool(dirty)
	require.Error(t, err)
	assert.ErrorAs(t, err, &invalid)
}

func TestForEachUnpackTruncatedInput(t *testing.T) {
	sliceTy, _ := NewType("uint256[]", "", nil)
	_, err := forEachUnpack(sliceTy, mustHexDecode(t, word32("1")), 0, 3)
	require.Error(t, err)
	var trunc *TruncatedInputError
	assert.ErrorAs(t, err, &trunc)
}

func TestLengthPrefixPointsToTruncated(t *testing.T) {
	// An offset that claims more data than is actually present.
	offset := mustHexDecode(t, word32("20"))
	_, _, err := lengthPrefixPointsTo(0, offset)
	require.Error(t, err)
	var trunc *TruncatedInputError
	assert.ErrorAs(t, err, &trunc)
}

func TestToGoTypeFixedPointUnsupported(t *testing.T) {
	fp, err := NewType("fixed", "", nil)
	require.NoError(t, err)
	_, err = toGoType(0, fp, mustHexDecode(t, word32("0")))
	require.Error(t, err)
	var unsupported *UnsupportedTypeError
	assert.ErrorAs(t, err, &unsupported)
}

func TestUnpackStaticArrayRoundTrip(t *testing.T) {
	arrTy, err := NewType("uint256[3]", "", nil)
	require.NoError(t, err)
	args := Arguments{{Name: "a", Type: arrTy}}

	in := []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)}
	packed, err := args.Pack(in)
	require.NoError(t, err)

	out, err := args.Unpack(packed)
	require.NoError(t, err)
	require.Len(t, out, 1)
	got := out[0].([3]*big.Int)
	assert.Equal(t, big.NewInt(1), got[0])
	assert.Equal(t, big.NewInt(2), got[1])
	assert.Equal(t, big.NewInt(3), got[2])
}

func TestUnpackTupleRoundTrip(t *testing.T) {
	tupleTy, err := NewType("tuple", "", []ArgumentMarshaling{
		{Name: "A", Type: "uint256"},
		{Name: "B", Type: "string"},
	})
	require.NoError(t, err)
	args := Arguments{{Name: "t", Type: tupleTy}}

	packed, err := args.Pack(struct {
		A *big.Int
		B string
	}{A: big.NewInt(7), B: "hi"})
	require.NoError(t, err)

	out, err := args.Unpack(packed)
	require.NoError(t, err)
	require.Len(t, out, 1)
}
