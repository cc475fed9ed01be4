package abi

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePackedUint16String(t *testing.T) {
	u16, err := NewType("uint16", "", nil)
	require.NoError(t, err)
	str, err := NewType("string", "", nil)
	require.NoError(t, err)

	packed, err := EncodePacked([]Type{u16, str}, []interface{}{uint16(0x12), "Elixir ABI"})
	require.NoError(t, err)
	assert.Equal(t, "0012456c6978697220414249", hex.EncodeToString(packed))
}

func TestEncodePackedRejectsTuple(t *testing.T) {
	tupleTy, err := NewType("tuple", "", []ArgumentMarshaling{{Name: "a", Type: "uint256"}})
	require.NoError(t, err)
	_, err = EncodePacked([]Type{tupleTy}, []interface{}{struct{ A interface{} }{}})
	require.Error(t, err)
	var unsupported *UnsupportedInPackedModeError
	assert.ErrorAs(t, err, &unsupported)
}

func TestEncodePackedRejectsNestedDynamicArray(t *testing.T) {
	strArrTy, err := NewType("string[3]", "", nil)
	require.NoError(t, err)
	_, err = EncodePacked([]Type{strArrTy}, []interface{}{[3]string{"a", "b", "c"}})
	require.Error(t, err)
	var unsupported *UnsupportedInPackedModeError
	assert.ErrorAs(t, err, &unsupported)
}

func TestEncodePackedStaticArrayOK(t *testing.T) {
	arrTy, err := NewType("uint8[3]", "", nil)
	require.NoError(t, err)
	packed, err := EncodePacked([]Type{arrTy}, []interface{}{[3]uint8{1, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, "010203", hex.EncodeToString(packed))
}

func TestEncodePackedDynamicSliceOfStaticElementsConcatenates(t *testing.T) {
	sliceTy, err := NewType("uint16[]", "", nil)
	require.NoError(t, err)

	packed, err := EncodePacked([]Type{sliceTy}, []interface{}{[]*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)}})
	require.NoError(t, err)
	assert.Equal(t, "000100020003", hex.EncodeToString(packed))
}

func TestEncodePackedRejectsSliceOfDynamicElements(t *testing.T) {
	sliceTy, err := NewType("string[]", "", nil)
	require.NoError(t, err)
	_, err = EncodePacked([]Type{sliceTy}, []interface{}{[]string{"a", "b"}})
	require.Error(t, err)
	var unsupported *UnsupportedInPackedModeError
	assert.ErrorAs(t, err, &unsupported)
}

func TestEncodePackedRejectsShapeMismatchWithoutPanicking(t *testing.T) {
	u16, err := NewType("uint16", "", nil)
	require.NoError(t, err)

	_, err = EncodePacked([]Type{u16}, []interface{}{"not a number"})
	require.Error(t, err)
	var mismatch *ShapeMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestEncodePackedAddressAndBool(t *testing.T) {
	addrTy, err := NewType("address", "", nil)
	require.NoError(t, err)
	boolTy, err := NewType("bool", "", nil)
	require.NoError(t, err)

	var addr [20]byte
	addr[19] = 0xff

	packed, err := EncodePacked([]Type{addrTy, boolTy}, []interface{}{addr, true})
	require.NoError(t, err)
	assert.Equal(t, "00000000000000000000000000000000000000ff01", hex.EncodeToString(packed))
}
