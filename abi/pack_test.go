package abi

import (
	"encoding/hex"
	"math/big"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainforma/ethabi/common"
)

// word32 left-pads a hex tail to a full 32-byte (64 hex char) word.
func word32(tail string) string {
	return strings.Repeat("0", 64-len(tail)) + tail
}

func TestSelectorBazUintAddress(t *testing.T) {
	sel, err := ParseSignature("baz(uint,address)")
	require.NoError(t, err)
	assert.Equal(t, "a291add6", hex.EncodeToString(sel.ID))

	packed, err := sel.Pack(big.NewInt(50), common.BytesToAddress([]byte{1}))
	require.NoError(t, err)

	want := "a291add6" + word32("32") + word32("01")
	assert.Equal(t, want, hex.EncodeToString(packed))
}

func TestEncodeStringTuple(t *testing.T) {
	strType, err := NewType("string", "", nil)
	require.NoError(t, err)
	args := Arguments{{Name: "a", Type: strType}}

	packed, err := args.Pack("Ether Token")
	require.NoError(t, err)

	want := word32("20") + word32("b") + hex.EncodeToString([]byte("Ether Token")) + strings.Repeat("00", 32-11)
	assert.Equal(t, want, hex.EncodeToString(packed))
}

func TestSelectorTestUintSliceSlice(t *testing.T) {
	sel, err := ParseSignature("test(uint[],uint[])")
	require.NoError(t, err)
	assert.Equal(t, "f0d7f6eb", hex.EncodeToString(sel.ID))

	packed, err := sel.Pack([]*big.Int{big.NewInt(1)}, []*big.Int{big.NewInt(2)})
	require.NoError(t, err)

	want := "f0d7f6eb" + word32("40") + word32("80") + word32("1") + word32("1") + word32("1") + word32("2")
	assert.Equal(t, want, hex.EncodeToString(packed))

	decoded, err := sel.Inputs.Unpack(packed[4:])
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, big.NewInt(1), decoded[0].([]*big.Int)[0])
	assert.Equal(t, big.NewInt(2), decoded[1].([]*big.Int)[0])
}

func TestPackUnpackRoundTrip(t *testing.T) {
	u256, _ := NewType("uint256", "", nil)
	addr, _ := NewType("address", "", nil)
	b, _ := NewType("bool", "", nil)
	str, _ := NewType("string", "", nil)

	args := Arguments{
		{Name: "amount", Type: u256},
		{Name: "to", Type: addr},
		{Name: "ok", Type: b},
		{Name: "memo", Type: str},
	}
	in := []interface{}{big.NewInt(12345), common.BytesToAddress([]byte{0xaa, 0xbb}), true, "hello"}

	packed, err := args.Pack(in...)
	require.NoError(t, err)

	out, err := args.Unpack(packed)
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, big.NewInt(12345), out[0])
	assert.Equal(t, common.BytesToAddress([]byte{0xaa, 0xbb}), out[1])
	assert.Equal(t, true, out[2])
	assert.Equal(t, "hello", out[3])
}

// TestPackFixedBytesAcceptsIntegerInput pins bytesN's integer-input
// conversion path: an integer argument is converted to its minimal
// big-endian byte representation before being right-padded into its word,
// the same treatment any other byte value gets.
func TestPackFixedBytesAcceptsIntegerInput(t *testing.T) {
	bytes4, err := NewType("bytes4", "", nil)
	require.NoError(t, err)

	packed, err := packElement(bytes4, reflect.ValueOf(uint32(1)))
	require.NoError(t, err)
	assert.Equal(t, "01"+strings.Repeat("00", 31), hex.EncodeToString(packed))

	packedBig, err := packElement(bytes4, reflect.ValueOf(big.NewInt(0x0a0b)))
	require.NoError(t, err)
	assert.Equal(t, "0a0b"+strings.Repeat("00", 30), hex.EncodeToString(packedBig))
}

func TestCheckIntegerWidthOverflow(t *testing.T) {
	u8, err := NewType("uint8", "", nil)
	require.NoError(t, err)
	_, err = packElement(u8, reflect.ValueOf(big.NewInt(256)))
	require.Error(t, err)
	var overflow *TypeOverflowError
	assert.ErrorAs(t, err, &overflow)

	i8, err := NewType("int8", "", nil)
	require.NoError(t, err)

	// The declared range for Int(8) is [-127, 127], deliberately excluding
	// the native two's-complement minimum -128.
	_, err = packElement(i8, reflect.ValueOf(big.NewInt(-128)))
	require.Error(t, err)

	_, err = packElement(i8, reflect.ValueOf(big.NewInt(-127)))
	require.NoError(t, err)
}
