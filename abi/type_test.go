package abi

import (
	"math/big"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTypeElementary(t *testing.T) {
	cases := []struct {
		input    string
		wantT    byte
		wantSize int
	}{
		{"uint256", UintTy, 256},
		{"int8", IntTy, 8},
		{"bool", BoolTy, 0},
		{"address", AddressTy, 20},
		{"string", StringTy, 0},
		{"bytes", BytesTy, 0},
		{"bytes32", FixedBytesTy, 32},
		{"function", FunctionTy, 24},
	}
	for _, c := range cases {
		typ, err := NewType(c.input, "", nil)
		require.NoError(t, err, c.input)
		assert.Equal(t, c.wantT, typ.T, c.input)
		assert.Equal(t, c.wantSize, typ.Size, c.input)
	}
}

func TestNewTypeRejectsBareIntUint(t *testing.T) {
	_, err := NewType("uint", "", nil)
	assert.Error(t, err)
	_, err = NewType("int", "", nil)
	assert.Error(t, err)
}

func TestNewTypeRejectsNonMultipleOf8(t *testing.T) {
	_, err := NewType("uint7", "", nil)
	assert.Error(t, err)
}

func TestNewTypeSliceAndArray(t *testing.T) {
	slice, err := NewType("uint256[]", "", nil)
	require.NoError(t, err)
	assert.Equal(t, SliceTy, slice.T)
	assert.Equal(t, UintTy, slice.Elem.T)

	array, err := NewType("uint256[3]", "", nil)
	require.NoError(t, err)
	assert.Equal(t, ArrayTy, array.T)
	assert.Equal(t, 3, array.Size)
}

func TestNewTypeFixedPointDefaultsTo128x18(t *testing.T) {
	typ, err := NewType("fixed", "", nil)
	require.NoError(t, err)
	assert.Equal(t, FixedPointTy, typ.T)
	assert.Equal(t, 128, typ.Size)
	assert.Equal(t, 18, typ.Decimals)
	assert.False(t, typ.Unsigned)

	utyp, err := NewType("ufixed64x9", "", nil)
	require.NoError(t, err)
	assert.Equal(t, 64, utyp.Size)
	assert.Equal(t, 9, utyp.Decimals)
	assert.True(t, utyp.Unsigned)
}

func TestNewTypeTuple(t *testing.T) {
	typ, err := NewType("tuple", "", []ArgumentMarshaling{
		{Name: "a", Type: "uint256"},
		{Name: "b", Type: "bool"},
	})
	require.NoError(t, err)
	assert.Equal(t, TupleTy, typ.T)
	assert.Equal(t, "(uint256,bool)", typ.String())
}

// TestNewTypeTupleSliceComponentRewriting pins the array-suffix recursion
// that substitutes components into the innermost "tuple" placeholder: the
// outer "tuple[]" shape is parsed first, then the tuple's own fields are
// built from components and hung off the resulting Elem.
func TestNewTypeTupleSliceComponentRewriting(t *testing.T) {
	components := []ArgumentMarshaling{
		{Name: "a", Type: "uint256"},
		{Name: "b", Type: "bool"},
	}
	typ, err := NewType("tuple[]", "", components)
	require.NoError(t, err)
	assert.Equal(t, SliceTy, typ.T)
	assert.Equal(t, TupleTy, typ.Elem.T)
	assert.Equal(t, "(uint256,bool)[]", typ.String())
	assert.True(t, isDynamicType(typ))

	type tupleElem struct {
		A *big.Int
		B bool
	}
	args := Arguments{{Name: "t", Type: typ}}
	in := []tupleElem{{A: big.NewInt(1), B: true}, {A: big.NewInt(2), B: false}}

	packed, err := args.Pack(in)
	require.NoError(t, err)

	out, err := args.Unpack(packed)
	require.NoError(t, err)
	require.Len(t, out, 1)

	decoded := reflect.ValueOf(out[0])
	require.Equal(t, 2, decoded.Len())
	assert.Equal(t, big.NewInt(1), decoded.Index(0).FieldByName("A").Interface())
	assert.Equal(t, true, decoded.Index(0).FieldByName("B").Interface())
	assert.Equal(t, big.NewInt(2), decoded.Index(1).FieldByName("A").Interface())
	assert.Equal(t, false, decoded.Index(1).FieldByName("B").Interface())
}

// TestNewTypeMultidimensionalTupleArray pins the same rewriting one level
// deeper: "tuple[2][]" is a dynamic slice of fixed 2-arrays of the tuple,
// the literal multidimensional-tuple-array shape spec.md's open question
// calls out for explicit testing.
func TestNewTypeMultidimensionalTupleArray(t *testing.T) {
	components := []ArgumentMarshaling{
		{Name: "x", Type: "uint8"},
	}
	typ, err := NewType("tuple[2][]", "", components)
	require.NoError(t, err)

	assert.Equal(t, SliceTy, typ.T)
	require.NotNil(t, typ.Elem)
	assert.Equal(t, ArrayTy, typ.Elem.T)
	assert.Equal(t, 2, typ.Elem.Size)
	require.NotNil(t, typ.Elem.Elem)
	assert.Equal(t, TupleTy, typ.Elem.Elem.T)
	assert.Equal(t, "(uint8)[2][]", typ.String())
	assert.True(t, isDynamicType(typ))

	type tupleElem struct {
		X uint8
	}
	args := Arguments{{Name: "t", Type: typ}}
	in := [][2]tupleElem{
		{{X: 1}, {X: 2}},
		{{X: 3}, {X: 4}},
	}

	packed, err := args.Pack(in)
	require.NoError(t, err)

	out, err := args.Unpack(packed)
	require.NoError(t, err)
	require.Len(t, out, 1)

	decoded := reflect.ValueOf(out[0])
	require.Equal(t, 2, decoded.Len())
	assert.Equal(t, uint8(1), decoded.Index(0).Index(0).FieldByName("X").Interface())
	assert.Equal(t, uint8(2), decoded.Index(0).Index(1).FieldByName("X").Interface())
	assert.Equal(t, uint8(3), decoded.Index(1).Index(0).FieldByName("X").Interface())
	assert.Equal(t, uint8(4), decoded.Index(1).Index(1).FieldByName("X").Interface())
}

func TestIsDynamicType(t *testing.T) {
	str, _ := NewType("string", "", nil)
	assert.True(t, isDynamicType(str))

	fixed, _ := NewType("uint256", "", nil)
	assert.False(t, isDynamicType(fixed))

	dynArr, _ := NewType("string[3]", "", nil)
	assert.True(t, isDynamicType(dynArr))

	staticArr, _ := NewType("uint256[3]", "", nil)
	assert.False(t, isDynamicType(staticArr))
}
