package abi

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainforma/ethabi/common"
	"github.com/chainforma/ethabi/crypto"
)

const sampleABI = `[
	{"type":"constructor","inputs":[{"name":"supply","type":"uint256"}]},
	{"type":"function","name":"balanceOf","inputs":[{"name":"who","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"transfer","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable"},
	{"type":"event","name":"Transfer","inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"amount","type":"uint256","indexed":false}],"anonymous":false},
	{"type":"error","name":"InsufficientBalance","inputs":[{"name":"available","type":"uint256"},{"name":"required","type":"uint256"}]},
	{"type":"receive","stateMutability":"payable"}
]`

func mustParseABI(t *testing.T) ABI {
	abi, err := JSON(strings.NewReader(sampleABI))
	require.NoError(t, err)
	return abi
}

func TestJSONParsesAllEntryKinds(t *testing.T) {
	abi := mustParseABI(t)
	require.Contains(t, abi.Methods, "balanceOf")
	require.Contains(t, abi.Methods, "transfer")
	require.Contains(t, abi.Events, "Transfer")
	require.Contains(t, abi.Errors, "InsufficientBalance")
	assert.True(t, abi.HasReceive())
	assert.False(t, abi.HasFallback())
	assert.Equal(t, ConstructorKind, abi.Constructor.Kind)
}

func TestABIPackUnpackRoundTrip(t *testing.T) {
	abi := mustParseABI(t)

	packed, err := abi.Pack("balanceOf", mustAddr())
	require.NoError(t, err)
	assert.Len(t, packed, 4+32)

	method, ok := abi.Methods["balanceOf"]
	require.True(t, ok)
	assert.Equal(t, packed[:4], method.ID)

	decoded, err := method.Unpack(packed, InputDirection)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, common.Address(mustAddr()), decoded[0])
}

func mustAddr() [20]byte {
	var a [20]byte
	a[19] = 0x42
	return a
}

func TestABIMethodByIdAndErrorByID(t *testing.T) {
	abi := mustParseABI(t)

	method, ok := abi.Methods["transfer"]
	require.True(t, ok)
	found, err := abi.MethodById(method.ID)
	require.NoError(t, err)
	assert.Equal(t, method.Name, found.Name)

	_, err = abi.MethodById([]byte{0xde, 0xad, 0xbe, 0xef})
	require.Error(t, err)
	var notFound *NoSelectorMatchError
	assert.ErrorAs(t, err, &notFound)

	errSel, ok := abi.Errors["InsufficientBalance"]
	require.True(t, ok)
	var id4 [4]byte
	copy(id4[:], errSel.ID)
	found2, err := abi.ErrorByID(id4)
	require.NoError(t, err)
	assert.Equal(t, "InsufficientBalance", found2.Name)
}

func TestUnpackRevertErrorString(t *testing.T) {
	strType, err := NewType("string", "", nil)
	require.NoError(t, err)
	packed, err := (Arguments{{Type: strType}}).Pack("out of gas")
	require.NoError(t, err)

	data := append(append([]byte{}, crypto.Keccak256([]byte("Error(string)"))[:4]...), packed...)
	reason, err := UnpackRevert(data)
	require.NoError(t, err)
	assert.Equal(t, "out of gas", reason)
}

func TestUnpackRevertPanicCode(t *testing.T) {
	u256, err := NewType("uint256", "", nil)
	require.NoError(t, err)
	packed, err := (Arguments{{Type: u256}}).Pack(big.NewInt(0x11))
	require.NoError(t, err)

	data := append(append([]byte{}, crypto.Keccak256([]byte("Panic(uint256)"))[:4]...), packed...)
	reason, err := UnpackRevert(data)
	require.NoError(t, err)
	assert.Equal(t, "arithmetic underflow or overflow", reason)
}

func TestParseABISkipsUnresolvableEntryAsWarning(t *testing.T) {
	tree := map[string]interface{}{
		"entries": []interface{}{
			map[string]interface{}{
				"type": "function",
				"name": "goodFn",
				"inputs": []interface{}{
					map[string]interface{}{"name": "x", "type": "uint256"},
				},
			},
			map[string]interface{}{
				"type": "function",
				"name": "badFn",
				"inputs": []interface{}{
					map[string]interface{}{"name": "x", "type": "SomeStruct"},
				},
			},
		},
	}
	selectors, warnings, err := ParseABI(tree, true)
	require.NoError(t, err)
	require.Len(t, selectors, 1)
	assert.Equal(t, "goodFn", selectors[0].RawName)
	require.Len(t, warnings, 1)
	assert.Equal(t, "badFn", warnings[0].Entry)
}
