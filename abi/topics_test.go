package abi

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainforma/ethabi/common"
	"github.com/chainforma/ethabi/crypto"
)

func TestMakeTopicsCoversCommonTypes(t *testing.T) {
	addr := common.BytesToAddress([]byte{0xaa})
	topics, err := MakeTopics([]interface{}{big.NewInt(5), addr, true, "hi"})
	require.NoError(t, err)
	require.Len(t, topics, 1)
	require.Len(t, topics[0], 4)

	assert.Equal(t, big.NewInt(5), new(big.Int).SetBytes(topics[0][0].Bytes()))

	var wantAddr common.Hash
	copy(wantAddr[common.HashLength-common.AddressLength:], addr[:])
	assert.Equal(t, wantAddr, topics[0][1])

	var wantBool common.Hash
	wantBool[common.HashLength-1] = 1
	assert.Equal(t, wantBool, topics[0][2])

	assert.Equal(t, crypto.Keccak256Hash([]byte("hi")), topics[0][3])
}

func TestParseTopicsIntoMapRoundTrip(t *testing.T) {
	u256, err := NewType("uint256", "", nil)
	require.NoError(t, err)
	addrTy, err := NewType("address", "", nil)
	require.NoError(t, err)

	fields := Arguments{
		{Name: "id", Type: u256, Indexed: true},
		{Name: "who", Type: addrTy, Indexed: true},
	}
	topicsLists, err := MakeTopics([]interface{}{big.NewInt(42)}, []interface{}{common.BytesToAddress([]byte{0x01})})
	require.NoError(t, err)
	topics := []common.Hash{topicsLists[0][0], topicsLists[1][0]}

	out := map[string]interface{}{}
	err = ParseTopicsIntoMap(out, fields, topics)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(42), out["id"])
	assert.Equal(t, common.BytesToAddress([]byte{0x01}), out["who"])
}

func TestParseTopicsDynamicValueStaysOpaqueHash(t *testing.T) {
	strTy, err := NewType("string", "", nil)
	require.NoError(t, err)
	fields := Arguments{{Name: "tag", Type: strTy, Indexed: true}}

	hash := crypto.Keccak256Hash([]byte("some long string"))
	out := map[string]interface{}{}
	err = ParseTopicsIntoMap(out, fields, []common.Hash{hash})
	require.NoError(t, err)
	assert.Equal(t, hash, out["tag"])
}

func TestFindEventDisambiguatesByIndexedCount(t *testing.T) {
	u256, _ := NewType("uint256", "", nil)
	addrTy, _ := NewType("address", "", nil)

	nonIndexed := NewEventSelector("TransferNonIndexed", "Transfer", false, Arguments{
		{Name: "from", Type: addrTy, Indexed: false},
		{Name: "to", Type: addrTy, Indexed: false},
		{Name: "amount", Type: u256, Indexed: false},
	})
	indexed := NewEventSelector("TransferIndexed", "Transfer", false, Arguments{
		{Name: "from", Type: addrTy, Indexed: true},
		{Name: "to", Type: addrTy, Indexed: true},
		{Name: "amount", Type: u256, Indexed: false},
	})
	// Force both onto the same topic0 to exercise disambiguation.
	indexed.ID = nonIndexed.ID

	selectors := []*Selector{&nonIndexed, &indexed}
	var topic0 common.Hash
	copy(topic0[:], nonIndexed.ID)

	got, err := FindEvent(selectors, topic0, []bool{true, true, false})
	require.NoError(t, err)
	assert.Equal(t, "TransferIndexed", got.Name)

	got, err = FindEvent(selectors, topic0, []bool{false, false, false})
	require.NoError(t, err)
	assert.Equal(t, "TransferNonIndexed", got.Name)
}
