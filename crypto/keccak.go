// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package crypto is the hash256 dependency the ABI codec calls into for
// selector and topic derivation. The implementation is fixed: the package
// has no hook for substituting another hash. It exposes the Ethereum-flavored
// Keccak-256 (the NIST SHA-3 finalization changed the padding byte; this is
// the original Keccak submission, which is what the EVM uses).
package crypto

import (
	"hash"
	"sync"

	"golang.org/x/crypto/sha3"

	"github.com/chainforma/ethabi/common"
)

// DigestLength is the byte length of a Keccak-256 digest.
const DigestLength = 32

// KeccakState wraps a hash.Hash that additionally supports reading output
// without consuming the whole state (sha3's Shake/cSHAKE style Read), which
// lets HashData reuse one allocated state across many calls.
type KeccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

// NewKeccakState creates a new KeccakState to hash arbitrary data.
func NewKeccakState() KeccakState {
	return sha3.NewLegacyKeccak256().(KeccakState)
}

// HashData hashes data using an existing KeccakState, resetting it first.
// Reusing a state avoids repeated sha3 allocation in hot loops (e.g. hashing
// every candidate selector signature while building an ABI).
func HashData(kh KeccakState, data []byte) (h common.Hash) {
	kh.Reset()
	kh.Write(data)
	kh.Read(h[:])
	return h
}

var statePool = sync.Pool{
	New: func() interface{} { return NewKeccakState() },
}

// Keccak256 calculates and returns the Keccak-256 hash of the concatenated
// input data.
func Keccak256(data ...[]byte) []byte {
	b := make([]byte, DigestLength)
	d := statePool.Get().(KeccakState)
	defer statePool.Put(d)
	d.Reset()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(b)
	return b
}

// Keccak256Hash calculates the Keccak-256 hash of the concatenated input
// data and wraps it in a common.Hash.
func Keccak256Hash(data ...[]byte) (h common.Hash) {
	d := statePool.Get().(KeccakState)
	defer statePool.Put(d)
	d.Reset()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(h[:])
	return h
}
