// Copyright 2016 The go-ethereum Authors
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

// Package math holds the fixed-width integer arithmetic the ABI codec needs:
// canonical 32-byte encoding of big.Int values and bit-length bound checks,
// built on top of github.com/holiman/uint256 for the 256-bit hot path instead
// of routing everything through math/big.
package math

import (
	"math/big"
	"math/bits"

	"github.com/holiman/uint256"
)

const wordBytes = bits.UintSize / 8

var (
	tt255   = BigPow(2, 255)
	tt256   = BigPow(2, 256)
	tt256m1 = new(big.Int).Sub(tt256, big.NewInt(1))
)

// BigPow returns a ** b as a big integer.
func BigPow(a, b int64) *big.Int {
	r := big.NewInt(a)
	return r.Exp(r, big.NewInt(b), nil)
}

// PaddedBigBytes encodes a big integer as a big-endian byte slice, left-padded
// to at least n bytes; a value already n bytes or longer is returned unpadded.
func PaddedBigBytes(bigint *big.Int, n int) []byte {
	if bigint.BitLen()/8 >= n {
		return bigint.Bytes()
	}
	ret := make([]byte, n)
	ReadBits(bigint, ret)
	return ret
}

// ReadBits fills buf with the absolute value of bigint as big-endian bytes.
// Callers must ensure that buf has enough space.
func ReadBits(bigint *big.Int, buf []byte) {
	i := len(buf)
	for _, d := range bigint.Bits() {
		for j := 0; j < wordBytes && i > 0; j++ {
			i--
			buf[i] = byte(d)
			d >>= 8
		}
	}
}

// U256 encodes as a 256-bit two's complement number, wrapping. This matches
// the semantics the EVM uses for unsigned overflow.
func U256(x *big.Int) *big.Int {
	return x.And(x, tt256m1)
}

// U256Bytes converts a big.Int into a 32-byte big-endian representation,
// truncating (wrapping, EVM-style) rather than erroring on overflow. Used
// only after a caller-side bound check has already rejected out-of-range
// values for a declared bit width; this wrapping behavior itself is never
// observed by a conformant caller.
func U256Bytes(n *big.Int) []byte {
	wrapped := U256(new(big.Int).Set(n))
	var u uint256.Int
	u.SetFromBig(wrapped)
	b := u.Bytes32()
	return b[:]
}

// S256 interprets x as a signed 256-bit two's complement number.
func S256(x *big.Int) *big.Int {
	if x.Cmp(tt255) < 0 {
		return x
	}
	return new(big.Int).Sub(x, tt256)
}

// FitsInBits reports whether the unsigned magnitude of x fits in bits bits.
func FitsInBits(x *big.Int, bits int) bool {
	return x.BitLen() <= bits
}
