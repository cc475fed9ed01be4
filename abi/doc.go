// Copyright 2015 The go-ethereum Authors
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

// Package abi implements the Ethereum Contract ABI (Application Binary
// Interface): parsing textual and JSON signatures, encoding values into the
// standard head/tail call-data layout (and the non-standard packed layout),
// decoding them back, and dispatching raw call-data or log data to the
// matching function, event, or custom error declaration.
//
// The ABI is strongly typed and static: every argument's shape is known
// from its declared Solidity type, not inferred from the Go value alone.
// The package handles the usual unsigned/signed and bit-width casting (a
// uint32 argument becomes int256-shaped on the wire, etc.) but will not
// silently reinterpret a slice of one signedness as the other.
package abi
