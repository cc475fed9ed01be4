// Copyright 2024 The go-ethereum Authors
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

package abi

import (
	"fmt"
	"reflect"

	"github.com/chainforma/ethabi/common"
)

// EncodePacked implements Solidity's non-standard packed encoding: every
// value is emitted at its natural byte width with no 32-byte padding and no
// length prefix for fixed-size types. Dynamic types (string, bytes) are
// still emitted raw, just without a length word - callers that need the
// length must track it themselves.
//
// A top-level array or slice of a static element type (uint256[], address[],
// ...) packs by concatenating each element's natural-width bytes in order -
// there is no ambiguity in where one fixed-width element ends and the next
// begins. Tuples and arrays whose element type is itself dynamic cannot be
// represented packed without ambiguity (nothing delimits where one such
// element ends), so both are rejected with UnsupportedInPackedModeError,
// matching solidity's own abi.encodePacked restriction.
func EncodePacked(types []Type, values []interface{}) ([]byte, error) {
	if len(types) != len(values) {
		return nil, fmt.Errorf("abi: argument count mismatch: got %d for %d", len(values), len(types))
	}
	var out []byte
	for i, t := range types {
		b, err := packElementPacked(t, reflect.ValueOf(values[i]))
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

func packElementPacked(t Type, v reflect.Value) ([]byte, error) {
	v = indirect(v)

	switch t.T {
	case TupleTy:
		return nil, &UnsupportedInPackedModeError{Type: t.String()}
	case SliceTy, ArrayTy:
		if isDynamicType(*t.Elem) {
			return nil, &UnsupportedInPackedModeError{Type: t.String()}
		}
		var out []byte
		for i := 0; i < v.Len(); i++ {
			b, err := packElementPacked(*t.Elem, v.Index(i))
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
		}
		return out, nil
	case FixedPointTy:
		return nil, &UnsupportedTypeError{Descriptor: t.String(), Reason: "fixed/ufixed values cannot be marshalled"}
	case IntTy, UintTy:
		if err := checkIntegerWidth(t, v); err != nil {
			return nil, err
		}
		full := packNum(v)
		return full[len(full)-t.Size/8:], nil
	case BoolTy:
		if v.Bool() {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case AddressTy:
		if v.Kind() == reflect.Array {
			v = mustArrayToByteSlice(v)
		}
		return common.LeftPadBytes(v.Bytes(), 20)[:20], nil
	case StringTy:
		return []byte(v.String()), nil
	case BytesTy:
		if v.Kind() == reflect.Array {
			v = mustArrayToByteSlice(v)
		}
		return v.Bytes(), nil
	case FixedBytesTy:
		if v.Kind() == reflect.Array {
			v = mustArrayToByteSlice(v)
		}
		return v.Bytes()[:t.Size], nil
	case FunctionTy:
		if v.Kind() == reflect.Array {
			v = mustArrayToByteSlice(v)
		}
		return v.Bytes()[:24], nil
	default:
		return nil, fmt.Errorf("abi: could not pack element in packed mode, unknown type: %v", t.T)
	}
}
