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

package abi

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"

	"github.com/chainforma/ethabi/common"
	"github.com/chainforma/ethabi/common/math"
)

// packBytesSlice packs the given bytes as [L, V], the canonical
// representation of a dynamic bytes-like value.
func packBytesSlice(bytes []byte, l int) []byte {
	length := packNum(reflect.ValueOf(l))
	return append(length, common.RightPadBytes(bytes, (l+31)/32*32)...)
}

// packElement packs the given reflect value according to the abi
// specification in t, enforcing t's declared bit width for integers before
// delegating to packNum.
func packElement(t Type, reflectValue reflect.Value) ([]byte, error) {
	switch t.T {
	case IntTy, UintTy:
		if err := checkIntegerWidth(t, reflectValue); err != nil {
			return nil, err
		}
		return packNum(reflectValue), nil
	case StringTy:
		return packBytesSlice([]byte(reflectValue.String()), reflectValue.Len()), nil
	case AddressTy:
		if reflectValue.Kind() == reflect.Array {
			reflectValue = mustArrayToByteSlice(reflectValue)
		}
		return common.LeftPadBytes(reflectValue.Bytes(), 32), nil
	case BoolTy:
		if reflectValue.Bool() {
			return math.PaddedBigBytes(common.Big1, 32), nil
		}
		return math.PaddedBigBytes(common.Big0, 32), nil
	case BytesTy:
		if reflectValue.Kind() == reflect.Array {
			reflectValue = mustArrayToByteSlice(reflectValue)
		}
		if reflectValue.Type() != reflect.TypeOf([]byte{}) {
			return []byte{}, errors.New("bytes type is neither slice nor array")
		}
		return packBytesSlice(reflectValue.Bytes(), reflectValue.Len()), nil
	case FixedBytesTy, FunctionTy:
		switch reflectValue.Kind() {
		case reflect.Array:
			reflectValue = mustArrayToByteSlice(reflectValue)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Ptr:
			// BytesN also accepts an integer value, converted to its minimal
			// big-endian representation - e.g. uint32(1) for a bytes4 becomes
			// the single byte 0x01 followed by 31 zero bytes.
			return common.RightPadBytes(asBigInt(reflectValue).Bytes(), 32), nil
		}
		return common.RightPadBytes(reflectValue.Bytes(), 32), nil
	default:
		return []byte{}, fmt.Errorf("could not pack element, unknown type: %v", t.T)
	}
}

// checkIntegerWidth enforces the declared bit width b of an Int(b)/Uint(b)
// value. Unlike the EVM's native wraparound arithmetic, the codec rejects
// out-of-range values outright: for Uint(b) the valid range is
// [0, 2^b - 1], and for Int(b) the valid range is the asymmetric
// [-2^(b-1)+1, 2^(b-1)-1] (the most negative two's-complement value for b
// bits, -2^(b-1), is deliberately excluded, which makes the accepted range
// symmetric around zero; the decoder does not apply this bound).
func checkIntegerWidth(t Type, value reflect.Value) error {
	v, ok := tryBigInt(value)
	if !ok {
		return &ShapeMismatchError{Expected: t.String(), Actual: value.Kind().String()}
	}
	if t.T == UintTy {
		if v.Sign() < 0 {
			return &TypeOverflowError{Type: t.String(), Value: v.String()}
		}
		max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(t.Size)), big.NewInt(1))
		if v.Cmp(max) > 0 {
			return &TypeOverflowError{Type: t.String(), Value: v.String()}
		}
		return nil
	}
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1)), big.NewInt(1))
	min := new(big.Int).Neg(max)
	if v.Cmp(max) > 0 || v.Cmp(min) < 0 {
		return &TypeOverflowError{Type: t.String(), Value: v.String()}
	}
	return nil
}

// tryBigInt is the non-panicking core of asBigInt: every caller that might
// see an unvalidated, caller-supplied reflect.Value (the packed-mode path,
// which has no typeCheck guard ahead of it) must go through this instead.
func tryBigInt(value reflect.Value) (*big.Int, bool) {
	switch value.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return new(big.Int).SetUint64(value.Uint()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(value.Int()), true
	case reflect.Ptr:
		bi, ok := value.Interface().(*big.Int)
		if !ok || bi == nil {
			return nil, false
		}
		return new(big.Int).Set(bi), true
	default:
		return nil, false
	}
}

func asBigInt(value reflect.Value) *big.Int {
	v, ok := tryBigInt(value)
	if !ok {
		panic("abi: fatal error")
	}
	return v
}

// packNum packs the given number (using the reflect value) and casts it to
// the appropriate number representation.
func packNum(value reflect.Value) []byte {
	switch kind := value.Kind(); kind {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return math.U256Bytes(new(big.Int).SetUint64(value.Uint()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return math.U256Bytes(big.NewInt(value.Int()))
	case reflect.Ptr:
		return math.U256Bytes(new(big.Int).Set(value.Interface().(*big.Int)))
	default:
		panic("abi: fatal error")
	}
}
