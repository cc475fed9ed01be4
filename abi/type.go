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

package abi

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/chainforma/ethabi/common"
)

// Type enumerator. This is the tagged-variant discriminant for every
// Solidity type the codec knows about.
const (
	IntTy byte = iota
	UintTy
	BoolTy
	StringTy
	SliceTy // dynamic array: T[]
	ArrayTy // fixed-size array: T[N]
	TupleTy
	AddressTy
	FixedBytesTy // bytesN
	BytesTy      // dynamic bytes
	FixedPointTy // fixed/ufixed, parsed only, never marshalled
	FunctionTy
)

// Type is the reflection of a single ABI argument type. It is a single
// struct with a discriminant (T) rather than an interface hierarchy: the
// grammar is small and fixed, so a switch on T is simpler than dynamic
// dispatch, and it lets pack/unpack share one recursive shape.
type Type struct {
	Elem *Type // element type for SliceTy/ArrayTy
	Size int   // bit width for IntTy/UintTy, byte length for FixedBytesTy, array length for ArrayTy, or the "M" of fixedMxN for FixedPointTy
	T    byte

	// Decimals and Unsigned only have meaning for FixedPointTy: fixedMxN has
	// M total bits (stored in Size) and N decimal digits (stored here);
	// Unsigned distinguishes ufixed from fixed. Values of this type are
	// parsed but never marshalled per spec.
	Decimals int
	Unsigned bool

	stringKind string // holds the unparsed canonical string, used to derive signatures

	// Tuple relative fields.
	TupleRawName  string
	TupleElems    []*Type
	TupleRawNames []string
	TupleType     reflect.Type
}

var (
	// typeRegex parses the abi sub types, capturing an optional M or MxN
	// size suffix (MxN is only meaningful for fixed/ufixed).
	typeRegex = regexp.MustCompile("([a-zA-Z]+)(([0-9]+)(x([0-9]+))?)?")

	sliceSizeRegex = regexp.MustCompile("[0-9]+")
)

// ArgumentMarshaling is the JSON-shaped description of a single ABI
// argument, mirroring the "inputs"/"outputs" entries of an ABI document.
type ArgumentMarshaling struct {
	Name         string
	Type         string
	InternalType string
	Components   []ArgumentMarshaling
	Indexed      bool
}

// NewType creates the reflection Type for the abi type string t. internalType
// carries Solidity's post-0.5.10 "internalType" annotation (used to recover
// the original struct name for tuples); components carries nested tuple
// field descriptors when t names a tuple shape.
func NewType(t string, internalType string, components []ArgumentMarshaling) (typ Type, err error) {
	if strings.Count(t, "[") != strings.Count(t, "]") {
		return Type{}, errors.New("invalid arg type in abi")
	}
	typ.stringKind = t

	// Array/slice suffixes recurse on the element type first.
	if strings.Count(t, "[") != 0 {
		subInternal := internalType
		if i := strings.LastIndex(internalType, "["); i != -1 {
			subInternal = subInternal[:i]
		}
		i := strings.LastIndex(t, "[")
		embeddedType, err := NewType(t[:i], subInternal, components)
		if err != nil {
			return Type{}, err
		}
		sliced := t[i:]
		intz := sliceSizeRegex.FindAllString(sliced, -1)

		switch len(intz) {
		case 0:
			typ.T = SliceTy
			typ.Elem = &embeddedType
			typ.stringKind = embeddedType.stringKind + sliced
		case 1:
			typ.T = ArrayTy
			typ.Elem = &embeddedType
			typ.Size, err = strconv.Atoi(intz[0])
			if err != nil {
				return Type{}, fmt.Errorf("abi: error parsing variable size: %v", err)
			}
			typ.stringKind = embeddedType.stringKind + sliced
		default:
			return Type{}, errors.New("invalid formatting of array type")
		}
		return typ, nil
	}

	// fixed/ufixed are handled ahead of the generic size-digit parsing
	// below because their size token is "MxN", not a bare integer.
	if strings.HasPrefix(t, "fixed") || strings.HasPrefix(t, "ufixed") {
		return newFixedPointType(t)
	}

	matches := typeRegex.FindAllStringSubmatch(t, -1)
	if len(matches) == 0 {
		return Type{}, fmt.Errorf("invalid type '%v'", t)
	}
	parsedType := matches[0]

	var varSize int
	if len(parsedType[3]) > 0 {
		varSize, err = strconv.Atoi(parsedType[2])
		if err != nil {
			return Type{}, fmt.Errorf("abi: error parsing variable size: %v", err)
		}
	} else if parsedType[1] == "uint" || parsedType[1] == "int" {
		// the compiler should always emit the explicit bit size
		return Type{}, fmt.Errorf("unsupported arg type: %s", t)
	}

	switch varType := parsedType[1]; varType {
	case "int":
		if varSize%8 != 0 {
			return Type{}, fmt.Errorf("unsupported arg type: %s", t)
		}
		typ.Size = varSize
		typ.T = IntTy
	case "uint":
		if varSize%8 != 0 {
			return Type{}, fmt.Errorf("unsupported arg type: %s", t)
		}
		typ.Size = varSize
		typ.T = UintTy
	case "bool":
		typ.T = BoolTy
	case "address":
		typ.Size = 20
		typ.T = AddressTy
	case "string":
		typ.T = StringTy
	case "bytes":
		if varSize == 0 {
			typ.T = BytesTy
		} else {
			if varSize > 32 {
				return Type{}, fmt.Errorf("unsupported arg type: %s", t)
			}
			typ.T = FixedBytesTy
			typ.Size = varSize
		}
	case "tuple":
		var (
			fields     []reflect.StructField
			elems      []*Type
			names      []string
			expression string
			used       = make(map[string]bool)
		)
		expression += "("
		for idx, c := range components {
			cType, err := NewType(c.Type, c.InternalType, c.Components)
			if err != nil {
				return Type{}, err
			}
			name := ToCamelCase(c.Name)
			if name == "" {
				return Type{}, errors.New("abi: purely anonymous or underscored field is not supported")
			}
			fieldName := ResolveNameConflict(name, func(s string) bool { return used[s] })
			used[fieldName] = true
			if !isValidFieldName(fieldName) {
				return Type{}, fmt.Errorf("field %d has invalid name", idx)
			}
			fields = append(fields, reflect.StructField{
				Name: fieldName,
				Type: cType.GetType(),
				Tag:  reflect.StructTag("json:\"" + c.Name + "\""),
			})
			elems = append(elems, &cType)
			names = append(names, c.Name)
			expression += cType.stringKind
			if idx != len(components)-1 {
				expression += ","
			}
		}
		expression += ")"

		typ.TupleType = reflect.StructOf(fields)
		typ.TupleElems = elems
		typ.TupleRawNames = names
		typ.T = TupleTy
		typ.stringKind = expression

		const structPrefix = "struct "
		if internalType != "" && strings.HasPrefix(internalType, structPrefix) {
			typ.TupleRawName = strings.ReplaceAll(internalType[len(structPrefix):], ".", "")
		}
	case "function":
		typ.T = FunctionTy
		typ.Size = 24
	default:
		if strings.HasPrefix(internalType, "contract ") {
			typ.Size = 20
			typ.T = AddressTy
		} else {
			return Type{}, fmt.Errorf("unsupported arg type: %s", t)
		}
	}

	return typ, nil
}

// newFixedPointType parses "fixedMxN" / "ufixedMxN" (and the bare "fixed"
// / "ufixed" defaults of 128x18). Values of this type are never marshalled;
// NewType only needs to produce a well-formed Type so that signatures
// mentioning fixed/ufixed can still be parsed and canonicalized.
func newFixedPointType(t string) (Type, error) {
	unsigned := strings.HasPrefix(t, "ufixed")
	rest := strings.TrimPrefix(t, "ufixed")
	if !unsigned {
		rest = strings.TrimPrefix(t, "fixed")
	}
	m, n := 128, 18
	if rest != "" {
		parts := strings.SplitN(rest, "x", 2)
		if len(parts) != 2 {
			return Type{}, fmt.Errorf("invalid fixed point type %q: expected MxN", t)
		}
		var err error
		m, err = strconv.Atoi(parts[0])
		if err != nil {
			return Type{}, fmt.Errorf("invalid fixed point size %q: %v", t, err)
		}
		n, err = strconv.Atoi(parts[1])
		if err != nil {
			return Type{}, fmt.Errorf("invalid fixed point decimals %q: %v", t, err)
		}
	}
	if m <= 0 || m > 256 || m%8 != 0 {
		return Type{}, fmt.Errorf("invalid fixed point bit size %d in %q", m, t)
	}
	if n <= 0 || n > 80 {
		return Type{}, fmt.Errorf("invalid fixed point decimals %d in %q", n, t)
	}
	return Type{
		T:          FixedPointTy,
		Size:       m,
		Decimals:   n,
		Unsigned:   unsigned,
		stringKind: t,
	}, nil
}

// GetType returns the reflection type used to carry values of t in Go.
func (t Type) GetType() reflect.Type {
	switch t.T {
	case IntTy:
		return reflectIntType(false, t.Size)
	case UintTy:
		return reflectIntType(true, t.Size)
	case BoolTy:
		return reflect.TypeOf(false)
	case StringTy:
		return reflect.TypeOf("")
	case SliceTy:
		return reflect.SliceOf(t.Elem.GetType())
	case ArrayTy:
		return reflect.ArrayOf(t.Size, t.Elem.GetType())
	case TupleTy:
		return t.TupleType
	case AddressTy:
		return reflect.TypeOf(common.Address{})
	case FixedBytesTy:
		return reflect.ArrayOf(t.Size, reflect.TypeOf(byte(0)))
	case BytesTy:
		return reflect.SliceOf(reflect.TypeOf(byte(0)))
	case FixedPointTy:
		// never marshalled; the mantissa would be carried as *big.Int
		return reflect.TypeOf(&big.Int{})
	case FunctionTy:
		return reflect.ArrayOf(24, reflect.TypeOf(byte(0)))
	default:
		panic("abi: invalid type")
	}
}

// String implements Stringer, returning the canonical signature fragment.
func (t Type) String() string {
	return t.stringKind
}

func (t Type) pack(v reflect.Value) ([]byte, error) {
	v = indirect(v)
	if err := typeCheck(t, v); err != nil {
		return nil, err
	}

	switch t.T {
	case SliceTy, ArrayTy:
		var ret []byte

		if t.requiresLengthPrefix() {
			ret = append(ret, packNum(reflect.ValueOf(v.Len()))...)
		}

		offset := 0
		offsetReq := isDynamicType(*t.Elem)
		if offsetReq {
			offset = getTypeSize(*t.Elem) * v.Len()
		}
		var tail []byte
		for i := 0; i < v.Len(); i++ {
			val, err := t.Elem.pack(v.Index(i))
			if err != nil {
				return nil, err
			}
			if !offsetReq {
				ret = append(ret, val...)
				continue
			}
			ret = append(ret, packNum(reflect.ValueOf(offset))...)
			offset += len(val)
			tail = append(tail, val...)
		}
		return append(ret, tail...), nil
	case TupleTy:
		// enc(X) = head(X(1)) ... head(X(k)) tail(X(1)) ... tail(X(k))
		fieldmap, err := mapArgNamesToStructFields(t.TupleRawNames, v)
		if err != nil {
			return nil, err
		}
		offset := 0
		for _, elem := range t.TupleElems {
			offset += getTypeSize(*elem)
		}
		var ret, tail []byte
		for i, elem := range t.TupleElems {
			field := v.FieldByName(fieldmap[t.TupleRawNames[i]])
			if !field.IsValid() {
				return nil, fmt.Errorf("field %s for tuple not found in the given struct", t.TupleRawNames[i])
			}
			val, err := elem.pack(field)
			if err != nil {
				return nil, err
			}
			if isDynamicType(*elem) {
				ret = append(ret, packNum(reflect.ValueOf(offset))...)
				tail = append(tail, val...)
				offset += len(val)
			} else {
				ret = append(ret, val...)
			}
		}
		return append(ret, tail...), nil
	case FixedPointTy:
		return nil, &UnsupportedTypeError{Descriptor: t.String(), Reason: "fixed/ufixed values cannot be marshalled"}
	default:
		return packElement(t, v)
	}
}

// requiresLengthPrefix reports whether t is length-prefixed in the standard
// encoding (bytes, string, and dynamic arrays all are; fixed arrays are not).
func (t Type) requiresLengthPrefix() bool {
	return t.T == StringTy || t.T == BytesTy || t.T == SliceTy
}

// isDynamicType implements spec.md section 3.1's dynamism predicate:
//   - string, bytes, T[] are dynamic
//   - T[k] is dynamic iff T is dynamic
//   - (T1,...,Tk) is dynamic iff any Ti is dynamic
func isDynamicType(t Type) bool {
	if t.T == TupleTy {
		for _, elem := range t.TupleElems {
			if isDynamicType(*elem) {
				return true
			}
		}
		return false
	}
	return t.T == StringTy || t.T == BytesTy || t.T == SliceTy || (t.T == ArrayTy && isDynamicType(*t.Elem))
}

// getTypeSize returns the number of bytes a type occupies in the head. For
// static types that's the type's actual encoded size; for dynamic types it's
// always 32 (the size of the offset that stands in for it).
func getTypeSize(t Type) int {
	if t.T == ArrayTy && !isDynamicType(*t.Elem) {
		if t.Elem.T == ArrayTy || t.Elem.T == TupleTy {
			return t.Size * getTypeSize(*t.Elem)
		}
		return t.Size * 32
	} else if t.T == TupleTy && !isDynamicType(t) {
		total := 0
		for _, elem := range t.TupleElems {
			total += getTypeSize(*elem)
		}
		return total
	}
	return 32
}

// isLetter reports whether ch is classified as a Go identifier letter.
// Copied from reflect/type.go.
func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch >= utf8.RuneSelf && unicode.IsLetter(ch)
}

// isValidFieldName checks whether a string is a valid Go identifier.
// Copied from reflect/type.go.
func isValidFieldName(fieldName string) bool {
	for i, c := range fieldName {
		if i == 0 && !isLetter(c) {
			return false
		}
		if !(isLetter(c) || unicode.IsDigit(c)) {
			return false
		}
	}
	return len(fieldName) > 0
}
