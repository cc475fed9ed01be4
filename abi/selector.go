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
	"bytes"
	"fmt"
	"math/big"
	"strings"

	"github.com/chainforma/ethabi/crypto"
)

// Kind discriminates the six shapes a Selector can take. Unlike upstream
// go-ethereum, which carries Method, Event and Error as three unrelated
// struct types, this codec represents all of them - plus the constructor,
// fallback and receive pseudo-functions - as one tagged Selector, since they
// share the same signature/ID/argument-list shape and every dispatch
// operation (FindByMethodID, FindEvent, FindAndDecode) wants to range over
// them uniformly.
type Kind byte

const (
	FunctionKind Kind = iota
	ConstructorKind
	FallbackKind
	ReceiveKind
	EventKind
	ErrorKind
)

func (k Kind) String() string {
	switch k {
	case FunctionKind:
		return "function"
	case ConstructorKind:
		return "constructor"
	case FallbackKind:
		return "fallback"
	case ReceiveKind:
		return "receive"
	case EventKind:
		return "event"
	case ErrorKind:
		return "error"
	default:
		return "unknown"
	}
}

// StateMutability captures solidity's "pure"/"view"/"nonpayable"/"payable"
// indicator, carried through for fidelity but never affecting encoding.
type StateMutability string

const (
	Pure       StateMutability = "pure"
	View       StateMutability = "view"
	Nonpayable StateMutability = "nonpayable"
	Payable    StateMutability = "payable"
)

// Selector is the unified record for every named, ID-addressable ABI entry:
// functions, the constructor, fallback/receive, events, and custom errors.
type Selector struct {
	Kind Kind

	// Name is the internal, possibly-disambiguated identifier (e.g. "send0"
	// for the second overload of "send"); RawName is the name as declared.
	Name    string
	RawName string

	Inputs  Arguments
	Outputs Arguments // only meaningful for FunctionKind

	StateMutability StateMutability
	Constant        bool
	Payable         bool
	Anonymous       bool // only meaningful for EventKind

	str string
	Sig string // canonical "name(type,type,...)" signature

	// ID is the first 4 bytes of Keccak256(Sig) for functions/errors, or the
	// full 32-byte Keccak256(Sig) for events (used as topic0).
	ID []byte
}

// NewFunctionSelector builds a FunctionKind, ConstructorKind, FallbackKind or
// ReceiveKind selector. kind must be one of those four; inputs/outputs are
// sanitized (unnamed arguments get "argN" names) the same way the teacher's
// NewEvent/NewError do.
func NewFunctionSelector(name, rawName string, kind Kind, mutability StateMutability, constant, payable bool, inputs, outputs Arguments) Selector {
	sanitize(inputs)
	sanitize(outputs)

	var sig, str string
	switch kind {
	case ConstructorKind:
		sig = fmt.Sprintf("(%v)", strings.Join(sigTypes(inputs), ","))
		str = fmt.Sprintf("constructor(%v)", strings.Join(displayArgs(inputs), ", "))
	case FallbackKind:
		str = "fallback()"
	case ReceiveKind:
		str = "receive() payable"
	default:
		sig = fmt.Sprintf("%v(%v)", rawName, strings.Join(sigTypes(inputs), ","))
		str = fmt.Sprintf("function %v(%v) %v returns(%v)", rawName,
			strings.Join(displayArgs(inputs), ", "), mutability, strings.Join(displayArgs(outputs), ", "))
	}

	var id []byte
	if sig != "" {
		id = crypto.Keccak256([]byte(sig))[:4]
	}

	return Selector{
		Kind:            kind,
		Name:            name,
		RawName:         rawName,
		Inputs:          inputs,
		Outputs:         outputs,
		StateMutability: mutability,
		Constant:        constant,
		Payable:         payable,
		str:             str,
		Sig:             sig,
		ID:              id,
	}
}

// NewEventSelector builds an EventKind selector. Its ID is the full 32-byte
// Keccak256 hash of the signature (topic0), not truncated to 4 bytes.
func NewEventSelector(name, rawName string, anonymous bool, inputs Arguments) Selector {
	sanitize(inputs)

	names := make([]string, len(inputs))
	for i, input := range inputs {
		names[i] = fmt.Sprintf("%v %v", input.Type, input.Name)
		if input.Indexed {
			names[i] = fmt.Sprintf("%v indexed %v", input.Type, input.Name)
		}
	}
	str := fmt.Sprintf("event %v(%v)", rawName, strings.Join(names, ", "))
	sig := fmt.Sprintf("%v(%v)", rawName, strings.Join(sigTypes(inputs), ","))
	id := crypto.Keccak256([]byte(sig))

	return Selector{
		Kind:      EventKind,
		Name:      name,
		RawName:   rawName,
		Inputs:    inputs,
		Anonymous: anonymous,
		str:       str,
		Sig:       sig,
		ID:        id,
	}
}

// NewErrorSelector builds an ErrorKind selector, with a 4-byte ID like a
// function (errors cannot be overloaded, so no name-conflict resolution is
// needed by callers).
func NewErrorSelector(name string, inputs Arguments) Selector {
	sanitize(inputs)

	str := fmt.Sprintf("error %v(%v)", name, strings.Join(displayArgs(inputs), ", "))
	sig := fmt.Sprintf("%v(%v)", name, strings.Join(sigTypes(inputs), ","))
	id := crypto.Keccak256([]byte(sig))[:4]

	return Selector{
		Kind:    ErrorKind,
		Name:    name,
		RawName: name,
		Inputs:  inputs,
		str:     str,
		Sig:     sig,
		ID:      id,
	}
}

func sanitize(args Arguments) {
	for i, arg := range args {
		if arg.Name == "" {
			args[i].Name = fmt.Sprintf("arg%d", i)
		}
	}
}

func sigTypes(args Arguments) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a.Type.String()
	}
	return out
}

func displayArgs(args Arguments) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if a.Indexed {
			out[i] = fmt.Sprintf("%v indexed %v", a.Type, a.Name)
		} else {
			out[i] = fmt.Sprintf("%v %v", a.Type, a.Name)
		}
	}
	return out
}

// String implements Stringer.
func (s Selector) String() string {
	return s.str
}

// Pack encodes args against s's Inputs, prefixing the 4-byte ID when s is a
// function or error (constructors and events have no ID prefix in their
// packed call-data/log-data form).
func (s Selector) Pack(args ...interface{}) ([]byte, error) {
	packed, err := s.Inputs.Pack(args...)
	if err != nil {
		return nil, err
	}
	switch s.Kind {
	case FunctionKind, ErrorKind:
		return append(append([]byte{}, s.ID[:4]...), packed...), nil
	default:
		return packed, nil
	}
}

// Direction selects which of a FunctionKind selector's two argument lists
// Unpack decodes against: call data is shaped by Inputs, return data by
// Outputs. Every other kind has a single argument list and ignores it.
type Direction int

const (
	InputDirection Direction = iota
	OutputDirection
)

// Unpack decodes data against s's argument list for dir (Inputs for a
// function's call data, Outputs for its return data; every other kind has
// only Inputs and ignores dir). If data carries s's own ID as its leading 4
// bytes, that prefix is stripped before decoding; otherwise the entire input
// is treated as the body, since constructors and anonymous-topic-free
// contexts can hand Unpack a body with no prefix at all.
func (s Selector) Unpack(data []byte, dir Direction) ([]interface{}, error) {
	args := s.Inputs
	if s.Kind == FunctionKind && dir == OutputDirection {
		args = s.Outputs
	}
	switch s.Kind {
	case FunctionKind, ErrorKind:
		if len(data) >= 4 && bytes.Equal(data[:4], s.ID[:4]) {
			return args.Unpack(data[4:])
		}
		return args.Unpack(data)
	default:
		return args.Unpack(data)
	}
}

// revertSelector/panicSelector/panicReasons support UnpackRevert, which
// decodes solidity's implicit `Error(string)`/`Panic(uint256)` revert
// encodings.
var (
	revertSelector = crypto.Keccak256([]byte("Error(string)"))[:4]
	panicSelector  = crypto.Keccak256([]byte("Panic(uint256)"))[:4]
)

// panicReasons maps solidity's builtin panic codes to readable descriptions.
// See https://docs.soliditylang.org/en/latest/control-structures.html#panic-via-assert-and-error-via-require.
var panicReasons = map[uint64]string{
	0x00: "generic panic",
	0x01: "assert(false)",
	0x11: "arithmetic underflow or overflow",
	0x12: "division or modulo by zero",
	0x21: "enum overflow",
	0x22: "invalid encoded storage byte array accessed",
	0x31: "out-of-bounds array access; popping on an empty array",
	0x32: "out-of-bounds access of an array or bytesN",
	0x41: "out of memory",
	0x51: "uninitialized function",
}

// UnpackRevert resolves an abi-encoded revert reason, which solidity encodes
// as if it were a call to `Error(string)` or `Panic(uint256)`.
func UnpackRevert(data []byte) (string, error) {
	if len(data) < 4 {
		return "", fmt.Errorf("abi: invalid data for unpacking revert reason")
	}
	switch {
	case bytes.Equal(data[:4], revertSelector):
		typ, err := NewType("string", "", nil)
		if err != nil {
			return "", err
		}
		unpacked, err := (Arguments{{Type: typ}}).Unpack(data[4:])
		if err != nil {
			return "", err
		}
		return unpacked[0].(string), nil
	case bytes.Equal(data[:4], panicSelector):
		typ, err := NewType("uint256", "", nil)
		if err != nil {
			return "", err
		}
		unpacked, err := (Arguments{{Type: typ}}).Unpack(data[4:])
		if err != nil {
			return "", err
		}
		pCode := unpacked[0].(*big.Int)
		if pCode.IsUint64() {
			if reason, ok := panicReasons[pCode.Uint64()]; ok {
				return reason, nil
			}
		}
		return fmt.Sprintf("unknown panic code: %#x", pCode), nil
	default:
		return "", fmt.Errorf("abi: invalid data for unpacking revert reason")
	}
}
