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
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/chainforma/ethabi/common"
)

// ABI holds a contract's full interface: its constructor, every named
// function/event/error, and the special fallback/receive pseudo-functions.
// Methods/Events/Errors all hold *Selector so a caller never has to branch
// on which of the three historically-separate go-ethereum types it is
// holding - dispatch.go ranges over a plain []*Selector built from these
// maps.
type ABI struct {
	Constructor Selector
	Fallback    Selector
	Receive     Selector

	Methods map[string]*Selector
	Events  map[string]*Selector
	Errors  map[string]*Selector
}

// JSON parses a standard JSON-encoded ABI document.
func JSON(reader io.Reader) (ABI, error) {
	dec := json.NewDecoder(reader)

	var abi ABI
	if err := dec.Decode(&abi); err != nil {
		return ABI{}, err
	}
	return abi, nil
}

// abiField is the raw JSON shape of one top-level ABI document entry.
type abiField struct {
	Type    string
	Name    string
	Inputs  []Argument
	Outputs []Argument

	StateMutability string

	// Deprecated, removed in solidity v0.6.0, kept for documents that still
	// emit them.
	Constant bool
	Payable  bool

	Anonymous bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (abi *ABI) UnmarshalJSON(data []byte) error {
	var fields []abiField
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	return abi.load(fields, true)
}

// load populates abi from a decoded field list. includeEvents controls
// whether "event" entries are retained (callers that only need call-data
// encoding can skip them).
func (abi *ABI) load(fields []abiField, includeEvents bool) error {
	abi.Methods = make(map[string]*Selector)
	abi.Events = make(map[string]*Selector)
	abi.Errors = make(map[string]*Selector)

	for _, field := range fields {
		switch field.Type {
		case "constructor":
			sel := NewFunctionSelector("", "", ConstructorKind, StateMutability(field.StateMutability), field.Constant, field.Payable, toArguments(field.Inputs), nil)
			abi.Constructor = sel
		case "function":
			name := ResolveNameConflict(field.Name, func(s string) bool { _, ok := abi.Methods[s]; return ok })
			sel := NewFunctionSelector(name, field.Name, FunctionKind, StateMutability(field.StateMutability), field.Constant, field.Payable, toArguments(field.Inputs), toArguments(field.Outputs))
			abi.Methods[name] = &sel
		case "fallback":
			if abi.HasFallback() {
				return errors.New("abi: only a single fallback is allowed")
			}
			abi.Fallback = NewFunctionSelector("", "", FallbackKind, StateMutability(field.StateMutability), field.Constant, field.Payable, nil, nil)
		case "receive":
			if abi.HasReceive() {
				return errors.New("abi: only a single receive is allowed")
			}
			if field.StateMutability != "payable" {
				return errors.New("abi: the state mutability of receive can only be payable")
			}
			abi.Receive = NewFunctionSelector("", "", ReceiveKind, StateMutability(field.StateMutability), field.Constant, field.Payable, nil, nil)
		case "event":
			if !includeEvents {
				continue
			}
			name := ResolveNameConflict(field.Name, func(s string) bool { _, ok := abi.Events[s]; return ok })
			sel := NewEventSelector(name, field.Name, field.Anonymous, toArguments(field.Inputs))
			abi.Events[name] = &sel
		case "error":
			sel := NewErrorSelector(field.Name, toArguments(field.Inputs))
			abi.Errors[field.Name] = &sel
		default:
			return fmt.Errorf("abi: could not recognize type %v of field %v", field.Type, field.Name)
		}
	}
	return nil
}

func toArguments(args []Argument) Arguments {
	if args == nil {
		return nil
	}
	return Arguments(args)
}

// ParseABI walks a generic JSON tree (as produced by encoding/json's
// map[string]interface{} decoding of an ABI document's top-level array,
// wrapped here as {"entries": [...]}-shaped input by convention) and
// returns every Selector it recognizes, plus one Warning per entry it had
// to skip because a leaf argument named a non-standard type (a bare struct
// or contract name with no resolvable elementary/tuple equivalent).
// includeEvents mirrors ABI.load's flag of the same name.
func ParseABI(tree map[string]interface{}, includeEvents bool) ([]Selector, []Warning, error) {
	raw, ok := tree["entries"]
	if !ok {
		return nil, nil, errors.New("abi: tree is missing \"entries\"")
	}
	entries, ok := raw.([]interface{})
	if !ok {
		return nil, nil, errors.New("abi: \"entries\" must be an array")
	}

	var (
		selectors []Selector
		warnings  []Warning
	)
	for _, entry := range entries {
		encoded, err := json.Marshal(entry)
		if err != nil {
			return nil, nil, err
		}
		// Decoding an entry fails hard if any of its leaf argument types
		// doesn't resolve to a known elementary/tuple shape (a bare struct
		// or contract name with no internalType to recover it from); the
		// type-sanity gate downgrades exactly that failure to a Warning and
		// skips the entry instead of aborting the whole document.
		var field abiField
		if err := json.Unmarshal(encoded, &field); err != nil {
			name, _ := entryName(entry)
			warnings = append(warnings, Warning{Entry: name, Reason: err.Error()})
			continue
		}

		sel, warn, err := parseABIField(field, includeEvents)
		if err != nil {
			return nil, nil, err
		}
		if warn != nil {
			warnings = append(warnings, *warn)
			continue
		}
		if sel != nil {
			selectors = append(selectors, *sel)
		}
	}
	return selectors, warnings, nil
}

// entryName best-effort extracts the "name" field of a raw tree entry, for
// attribution in a Warning when the entry failed to decode into abiField.
func entryName(entry interface{}) (string, bool) {
	m, ok := entry.(map[string]interface{})
	if !ok {
		return "", false
	}
	name, ok := m["name"].(string)
	return name, ok
}

// parseABIField converts one already-decoded field into a Selector.
func parseABIField(field abiField, includeEvents bool) (*Selector, *Warning, error) {
	if !includeEvents && field.Type == "event" {
		return nil, nil, nil
	}

	switch field.Type {
	case "constructor":
		sel := NewFunctionSelector("", "", ConstructorKind, StateMutability(field.StateMutability), field.Constant, field.Payable, toArguments(field.Inputs), nil)
		return &sel, nil, nil
	case "function":
		sel := NewFunctionSelector(field.Name, field.Name, FunctionKind, StateMutability(field.StateMutability), field.Constant, field.Payable, toArguments(field.Inputs), toArguments(field.Outputs))
		return &sel, nil, nil
	case "fallback":
		sel := NewFunctionSelector("", "", FallbackKind, StateMutability(field.StateMutability), field.Constant, field.Payable, nil, nil)
		return &sel, nil, nil
	case "receive":
		sel := NewFunctionSelector("", "", ReceiveKind, StateMutability(field.StateMutability), field.Constant, field.Payable, nil, nil)
		return &sel, nil, nil
	case "event":
		sel := NewEventSelector(field.Name, field.Name, field.Anonymous, toArguments(field.Inputs))
		return &sel, nil, nil
	case "error":
		sel := NewErrorSelector(field.Name, toArguments(field.Inputs))
		return &sel, nil, nil
	default:
		return nil, nil, nil
	}
}

// Pack encodes a call to the method named name (or the constructor, if name
// is empty) with args, prefixing the 4-byte method ID unless packing the
// constructor.
func (abi ABI) Pack(name string, args ...interface{}) ([]byte, error) {
	if name == "" {
		return abi.Constructor.Inputs.Pack(args...)
	}
	method, ok := abi.Methods[name]
	if !ok {
		return nil, fmt.Errorf("abi: method '%s' not found", name)
	}
	return method.Pack(args...)
}

func (abi ABI) getArguments(name string, data []byte) (Arguments, error) {
	var args Arguments
	if method, ok := abi.Methods[name]; ok {
		if len(data)%32 != 0 {
			return nil, fmt.Errorf("abi: improperly formatted output: %q - Bytes: %+v", data, data)
		}
		args = method.Outputs
	}
	if event, ok := abi.Events[name]; ok {
		args = event.Inputs
	}
	if errSel, ok := abi.Errors[name]; ok {
		args = errSel.Inputs
	}
	if args == nil {
		return nil, fmt.Errorf("abi: could not locate named method, event or error: %s", name)
	}
	return args, nil
}

// Unpack decodes the output of a call to name per the ABI specification.
func (abi ABI) Unpack(name string, data []byte) ([]interface{}, error) {
	args, err := abi.getArguments(name, data)
	if err != nil {
		return nil, err
	}
	return args.Unpack(data)
}

// UnpackIntoInterface decodes data into v. Use this only when v does not
// strictly conform to the ABI's own struct shape (e.g. it carries extra
// fields); UnpackIntoInterface performs an additional copy relative to
// Unpack.
func (abi ABI) UnpackIntoInterface(v interface{}, name string, data []byte) error {
	args, err := abi.getArguments(name, data)
	if err != nil {
		return err
	}
	unpacked, err := args.Unpack(data)
	if err != nil {
		return err
	}
	return args.Copy(v, unpacked)
}

// UnpackIntoMap decodes data into v, keyed by argument name.
func (abi ABI) UnpackIntoMap(v map[string]interface{}, name string, data []byte) error {
	args, err := abi.getArguments(name, data)
	if err != nil {
		return err
	}
	return args.UnpackIntoMap(v, data)
}

// MethodById looks up a method by its 4-byte selector.
func (abi *ABI) MethodById(sigdata []byte) (*Selector, error) {
	if len(sigdata) < 4 {
		return nil, fmt.Errorf("abi: data too short (%d bytes) for method lookup", len(sigdata))
	}
	for _, method := range abi.Methods {
		if bytes.Equal(method.ID, sigdata[:4]) {
			return method, nil
		}
	}
	return nil, &NoSelectorMatchError{MethodID: sigdata[:4]}
}

// EventByID looks up an event by its topic0 hash.
func (abi *ABI) EventByID(topic common.Hash) (*Selector, error) {
	for _, event := range abi.Events {
		if bytes.Equal(event.ID, topic.Bytes()) {
			return event, nil
		}
	}
	return nil, &NoSelectorMatchError{MethodID: topic.Bytes()}
}

// ErrorByID looks up a custom error by its 4-byte selector.
func (abi *ABI) ErrorByID(sigdata [4]byte) (*Selector, error) {
	for _, errSel := range abi.Errors {
		if bytes.Equal(errSel.ID, sigdata[:]) {
			return errSel, nil
		}
	}
	return nil, &NoSelectorMatchError{MethodID: sigdata[:]}
}

// HasFallback reports whether the ABI declares a fallback function.
func (abi *ABI) HasFallback() bool {
	return abi.Fallback.Kind == FallbackKind
}

// HasReceive reports whether the ABI declares a receive function.
func (abi *ABI) HasReceive() bool {
	return abi.Receive.Kind == ReceiveKind
}
