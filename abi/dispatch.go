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
	"bytes"
	"fmt"

	"github.com/chainforma/ethabi/common"
)

// FindByMethodID scans selectors for the FunctionKind or ErrorKind entry
// whose 4-byte ID matches id.
func FindByMethodID(selectors []*Selector, id []byte) (*Selector, error) {
	if len(id) < 4 {
		return nil, fmt.Errorf("abi: data too short (%d bytes) for method lookup", len(id))
	}
	for _, sel := range selectors {
		if (sel.Kind == FunctionKind || sel.Kind == ErrorKind) && len(sel.ID) >= 4 && bytes.Equal(sel.ID[:4], id[:4]) {
			return sel, nil
		}
	}
	return nil, &NoSelectorMatchError{MethodID: id[:4]}
}

// FindEvent scans selectors for the EventKind entry matching topic0, further
// disambiguating same-hash candidates (which cannot occur from distinct
// signatures, but can when the same selector set has been built from
// multiple documents) by the number of indexed parameters implied by
// topicsMask - the boolean presence of topics[1:] beyond topic0.
func FindEvent(selectors []*Selector, topic0 common.Hash, topicsMask []bool) (*Selector, error) {
	var candidates []*Selector
	for _, sel := range selectors {
		if sel.Kind == EventKind && bytes.Equal(sel.ID, topic0.Bytes()) {
			candidates = append(candidates, sel)
		}
	}
	if len(candidates) == 0 {
		return nil, &NoSelectorMatchError{MethodID: topic0.Bytes()}
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	wantIndexed := 0
	for _, present := range topicsMask {
		if present {
			wantIndexed++
		}
	}
	for _, sel := range candidates {
		indexed := 0
		for _, in := range sel.Inputs {
			if in.Indexed {
				indexed++
			}
		}
		if indexed == wantIndexed {
			return sel, nil
		}
	}
	return candidates[0], nil
}

// FindAndDecode finds the FunctionKind or ErrorKind selector in selectors
// whose ID matches the leading 4 bytes of data, then decodes the remainder
// as call data: against Inputs in both cases (data is methodID++encode(args)
// for a function call or a custom-error revert alike; Outputs only ever
// shows up in a function's *return* data, which has no ID prefix to match
// against here).
func FindAndDecode(selectors []*Selector, data []byte) (*Selector, []interface{}, error) {
	sel, err := FindByMethodID(selectors, data)
	if err != nil {
		return nil, nil, err
	}
	values, err := sel.Unpack(data, InputDirection)
	if err != nil {
		return nil, nil, err
	}
	return sel, values, nil
}

// OpaqueHash is the value DecodeEvent reports for an indexed argument whose
// declared type is dynamic (string, bytes, slice, array, tuple): solidity
// stores only the Keccak256 hash of such a value in its topic slot, so the
// original value cannot be recovered and the bare hash is surfaced instead.
type OpaqueHash = common.Hash

// DecodedEventField is one resolved field of a decoded event log, carrying
// both its declared argument metadata and its recovered value.
type DecodedEventField struct {
	Name    string
	Type    Type
	Indexed bool
	Value   interface{}
}

// DecodeEvent splits sel's declared inputs into their indexed and
// non-indexed halves, decoding the non-indexed half as a flat tuple out of
// data and the indexed half out of topics[1:] (topics[0] is topic0, the
// event's own ID, and is not itself a field value). A dynamic indexed value
// (string, bytes, array, tuple) cannot be recovered from its topic; for
// those DecodedEventField.Value is the bare 32-byte common.Hash that solidity
// stores in its place.
func DecodeEvent(sel *Selector, topics []common.Hash, data []byte) ([]DecodedEventField, error) {
	if sel.Kind != EventKind {
		return nil, fmt.Errorf("abi: selector %q is not an event", sel.Name)
	}
	indexedArgs := Arguments{}
	for _, in := range sel.Inputs {
		if in.Indexed {
			indexedArgs = append(indexedArgs, in)
		}
	}
	topicValues := topics
	if !sel.Anonymous {
		if len(topics) == 0 {
			return nil, fmt.Errorf("abi: event %q expects a topic0, got none", sel.Name)
		}
		topicValues = topics[1:]
	}
	if len(topicValues) != len(indexedArgs) {
		return nil, fmt.Errorf("abi: event %q expects %d indexed topics, got %d", sel.Name, len(indexedArgs), len(topicValues))
	}

	indexedMap := map[string]interface{}{}
	if len(indexedArgs) > 0 {
		if err := ParseTopicsIntoMap(indexedMap, indexedArgs, topicValues); err != nil {
			return nil, err
		}
	}

	nonIndexed := sel.Inputs.NonIndexed()
	values, err := nonIndexed.Unpack(data)
	if err != nil {
		return nil, err
	}
	nonIndexedMap := map[string]interface{}{}
	for i, arg := range nonIndexed {
		nonIndexedMap[arg.Name] = values[i]
	}

	fields := make([]DecodedEventField, 0, len(sel.Inputs))
	for _, in := range sel.Inputs {
		var v interface{}
		if in.Indexed {
			v = indexedMap[in.Name]
		} else {
			v = nonIndexedMap[in.Name]
		}
		fields = append(fields, DecodedEventField{Name: in.Name, Type: in.Type, Indexed: in.Indexed, Value: v})
	}
	return fields, nil
}
