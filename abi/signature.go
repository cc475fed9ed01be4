// Copyright 2022 The go-ethereum Authors
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
)

// SelectorMarshaling is the JSON-serializable shape of a parsed textual
// selector, mirroring one entry of an ABI document's top-level array.
type SelectorMarshaling struct {
	Name   string               `json:"name"`
	Type   string               `json:"type"`
	Inputs []ArgumentMarshaling `json:"inputs"`
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isIdentifierSymbol(c byte) bool { return c == '$' || c == '_' }

// parseToken consumes a run of identifier (or elementary-type) characters
// starting at the front of s, returning the token and the remainder.
func parseToken(s string, isIdent bool) (string, string, error) {
	if len(s) == 0 {
		return "", "", &ParseError{Reason: "empty token"}
	}
	first := s[0]
	if !(isAlpha(first) || (isIdent && isIdentifierSymbol(first))) {
		return "", "", &ParseError{Reason: fmt.Sprintf("invalid token start: %c", first)}
	}
	pos := 1
	for pos < len(s) {
		c := s[pos]
		if !(isAlpha(c) || isDigit(c) || (isIdent && isIdentifierSymbol(c))) {
			break
		}
		pos++
	}
	return s[:pos], s[pos:], nil
}

func parseIdentifier(s string) (string, string, error) {
	return parseToken(s, true)
}

// canonicalizeElementary resolves textual-grammar spellings that NewType's
// JSON-document path does not accept on its own: a bare "enum" is
// normalized to uint8 (an enum's underlying storage type, per solidity's
// own ABI encoding of enum values), and bare "int"/"uint" - valid in the
// compact textual grammar, where they mean the 256-bit default - are
// widened to "int256"/"uint256" before reaching NewType, which otherwise
// rejects an implicit width (the JSON ABI document path never sees one,
// since the compiler always emits the explicit size there).
func canonicalizeElementary(name string) string {
	switch name {
	case "enum":
		return "uint8"
	case "int":
		return "int256"
	case "uint":
		return "uint256"
	default:
		return name
	}
}

// parseElementaryType parses a leaf type name plus any trailing [ ]/[N]
// array suffixes.
func parseElementaryType(s string) (string, string, error) {
	parsed, rest, err := parseToken(s, false)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse elementary type: %w", err)
	}
	parsed = canonicalizeElementary(parsed)
	for len(rest) > 0 && rest[0] == '[' {
		parsed += string(rest[0])
		rest = rest[1:]
		for len(rest) > 0 && isDigit(rest[0]) {
			parsed += string(rest[0])
			rest = rest[1:]
		}
		if len(rest) == 0 || rest[0] != ']' {
			return "", "", &ParseError{Reason: "expected ']' to close array suffix"}
		}
		parsed += string(rest[0])
		rest = rest[1:]
	}
	return parsed, rest, nil
}

// parseCompositeType parses a parenthesized tuple type, optionally followed
// by a single "[]" suffix. A "[N]" suffix, or more than one suffix, after a
// tuple is not recognized and is left in the returned remainder.
func parseCompositeType(s string) ([]interface{}, string, error) {
	if len(s) == 0 || s[0] != '(' {
		got := byte(0)
		if len(s) > 0 {
			got = s[0]
		}
		return nil, "", &ParseError{Reason: fmt.Sprintf("expected '(', got %c", got)}
	}
	parsed, rest, err := parseType(s[1:])
	if err != nil {
		return nil, "", err
	}
	result := []interface{}{parsed}
	for len(rest) > 0 && rest[0] != ')' {
		parsed, rest, err = parseType(rest[1:])
		if err != nil {
			return nil, "", err
		}
		result = append(result, parsed)
	}
	if len(rest) == 0 || rest[0] != ')' {
		return nil, "", &ParseError{Reason: fmt.Sprintf("expected ')', got '%s'", rest)}
	}
	if len(rest) >= 3 && rest[1] == '[' && rest[2] == ']' {
		return append(result, "[]"), rest[3:], nil
	}
	return result, rest[1:], nil
}

func parseType(s string) (interface{}, string, error) {
	if len(s) == 0 {
		return nil, "", &ParseError{Reason: "empty type"}
	}
	if s[0] == '(' {
		return parseCompositeType(s)
	}
	return parseElementaryType(s)
}

// assembleArgs turns the raw parse tree (strings for elementary types,
// nested []interface{} for tuples) into the ArgumentMarshaling tree NewType
// already knows how to consume.
func assembleArgs(args []interface{}) ([]ArgumentMarshaling, error) {
	arguments := make([]ArgumentMarshaling, 0, len(args))
	for i, arg := range args {
		name := fmt.Sprintf("name%d", i)
		switch v := arg.(type) {
		case string:
			arguments = append(arguments, ArgumentMarshaling{Name: name, Type: v, InternalType: v})
		case []interface{}:
			subArgs, err := assembleArgs(v)
			if err != nil {
				return nil, err
			}
			tupleType := "tuple"
			if len(subArgs) != 0 && subArgs[len(subArgs)-1].Type == "[]" {
				subArgs = subArgs[:len(subArgs)-1]
				tupleType = "tuple[]"
			}
			arguments = append(arguments, ArgumentMarshaling{Name: name, Type: tupleType, InternalType: tupleType, Components: subArgs})
		default:
			return nil, fmt.Errorf("abi: unexpected token type %T while assembling signature", arg)
		}
	}
	return arguments, nil
}

// ParseSignature parses a compact textual signature such as
// "baz(uint,address)" into a FunctionKind Selector. Uppercase letters are
// accepted even though solidity's own canonical form is lowercase-only,
// since the grammar is otherwise unambiguous.
func ParseSignature(text string) (Selector, error) {
	name, rest, err := parseIdentifier(text)
	if err != nil {
		return Selector{}, fmt.Errorf("abi: failed to parse signature %q: %w", text, err)
	}
	var args []interface{}
	if len(rest) >= 2 && rest[0] == '(' && rest[1] == ')' {
		rest = rest[2:]
	} else {
		args, rest, err = parseCompositeType(rest)
		if err != nil {
			return Selector{}, fmt.Errorf("abi: failed to parse signature %q: %w", text, err)
		}
	}
	if len(rest) > 0 {
		return Selector{}, &ParseError{Position: len(text) - len(rest), Reason: fmt.Sprintf("unexpected trailing input %q", rest)}
	}

	marshaled, err := assembleArgs(args)
	if err != nil {
		return Selector{}, err
	}
	inputs := make(Arguments, len(marshaled))
	for i, m := range marshaled {
		typ, err := NewType(m.Type, m.InternalType, m.Components)
		if err != nil {
			return Selector{}, err
		}
		inputs[i] = Argument{Name: m.Name, Type: typ}
	}
	return NewFunctionSelector(name, name, FunctionKind, Nonpayable, false, false, inputs, nil), nil
}

// ParseType parses a single bare type descriptor, such as "uint256[]" or
// "(uint,bool)", with no enclosing selector name.
func ParseType(text string) (Type, error) {
	parsed, rest, err := parseType(text)
	if err != nil {
		return Type{}, err
	}
	if len(rest) > 0 {
		return Type{}, &ParseError{Position: len(text) - len(rest), Reason: fmt.Sprintf("unexpected trailing input %q", rest)}
	}
	switch v := parsed.(type) {
	case string:
		return NewType(v, v, nil)
	case []interface{}:
		marshaled, err := assembleArgs(v)
		if err != nil {
			return Type{}, err
		}
		tupleType := "tuple"
		if len(marshaled) != 0 && marshaled[len(marshaled)-1].Type == "[]" {
			marshaled = marshaled[:len(marshaled)-1]
			tupleType = "tuple[]"
		}
		return NewType(tupleType, tupleType, marshaled)
	default:
		return Type{}, fmt.Errorf("abi: unexpected parse result %T", parsed)
	}
}
