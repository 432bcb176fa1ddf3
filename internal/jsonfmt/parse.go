// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package jsonfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// ErrTrailingData is returned when a payload holds more than one JSON value.
var ErrTrailingData = errors.New("jsonfmt: trailing data after JSON value")

// ErrInvalidUTF8 is returned for payloads that are not valid UTF-8. The
// decoder would otherwise replace bad bytes inside strings with U+FFFD.
var ErrInvalidUTF8 = errors.New("jsonfmt: invalid UTF-8")

// Kind identifies the type of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is a parsed JSON value.
type Value struct {
	Kind Kind

	// Bool is set for KindBool.
	Bool bool
	// Text is the decoded string for KindString and the literal for KindNumber.
	Text string

	Elems   []Value
	Members []Member
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Parse decodes data into a Value, keeping object member order.
// Any JSON value is accepted at the top level.
func Parse(data []byte) (Value, error) {
	if !utf8.Valid(data) {
		return Value{}, ErrInvalidUTF8
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := parseValue(dec)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, ErrTrailingData
	}
	return v, nil
}

func parseValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err == io.EOF {
		return Value{}, io.ErrUnexpectedEOF
	}
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		}
		return Value{}, fmt.Errorf("jsonfmt: unexpected delimiter %q", t)
	case string:
		return Value{Kind: KindString, Text: t}, nil
	case json.Number:
		return Value{Kind: KindNumber, Text: t.String()}, nil
	case bool:
		return Value{Kind: KindBool, Bool: t}, nil
	case nil:
		return Value{Kind: KindNull}, nil
	}
	return Value{}, fmt.Errorf("jsonfmt: unexpected token %v", tok)
}

func parseObject(dec *json.Decoder) (Value, error) {
	v := Value{Kind: KindObject}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("jsonfmt: object key is %T", tok)
		}
		member, err := parseValue(dec)
		if err != nil {
			return Value{}, err
		}
		v.Members = append(v.Members, Member{Key: key, Value: member})
	}
	// closing brace
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return v, nil
}

func parseArray(dec *json.Decoder) (Value, error) {
	v := Value{Kind: KindArray}
	for dec.More() {
		elem, err := parseValue(dec)
		if err != nil {
			return Value{}, err
		}
		v.Elems = append(v.Elems, elem)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return v, nil
}
