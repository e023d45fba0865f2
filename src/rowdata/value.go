/*
Copyright (c) YugabyteDB, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
// Package rowdata holds the values read from the source database in a small,
// closed set of variants so that rendering can switch exhaustively on Kind.
package rowdata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindText
	KindStructured
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindStructured:
		return "structured"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is one column value of a row. The zero Value is Null.
//
// For KindNumber the payload is the decimal text of the number, for KindText
// the text itself and for KindStructured the raw JSON document.
type Value struct {
	kind    Kind
	boolean bool
	payload string
}

func Null() Value {
	return Value{kind: KindNull}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

func Int(i int64) Value {
	return Value{kind: KindNumber, payload: strconv.FormatInt(i, 10)}
}

func Uint(u uint64) Value {
	return Value{kind: KindNumber, payload: strconv.FormatUint(u, 10)}
}

// Float returns a Number for finite values. NaN and the infinities have no
// unquoted SQL form, so they become the Text spelling postgres accepts.
func Float(f float64, bitSize int) Value {
	switch {
	case math.IsNaN(f):
		return Text("NaN")
	case math.IsInf(f, 1):
		return Text("Infinity")
	case math.IsInf(f, -1):
		return Text("-Infinity")
	}
	return Value{kind: KindNumber, payload: strconv.FormatFloat(f, 'f', -1, bitSize)}
}

// Number wraps an exact decimal text such as a postgres numeric. Values too
// large for a float64 are accepted as long as they are plain decimals.
func Number(text string) (Value, error) {
	text = strings.TrimSpace(text)
	if strings.ContainsAny(text, "xX_") {
		return Value{}, fmt.Errorf("invalid number %q: not a decimal", text)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if !isRangeErr(err) {
			return Value{}, fmt.Errorf("invalid number %q: %w", text, err)
		}
	} else if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("invalid number %q: not finite", text)
	}
	return Value{kind: KindNumber, payload: text}, nil
}

func Text(s string) Value {
	return Value{kind: KindText, payload: s}
}

// Structured wraps a raw JSON document. The document is validated and any
// insignificant whitespace around it is dropped; inner formatting and object
// key order are kept as received.
func Structured(raw []byte) (Value, error) {
	raw = bytes.TrimSpace(raw)
	if !json.Valid(raw) {
		return Value{}, fmt.Errorf("invalid json document: %.64q", raw)
	}
	return Value{kind: KindStructured, payload: string(raw)}, nil
}

// StructuredOf marshals a Go value (maps, slices, ...) into a Structured value.
func StructuredOf(v any) (Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return Value{}, fmt.Errorf("marshal structured value: %w", err)
	}
	return Structured(raw)
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool is only meaningful for KindBool.
func (v Value) AsBool() bool {
	return v.boolean
}

// String returns the payload: decimal text, text, or raw JSON.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.boolean)
	default:
		return v.payload
	}
}

// Truthy follows the usual scripting notion of emptiness: null, false, zero,
// the empty string and empty JSON containers are all falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.boolean
	case KindNumber:
		return !isZero(v.payload)
	case KindText:
		return v.payload != ""
	case KindStructured:
		return structuredTruthy(v.payload)
	default:
		return false
	}
}

func structuredTruthy(raw string) bool {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return false
	}
	switch t := tok.(type) {
	case nil:
		return false
	case bool:
		return t
	case json.Number:
		return !isZero(t.String())
	case string:
		return t != ""
	case json.Delim:
		return dec.More()
	default:
		return true
	}
}

func isZero(text string) bool {
	f, err := strconv.ParseFloat(text, 64)
	return err == nil && f == 0
}

func isRangeErr(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}
