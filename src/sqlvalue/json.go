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
package sqlvalue

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/AlperAcarAI/Vespro/src/rowdata"
)

// EncodeJSON serializes v as JSON text in the layout downstream consumers of
// the export already diff against: ", " and ": " separators, every non-ASCII
// character escaped as \uXXXX, object keys in their original order and
// numbers exactly as stored.
func EncodeJSON(v rowdata.Value) (string, error) {
	var sb strings.Builder
	switch v.Kind() {
	case rowdata.KindNull:
		sb.WriteString("null")
	case rowdata.KindBool:
		if v.AsBool() {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case rowdata.KindNumber:
		sb.WriteString(v.String())
	case rowdata.KindText:
		writeJSONString(&sb, v.String())
	case rowdata.KindStructured:
		err := reencodeJSON(&sb, v.String())
		if err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("cannot encode value of kind %s as json", v.Kind())
	}
	return sb.String(), nil
}

func reencodeJSON(sb *strings.Builder, raw string) error {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	err = writeJSONToken(sb, dec, tok)
	if err != nil {
		return err
	}
	_, err = dec.Token()
	if !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode json: unexpected data after top-level value")
	}
	return nil
}

func writeJSONToken(sb *strings.Builder, dec *json.Decoder, tok json.Token) error {
	switch t := tok.(type) {
	case nil:
		sb.WriteString("null")
	case bool:
		if t {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case json.Number:
		sb.WriteString(t.String())
	case string:
		writeJSONString(sb, t)
	case json.Delim:
		switch t {
		case '{':
			return writeJSONObject(sb, dec)
		case '[':
			return writeJSONArray(sb, dec)
		default:
			return fmt.Errorf("decode json: unexpected delimiter %q", t)
		}
	default:
		return fmt.Errorf("decode json: unexpected token %T", tok)
	}
	return nil
}

func writeJSONObject(sb *strings.Builder, dec *json.Decoder) error {
	sb.WriteByte('{')
	for i := 0; dec.More(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode json: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("decode json: object key is %T", keyTok)
		}
		writeJSONString(sb, key)
		sb.WriteString(": ")
		valTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode json: %w", err)
		}
		err = writeJSONToken(sb, dec, valTok)
		if err != nil {
			return err
		}
	}
	// closing '}'
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	sb.WriteByte('}')
	return nil
}

func writeJSONArray(sb *strings.Builder, dec *json.Decoder) error {
	sb.WriteByte('[')
	for i := 0; dec.More(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode json: %w", err)
		}
		err = writeJSONToken(sb, dec, tok)
		if err != nil {
			return err
		}
	}
	// closing ']'
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	sb.WriteByte(']')
	return nil
}

const hexDigits = "0123456789abcdef"

func writeJSONString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"':
				sb.WriteString(`\"`)
			case '\\':
				sb.WriteString(`\\`)
			case '\n':
				sb.WriteString(`\n`)
			case '\r':
				sb.WriteString(`\r`)
			case '\t':
				sb.WriteString(`\t`)
			case '\b':
				sb.WriteString(`\b`)
			case '\f':
				sb.WriteString(`\f`)
			default:
				if c < 0x20 {
					writeUnicodeEscape(sb, rune(c))
				} else {
					sb.WriteByte(c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		// invalid UTF-8 decodes to utf8.RuneError and is written as �
		if r > 0xFFFF {
			r -= 0x10000
			writeUnicodeEscape(sb, 0xD800+(r>>10)&0x3FF)
			writeUnicodeEscape(sb, 0xDC00+r&0x3FF)
		} else {
			writeUnicodeEscape(sb, r)
		}
		i += size
	}
	sb.WriteByte('"')
}

func writeUnicodeEscape(sb *strings.Builder, r rune) {
	sb.WriteString(`\u`)
	sb.WriteByte(hexDigits[r>>12&0xF])
	sb.WriteByte(hexDigits[r>>8&0xF])
	sb.WriteByte(hexDigits[r>>4&0xF])
	sb.WriteByte(hexDigits[r&0xF])
}
