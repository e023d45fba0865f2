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
package srcdb

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/AlperAcarAI/Vespro/src/rowdata"
)

const (
	DATE_LAYOUT      = "2006-01-02"
	TIMESTAMP_LAYOUT = "2006-01-02 15:04:05"
	TZ_OFFSET_LAYOUT = "-07:00"
)

// ConvertValue classifies a scanned driver value using the column's
// database type name (as reported by pgx, e.g. "JSONB", "NUMERIC").
func ConvertValue(dbType string, v any) (rowdata.Value, error) {
	if v == nil {
		return rowdata.Null(), nil
	}
	switch strings.ToUpper(dbType) {
	case "JSON", "JSONB":
		switch t := v.(type) {
		case []byte:
			return rowdata.Structured(t)
		case string:
			return rowdata.Structured([]byte(t))
		default:
			return rowdata.StructuredOf(t)
		}
	case "NUMERIC", "DECIMAL":
		switch t := v.(type) {
		case []byte:
			return numericValue(string(t))
		case string:
			return numericValue(t)
		}
	case "DATE":
		if t, ok := v.(time.Time); ok {
			return rowdata.Text(t.Format(DATE_LAYOUT)), nil
		}
	case "TIMESTAMP":
		if t, ok := v.(time.Time); ok {
			return rowdata.Text(FormatTimestamp(t, false)), nil
		}
	case "TIMESTAMPTZ":
		if t, ok := v.(time.Time); ok {
			return rowdata.Text(FormatTimestamp(t, true)), nil
		}
	case "BYTEA":
		if b, ok := v.([]byte); ok {
			return rowdata.Text(`\x` + hex.EncodeToString(b)), nil
		}
	}
	return convertGoValue(v)
}

func convertGoValue(v any) (rowdata.Value, error) {
	switch t := v.(type) {
	case bool:
		return rowdata.Bool(t), nil
	case int64:
		return rowdata.Int(t), nil
	case int32:
		return rowdata.Int(int64(t)), nil
	case int16:
		return rowdata.Int(int64(t)), nil
	case int:
		return rowdata.Int(int64(t)), nil
	case uint32:
		return rowdata.Uint(uint64(t)), nil
	case uint64:
		return rowdata.Uint(t), nil
	case float64:
		return rowdata.Float(t, 64), nil
	case float32:
		return rowdata.Float(float64(t), 32), nil
	case *big.Float:
		return rowdata.Number(t.Text('f', -1))
	case string:
		return rowdata.Text(t), nil
	case []byte:
		return rowdata.Text(string(t)), nil
	case time.Time:
		return rowdata.Text(FormatTimestamp(t, true)), nil
	case map[string]any, []any:
		return rowdata.StructuredOf(t)
	case fmt.Stringer:
		return rowdata.Text(t.String()), nil
	default:
		return rowdata.Text(fmt.Sprint(t)), nil
	}
}

// numeric columns can hold NaN and the infinities; those keep their
// spelling as quoted text.
func numericValue(text string) (rowdata.Value, error) {
	switch text {
	case "NaN", "Infinity", "-Infinity":
		return rowdata.Text(text), nil
	}
	return rowdata.Number(text)
}

// FormatTimestamp writes t as "2006-01-02 15:04:05", adding microseconds
// only when non-zero and the UTC offset when withZone is set.
func FormatTimestamp(t time.Time, withZone bool) string {
	var sb strings.Builder
	sb.WriteString(t.Format(TIMESTAMP_LAYOUT))
	if micros := t.Nanosecond() / 1000; micros != 0 {
		sb.WriteString(fmt.Sprintf(".%06d", micros))
	}
	if withZone {
		sb.WriteString(t.Format(TZ_OFFSET_LAYOUT))
	}
	return sb.String()
}
