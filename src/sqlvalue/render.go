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
	"fmt"
	"strings"

	"github.com/AlperAcarAI/Vespro/src/rowdata"
)

const (
	NULL_LITERAL        = "NULL"
	TRUE_LITERAL        = "TRUE"
	FALSE_LITERAL       = "FALSE"
	JSONB_CAST          = "::jsonb"
	EMPTY_JSONB_LITERAL = "'{}'" + JSONB_CAST
)

// Renderer turns column values into SQL literals for one table.
//
// Columns listed as structured are always written as jsonb, whatever the
// value looks like in memory. Booleans only get TRUE/FALSE keywords when
// booleanLiterals is set; otherwise they go through the quoted text path.
type Renderer struct {
	structuredColumns map[string]struct{}
	booleanLiterals   bool
}

func NewRenderer(structuredColumns []string, booleanLiterals bool) *Renderer {
	r := &Renderer{
		structuredColumns: make(map[string]struct{}, len(structuredColumns)),
		booleanLiterals:   booleanLiterals,
	}
	for _, col := range structuredColumns {
		r.structuredColumns[col] = struct{}{}
	}
	return r
}

func (r *Renderer) IsStructured(column string) bool {
	_, ok := r.structuredColumns[column]
	return ok
}

func (r *Renderer) Render(column string, v rowdata.Value) (string, error) {
	if r.IsStructured(column) {
		if !v.Truthy() {
			return EMPTY_JSONB_LITERAL, nil
		}
		text, err := EncodeJSON(v)
		if err != nil {
			return "", fmt.Errorf("column %s: %w", column, err)
		}
		return JSONBLiteral(text), nil
	}

	switch v.Kind() {
	case rowdata.KindNull:
		return NULL_LITERAL, nil
	case rowdata.KindBool:
		if !r.booleanLiterals {
			return QuoteLiteral(v.String()), nil
		}
		if v.AsBool() {
			return TRUE_LITERAL, nil
		}
		return FALSE_LITERAL, nil
	case rowdata.KindNumber:
		return v.String(), nil
	case rowdata.KindText:
		return QuoteLiteral(v.String()), nil
	case rowdata.KindStructured:
		text, err := EncodeJSON(v)
		if err != nil {
			return "", fmt.Errorf("column %s: %w", column, err)
		}
		return QuoteLiteral(text), nil
	default:
		return "", fmt.Errorf("column %s: unsupported value kind %s", column, v.Kind())
	}
}

// RenderRow returns the column names and rendered literals in row order.
func (r *Renderer) RenderRow(row rowdata.Row) ([]string, []string, error) {
	columns := make([]string, len(row))
	values := make([]string, len(row))
	for i, field := range row {
		literal, err := r.Render(field.Name, field.Value)
		if err != nil {
			return nil, nil, err
		}
		columns[i] = field.Name
		values[i] = literal
	}
	return columns, values, nil
}

// QuoteLiteral single-quotes s, doubling every embedded single quote.
// Backslashes are left alone (standard_conforming_strings).
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func JSONBLiteral(jsonText string) string {
	return QuoteLiteral(jsonText) + JSONB_CAST
}
