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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlperAcarAI/Vespro/src/rowdata"
)

func structured(t *testing.T, raw string) rowdata.Value {
	t.Helper()
	v, err := rowdata.Structured([]byte(raw))
	require.NoError(t, err)
	return v
}

func TestEncodeJSONLayout(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected string
	}{
		{"object", `{"a":1}`, `{"a": 1}`},
		{"key order kept", `{"z":1,"a":2,"m":3}`, `{"z": 1, "a": 2, "m": 3}`},
		{"nested", `{"a":[1,{"b":null}],"c":{}}`, `{"a": [1, {"b": null}], "c": {}}`},
		{"array", `[true,false,"x"]`, `[true, false, "x"]`},
		{"empty array", `[ ]`, `[]`},
		{"number verbatim", `{"price":12.50,"exp":1e3}`, `{"price": 12.50, "exp": 1e3}`},
		{"scalar string", `"plain"`, `"plain"`},
		{"escapes", `{"q":"say \"hi\"\n\\ \/"}`, `{"q": "say \"hi\"\n\\ /"}`},
		{"control char", `"a\u0001b"`, `"a\u0001b"`},
		{"non ascii", `{"malzeme":"Çelik ATÖLYE İŞÇİLİK"}`, `{"malzeme": "\u00c7elik AT\u00d6LYE \u0130\u015e\u00c7\u0130L\u0130K"}`},
		{"astral plane", `"😀"`, `"\ud83d\ude00"`},
		{"single quote", `{"name":"Al's"}`, `{"name": "Al's"}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			text, err := EncodeJSON(structured(t, tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, text)
			assert.True(t, json.Valid([]byte(text)))
		})
	}
}

func TestEncodeJSONScalars(t *testing.T) {
	text, err := EncodeJSON(rowdata.Text("O'Brien – Ltd"))
	require.NoError(t, err)
	assert.Equal(t, `"O'Brien \u2013 Ltd"`, text)

	text, err = EncodeJSON(rowdata.Int(42))
	require.NoError(t, err)
	assert.Equal(t, "42", text)

	text, err = EncodeJSON(rowdata.Bool(true))
	require.NoError(t, err)
	assert.Equal(t, "true", text)

	text, err = EncodeJSON(rowdata.Null())
	require.NoError(t, err)
	assert.Equal(t, "null", text)
}

func TestEncodeJSONInvalidUTF8(t *testing.T) {
	text, err := EncodeJSON(rowdata.Text("a\xffb"))
	require.NoError(t, err)
	assert.Equal(t, `"a\ufffdb"`, text)
}
