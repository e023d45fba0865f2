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
package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tableCount struct {
	Name     string `json:"name"`
	RowCount int64  `json:"row_count"`
}

func TestJsonFile(t *testing.T) {
	jf := NewJsonFile[tableCount](filepath.Join(t.TempDir(), "counts.json"))

	counts, err := jf.Read()
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, counts)

	err = jf.Save(&tableCount{Name: "forms", RowCount: 3})
	require.NoError(t, err)
	counts, err = jf.Read()
	require.NoError(t, err)
	assert.Equal(t, "forms", counts.Name)
	assert.Equal(t, int64(3), counts.RowCount)

	err = jf.Save(&tableCount{Name: "cost_items", RowCount: 7})
	require.NoError(t, err)
	counts, err = jf.Read()
	require.NoError(t, err)
	assert.Equal(t, "cost_items", counts.Name)
	assert.Equal(t, int64(7), counts.RowCount)

	entries, err := os.ReadDir(filepath.Dir(jf.FilePath))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestJsonFileReadEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := NewJsonFile[tableCount](path).Read()
	assert.ErrorContains(t, err, "is empty")
}
