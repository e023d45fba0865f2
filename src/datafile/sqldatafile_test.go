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
package datafile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSqlDataFileLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insertdata.sql")
	df, err := CreateSqlDataFile(path)
	require.NoError(t, err)

	require.NoError(t, df.WriteHeader("vespro"))
	require.NoError(t, df.WriteSection("Forms"))
	require.NoError(t, df.WriteInsert("vespro.forms", []string{"id", "name"}, []string{"1", "'a'"}))
	require.NoError(t, df.WriteSection("Cost_items"))
	require.NoError(t, df.Close())

	expected := "-- Vespro Database Data Export\n" +
		"-- Generated for n8n Agent Integration\n" +
		"\n" +
		"SET search_path TO vespro;\n" +
		"\n" +
		"-- Forms table data\n" +
		"INSERT INTO vespro.forms (id, name) VALUES (1, 'a');\n" +
		"\n" +
		"-- Cost_items table data\n"
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, expected, string(content))
	assert.Equal(t, int64(len(expected)), df.BytesWritten())
	assert.Equal(t, int64(9), df.LinesWritten())
	assert.Equal(t, 2, df.SectionsWritten())
}

func TestSqlDataFileTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insertdata.sql")
	require.NoError(t, os.WriteFile(path, []byte("stale content from an earlier run\n"), 0644))

	df, err := CreateSqlDataFile(path)
	require.NoError(t, err)
	require.NoError(t, df.WriteHeader("vespro"))
	require.NoError(t, df.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Header("vespro"), string(content))
}

func TestSqlDataFileCloseTwice(t *testing.T) {
	df, err := CreateSqlDataFile(filepath.Join(t.TempDir(), "x.sql"))
	require.NoError(t, err)
	require.NoError(t, df.Close())
	assert.NoError(t, df.Close())
	assert.Error(t, df.WriteHeader("vespro"))
}

func TestSqlDataFileInsertShapeMismatch(t *testing.T) {
	df, err := CreateSqlDataFile(filepath.Join(t.TempDir(), "x.sql"))
	require.NoError(t, err)
	defer df.Close()
	err = df.WriteInsert("vespro.forms", []string{"a", "b"}, []string{"1"})
	assert.ErrorContains(t, err, "2 columns but 1 values")
	assert.Equal(t, int64(0), df.BytesWritten())
}

func TestCreateSqlDataFileInMissingDir(t *testing.T) {
	_, err := CreateSqlDataFile(filepath.Join(t.TempDir(), "missing", "x.sql"))
	assert.Error(t, err)
}
