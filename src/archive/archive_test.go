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
package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	testCases := []struct {
		uri       string
		bucketURL string
		prefix    string
	}{
		{"s3://backups", "s3://backups", ""},
		{"s3://backups/vespro/daily/?region=eu-central-1", "s3://backups?region=eu-central-1", "vespro/daily/"},
		{"gs://exports/vespro", "gs://exports", "vespro/"},
		{"azblob://container/n8n", "azblob://container", "n8n/"},
		{"file:///var/backups/vespro", "file:///var/backups/vespro", ""},
	}
	for _, tc := range testCases {
		loc, err := ParseLocation(tc.uri)
		require.NoError(t, err, tc.uri)
		assert.Equal(t, tc.bucketURL, loc.BucketURL, tc.uri)
		assert.Equal(t, tc.prefix, loc.Prefix, tc.uri)
	}
	assert.Equal(t, "vespro/insertdata.sql", (&Location{Prefix: "vespro/"}).Key("/tmp/out/insertdata.sql"))
}

func TestParseLocationErrors(t *testing.T) {
	for _, uri := range []string{"backups/vespro", "ftp://host/dir", "s3:///no-bucket", "://bad"} {
		_, err := ParseLocation(uri)
		assert.Error(t, err, uri)
	}
}

func TestUploadToFileBucket(t *testing.T) {
	srcDir := t.TempDir()
	localPath := filepath.Join(srcDir, "insertdata.sql")
	content := []byte("SET search_path TO vespro;\n")
	require.NoError(t, os.WriteFile(localPath, content, 0644))

	archiveDir := t.TempDir()
	key, err := Upload(context.Background(), "file://"+archiveDir, localPath)
	require.NoError(t, err)
	assert.Equal(t, "insertdata.sql", key)

	archived, err := os.ReadFile(filepath.Join(archiveDir, "insertdata.sql"))
	require.NoError(t, err)
	assert.Equal(t, content, archived)
}

func TestUploadMissingFile(t *testing.T) {
	_, err := Upload(context.Background(), "file://"+t.TempDir(), filepath.Join(t.TempDir(), "nope.sql"))
	assert.Error(t, err)
}
