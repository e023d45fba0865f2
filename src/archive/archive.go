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
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
)

const SQL_CONTENT_TYPE = "application/sql"

// Location is an archive destination such as s3://bucket/exports or
// file:///var/backups. Bucket options (region, credentials profile) stay in
// the query string.
type Location struct {
	BucketURL string
	Prefix    string
}

func ParseLocation(uri string) (*Location, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse archive uri %q: %w", uri, err)
	}
	switch u.Scheme {
	case "s3", "gs", "azblob":
		if u.Host == "" {
			return nil, fmt.Errorf("archive uri %q has no bucket", uri)
		}
		prefix := strings.Trim(u.Path, "/")
		if prefix != "" {
			prefix += "/"
		}
		bucketURL := *u
		bucketURL.Path = ""
		bucketURL.RawPath = ""
		return &Location{BucketURL: bucketURL.String(), Prefix: prefix}, nil
	case "file":
		// the whole path is the bucket root
		return &Location{BucketURL: uri}, nil
	case "":
		return nil, fmt.Errorf("archive uri %q has no scheme", uri)
	default:
		return nil, fmt.Errorf("unsupported archive scheme %q", u.Scheme)
	}
}

// Key is the object key a local file is stored under.
func (l *Location) Key(localPath string) string {
	return l.Prefix + filepath.Base(localPath)
}

// Upload copies localPath into the archive and returns the object key.
func Upload(ctx context.Context, uri string, localPath string) (string, error) {
	loc, err := ParseLocation(uri)
	if err != nil {
		return "", err
	}
	bucket, err := blob.OpenBucket(ctx, loc.BucketURL)
	if err != nil {
		return "", fmt.Errorf("open bucket %q: %w", loc.BucketURL, err)
	}
	defer bucket.Close()

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %q: %w", localPath, err)
	}
	defer file.Close()

	key := loc.Key(localPath)
	w, err := bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: SQL_CONTENT_TYPE})
	if err != nil {
		return "", fmt.Errorf("create object %q: %w", key, err)
	}
	n, err := io.Copy(w, file)
	if err != nil {
		w.Close()
		return "", fmt.Errorf("upload %q to %q: %w", localPath, key, err)
	}
	// Close commits the object.
	err = w.Close()
	if err != nil {
		return "", fmt.Errorf("upload %q to %q: %w", localPath, key, err)
	}
	log.Infof("archived %q (%d bytes) to %s as %q", localPath, n, loc.BucketURL, key)
	return key, nil
}
