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
	"context"

	"github.com/AlperAcarAI/Vespro/src/rowdata"
)

const (
	DEFAULT_SCHEMA = "vespro"
)

// SourceDB is what the exporter needs from the source database.
type SourceDB interface {
	Connect(ctx context.Context) error
	Close() error
	GetVersion(ctx context.Context) (string, error)
	CheckServerVersion(ctx context.Context) (string, error)
	QueryAll(ctx context.Context, tableName string, orderBy string) ([]rowdata.Row, error)
}

type Source struct {
	Uri    string `json:"uri"`
	Schema string `json:"schema"`
	// Rows fetched per query when a table has an order column. 0 reads the
	// whole table with one statement.
	BatchSize int    `json:"batch_size"`
	DBVersion string `json:"db_version"`

	sourceDB SourceDB `json:"-"`
}

func (s *Source) Clone() *Source {
	newS := *s
	newS.sourceDB = nil
	return &newS
}

func (s *Source) GetSchema() string {
	if s.Schema == "" {
		return DEFAULT_SCHEMA
	}
	return s.Schema
}

func (s *Source) DB() SourceDB {
	if s.sourceDB == nil {
		s.sourceDB = newPostgreSQL(s)
	}
	return s.sourceDB
}

// Open connects to the source described by s and returns the live handle.
func Open(ctx context.Context, s *Source) (SourceDB, error) {
	db := s.DB()
	err := db.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return db, nil
}
