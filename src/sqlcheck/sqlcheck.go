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
package sqlcheck

import (
	"fmt"
	"os"
	"sort"

	pg_query "github.com/pganalyze/pg_query_go/v5"
	log "github.com/sirupsen/logrus"

	"github.com/AlperAcarAI/Vespro/src/datafile"
)

// Summary describes a parsed INSERT script.
type Summary struct {
	Statements int
	// INSERT statements per relation, keyed "schema.table" (or "table").
	InsertCounts map[string]int64
}

func CheckFile(path string) (*Summary, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	summary, err := Check(string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Infof("parsed %q: %d statements", path, summary.Statements)
	return summary, nil
}

// Check parses sql with the postgres parser and counts INSERTs per target.
func Check(sql string) (*Summary, error) {
	tree, err := pg_query.Parse(sql)
	if err != nil {
		return nil, fmt.Errorf("parse sql: %w", err)
	}
	summary := &Summary{InsertCounts: map[string]int64{}}
	for _, raw := range tree.Stmts {
		summary.Statements++
		insert := raw.GetStmt().GetInsertStmt()
		if insert == nil {
			continue
		}
		summary.InsertCounts[relationName(insert.GetRelation())]++
	}
	return summary, nil
}

func relationName(rv *pg_query.RangeVar) string {
	if rv.GetSchemaname() == "" {
		return rv.GetRelname()
	}
	return rv.GetSchemaname() + "." + rv.GetRelname()
}

func (s *Summary) Relations() []string {
	names := make([]string, 0, len(s.InsertCounts))
	for name := range s.InsertCounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CompareWithReport lists every table whose statement count disagrees with
// the row count recorded by the export run.
func (s *Summary) CompareWithReport(report *datafile.Descriptor, schema string) []string {
	var mismatches []string
	seen := map[string]bool{}
	for _, entry := range report.TableList {
		name := schema + "." + entry.TableName
		seen[name] = true
		expected := entry.RowCount
		if !entry.Written || expected < 0 {
			expected = 0
		}
		if got := s.InsertCounts[name]; got != expected {
			mismatches = append(mismatches, fmt.Sprintf("%s: %d INSERT statements, report says %d rows", name, got, expected))
		}
	}
	for _, name := range s.Relations() {
		if !seen[name] {
			mismatches = append(mismatches, fmt.Sprintf("%s: %d INSERT statements for a table the report does not list", name, s.InsertCounts[name]))
		}
	}
	return mismatches
}
