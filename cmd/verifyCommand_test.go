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
package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlperAcarAI/Vespro/src/datafile"
)

const exportedScript = `-- Vespro Database Data Export
-- Generated for n8n Agent Integration

SET search_path TO vespro;

-- Forms table data
INSERT INTO vespro.forms (id, name) VALUES (1, 'Al''s');

-- Cost_items table data
INSERT INTO vespro.cost_items (item_id, active, extra) VALUES (7, TRUE, '{}'::jsonb);
INSERT INTO vespro.cost_items (item_id, active, extra) VALUES (8, FALSE, '{"unit": "kg"}'::jsonb);
`

func writeExport(t *testing.T, formsRows int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "insertdata.sql")
	require.NoError(t, os.WriteFile(path, []byte(exportedScript), 0644))
	report := datafile.NewDescriptor("run-42", path, []string{"forms", "cost_items", "materials", "cost_groups"})
	report.Status = datafile.STATUS_COMPLETED
	report.GetTableEntry("forms").RowCount = formsRows
	report.GetTableEntry("forms").Written = true
	report.GetTableEntry("cost_items").RowCount = 2
	report.GetTableEntry("cost_items").Written = true
	report.GetTableEntry("materials").RowCount = 0
	report.GetTableEntry("cost_groups").RowCount = 0
	require.NoError(t, report.Save())
	return path
}

func TestVerifyExportFile(t *testing.T) {
	path := writeExport(t, 1)
	var out bytes.Buffer
	require.NoError(t, verifyExportFile(&out, path))
	assert.Contains(t, out.String(), "vespro.cost_items | 2")
	assert.Contains(t, out.String(), "4 statements parsed")
	assert.Contains(t, out.String(), "matches run run-42")
}

func TestVerifyExportFileMismatch(t *testing.T) {
	path := writeExport(t, 5)
	var out bytes.Buffer
	err := verifyExportFile(&out, path)
	assert.ErrorContains(t, err, "1 table(s) disagree")
	assert.Contains(t, out.String(), "vespro.forms: 1 INSERT statements, report says 5 rows")
}

func TestVerifyExportFileWithoutReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insertdata.sql")
	require.NoError(t, os.WriteFile(path, []byte(exportedScript), 0644))
	var out bytes.Buffer
	require.NoError(t, verifyExportFile(&out, path))
	assert.Contains(t, out.String(), "no export report found")
}

func TestVerifyExportFileSyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insertdata.sql")
	require.NoError(t, os.WriteFile(path, []byte("INSERT INTO vespro.forms (name) VALUES ('O'Brien');\n"), 0644))
	var out bytes.Buffer
	assert.Error(t, verifyExportFile(&out, path))
}

func TestPrintExportReport(t *testing.T) {
	report := datafile.NewDescriptor("run-7", "insertdata.sql", []string{"forms", "cost_items", "materials"})
	report.Status = datafile.STATUS_PARTIALLY_COMPLETED
	report.FailedStep = "query_table:materials"
	report.Error = "relation does not exist"
	report.GetTableEntry("forms").RowCount = 1200
	report.GetTableEntry("forms").Written = true
	report.GetTableEntry("cost_items").RowCount = 0
	report.GetTableEntry("cost_items").Written = true
	report.FileSize = 2048
	report.LineCount = 1210
	report.StartedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	report.FinishedAt = report.StartedAt.Add(1500 * time.Millisecond)

	var out bytes.Buffer
	printExportReport(&out, report)
	text := out.String()
	assert.Contains(t, text, "Run run-7: partially_completed")
	assert.Contains(t, text, "Failed at query_table:materials: relation does not exist")
	assert.Contains(t, text, "forms      | 1,200 | written")
	assert.Contains(t, text, "materials  | -     | not reached")
	assert.Contains(t, text, "File insertdata.sql: 2.0 kB, 1210 lines, took 1.5s")
}
