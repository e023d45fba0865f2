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
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlperAcarAI/Vespro/src/utils"
)

func TestTableEntryAndDescriptorStructures(t *testing.T) {
	expectedTableEntry := struct {
		TableName string `json:"TableName"`
		RowCount  int64  `json:"RowCount"`
		Written   bool   `json:"Written"`
	}{}

	expectedDescriptor := struct {
		RunID      string        `json:"RunID"`
		Status     string        `json:"Status"`
		FilePath   string        `json:"FilePath"`
		FileSize   int64         `json:"FileSize"`
		LineCount  int64         `json:"LineCount"`
		StartedAt  time.Time     `json:"StartedAt"`
		FinishedAt time.Time     `json:"FinishedAt"`
		FailedStep string        `json:"FailedStep,omitempty"`
		Error      string        `json:"Error,omitempty"`
		TableList  []*TableEntry `json:"TableList"`
	}{}

	t.Run("Check TableEntry structure", func(t *testing.T) {
		utils.CompareStructAndReport(t, reflect.TypeOf(TableEntry{}), reflect.TypeOf(expectedTableEntry), "TableEntry")
	})

	t.Run("Check Descriptor structure", func(t *testing.T) {
		utils.CompareStructAndReport(t, reflect.TypeOf(Descriptor{}), reflect.TypeOf(expectedDescriptor), "Descriptor")
	})
}

func TestDescriptorSaveAndOpen(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "insertdata.sql")
	d := NewDescriptor("run-1", outputFile, []string{"forms", "cost_items", "materials"})
	d.Status = STATUS_COMPLETED
	d.FileSize = 1234
	d.LineCount = 9
	d.StartedAt = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	d.FinishedAt = d.StartedAt.Add(2 * time.Second)
	d.GetTableEntry("forms").RowCount = 2
	d.GetTableEntry("forms").Written = true
	d.GetTableEntry("cost_items").RowCount = 0
	d.GetTableEntry("cost_items").Written = true
	d.GetTableEntry("materials").RowCount = 0

	require.NoError(t, d.Save())
	assert.True(t, utils.FileOrFolderExists(outputFile+".report.json"))

	loaded, err := OpenDescriptor(outputFile)
	require.NoError(t, err)
	assert.Equal(t, d, loaded)
	assert.Equal(t, 2, loaded.TablesWritten())
	assert.Equal(t, int64(2), loaded.TotalRows())
	assert.Nil(t, loaded.GetTableEntry("cost_groups"))
}

func TestNewDescriptorMarksTablesUnqueried(t *testing.T) {
	d := NewDescriptor("run-2", "out.sql", []string{"forms"})
	entry := d.GetTableEntry("forms")
	require.NotNil(t, entry)
	assert.Equal(t, int64(-1), entry.RowCount)
	assert.False(t, entry.Written)
	assert.Equal(t, int64(0), d.TotalRows())
}

func TestOpenDescriptorMissing(t *testing.T) {
	_, err := OpenDescriptor(filepath.Join(t.TempDir(), "nothing.sql"))
	assert.Error(t, err)
}
