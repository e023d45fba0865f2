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
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"

	"github.com/AlperAcarAI/Vespro/src/utils/jsonfile"
)

const (
	REPORT_FILE_SUFFIX = ".report.json"

	STATUS_COMPLETED           = "completed"
	STATUS_PARTIALLY_COMPLETED = "partially_completed"
	STATUS_FAILED              = "failed"
)

type TableEntry struct {
	TableName string `json:"TableName"`
	// -1 until the table has been queried.
	RowCount int64 `json:"RowCount"`
	// False when the table was empty and its section was left out.
	Written bool `json:"Written"`
}

// Descriptor records the outcome of one export run. It is saved next to the
// output file so `verify` can cross-check the statements it finds.
type Descriptor struct {
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
}

func ReportPath(outputFile string) string {
	return outputFile + REPORT_FILE_SUFFIX
}

func NewDescriptor(runID string, filePath string, tableNames []string) *Descriptor {
	d := &Descriptor{
		RunID:    runID,
		FilePath: filePath,
	}
	for _, name := range tableNames {
		d.TableList = append(d.TableList, &TableEntry{TableName: name, RowCount: -1})
	}
	return d
}

func OpenDescriptor(outputFile string) (*Descriptor, error) {
	reportPath := ReportPath(outputFile)
	log.Infof("loading export report from %q", reportPath)
	d, err := jsonfile.NewJsonFile[Descriptor](reportPath).Read()
	if err != nil {
		return nil, fmt.Errorf("load export report: %w", err)
	}
	log.Debugf("parsed export report: %v", spew.Sdump(d))
	return d, nil
}

func (d *Descriptor) Save() error {
	reportPath := ReportPath(d.FilePath)
	log.Infof("storing export report at %q", reportPath)
	err := jsonfile.NewJsonFile[Descriptor](reportPath).Save(d)
	if err != nil {
		return fmt.Errorf("save export report: %w", err)
	}
	return nil
}

func (d *Descriptor) GetTableEntry(tableName string) *TableEntry {
	for _, entry := range d.TableList {
		if entry.TableName == tableName {
			return entry
		}
	}
	return nil
}

// TablesWritten counts tables whose section made it into the file.
func (d *Descriptor) TablesWritten() int {
	n := 0
	for _, entry := range d.TableList {
		if entry.Written {
			n++
		}
	}
	return n
}

func (d *Descriptor) TotalRows() int64 {
	var total int64
	for _, entry := range d.TableList {
		if entry.RowCount > 0 {
			total += entry.RowCount
		}
	}
	return total
}
