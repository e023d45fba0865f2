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
package pbreporter

import (
	"io"

	"github.com/vbauerster/mpb/v8"
)

type ExportProgressReporter interface { // Bare minimum of mpb.Bar the exporter drives per table
	SetTotalRowCount(totalRowCount int64, triggerComplete bool)
	SetExportedRowCount(exportedRowCount int64)
	IsComplete() bool
}

func NewExportPB(progressContainer *mpb.Progress, tableName string, disablePb bool) ExportProgressReporter {
	if disablePb || progressContainer == nil {
		return newDisablePBReporter()
	} else {
		return newEnablePBReporter(progressContainer, tableName)
	}
}

// Container owns the bars of one export run.
type Container struct {
	progress  *mpb.Progress
	disablePb bool
}

// NewContainer renders bars on out. With disablePb set nothing is drawn and
// the reporters only keep counts.
func NewContainer(out io.Writer, disablePb bool) *Container {
	c := &Container{disablePb: disablePb}
	if !disablePb {
		c.progress = mpb.New(mpb.WithOutput(out), mpb.WithWidth(60))
	}
	return c
}

func (c *Container) NewTableReporter(tableName string) ExportProgressReporter {
	return NewExportPB(c.progress, tableName, c.disablePb)
}

// Wait blocks until every bar has completed and been rendered.
func (c *Container) Wait() {
	if c.progress != nil {
		c.progress.Wait()
	}
}
