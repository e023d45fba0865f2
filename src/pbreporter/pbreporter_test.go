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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisablePBReporter(t *testing.T) {
	pbr := newDisablePBReporter()
	pbr.SetTotalRowCount(3, false)
	pbr.SetExportedRowCount(2)
	assert.False(t, pbr.IsComplete())

	pbr.SetExportedRowCount(-1)
	assert.Equal(t, int64(2), pbr.CurrentRows)

	pbr.SetTotalRowCount(-1, true)
	assert.True(t, pbr.IsComplete())
	assert.Equal(t, int64(2), pbr.TotalRows)
	assert.Equal(t, int64(2), pbr.CurrentRows)
}

func TestDisablePBReporterCompletesOnCount(t *testing.T) {
	pbr := newDisablePBReporter()
	pbr.SetTotalRowCount(2, true)
	assert.True(t, pbr.IsComplete())
	pbr.SetExportedRowCount(5)
	assert.Equal(t, int64(2), pbr.CurrentRows)
}

func TestDisabledContainer(t *testing.T) {
	c := NewContainer(io.Discard, true)
	pbr := c.NewTableReporter("forms")
	_, ok := pbr.(*DisablePBReporter)
	require.True(t, ok)
	c.Wait()
}

func TestEnabledContainer(t *testing.T) {
	c := NewContainer(io.Discard, false)
	pbr := c.NewTableReporter("cost_items")
	_, ok := pbr.(*EnablePBReporter)
	require.True(t, ok)

	pbr.SetTotalRowCount(2, false)
	pbr.SetExportedRowCount(2)
	pbr.SetTotalRowCount(-1, true)
	c.Wait()
	assert.True(t, pbr.IsComplete())
}
