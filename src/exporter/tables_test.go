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
package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTables(t *testing.T) {
	tables := Tables(false)
	assert.Equal(t, []string{"Forms", "Cost_items", "Materials", "Cost_groups"},
		[]string{tables[0].Title, tables[1].Title, tables[2].Title, tables[3].Title})

	forms, costItems := tables[0], tables[1]
	assert.Equal(t, "created_at", forms.OrderBy)
	assert.Equal(t, []string{"calculated_values", "metadata", "extra"}, forms.StructuredColumns)
	assert.False(t, forms.BooleanLiterals)
	assert.Empty(t, forms.NullColumns)
	assert.Equal(t, "item_id", costItems.OrderBy)
	assert.Equal(t, []string{"extra"}, costItems.StructuredColumns)
	assert.True(t, costItems.BooleanLiterals)

	for _, spec := range tables[2:] {
		assert.Empty(t, spec.OrderBy, spec.Name)
		assert.Empty(t, spec.StructuredColumns, spec.Name)
		assert.False(t, spec.AlwaysEmitSection, spec.Name)
	}
}

func TestTablesExcludeFileData(t *testing.T) {
	tables := Tables(true)
	assert.Equal(t, []string{FILE_DATA_COLUMN}, tables[0].NullColumns)
	for _, spec := range tables[1:] {
		assert.Empty(t, spec.NullColumns, spec.Name)
	}
}
