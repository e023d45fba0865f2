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
	"github.com/AlperAcarAI/Vespro/src/utils"
)

const (
	SCHEMA = "vespro"

	FILE_DATA_COLUMN = "file_data"
)

// TableSpec is the hardcoded export recipe for one table. Column sets are not
// discovered from the database: a column renamed at the source silently loses
// its jsonb treatment here.
type TableSpec struct {
	Name    string
	Title   string
	OrderBy string
	// Always written as jsonb, '{}'::jsonb when empty.
	StructuredColumns []string
	// TRUE/FALSE keywords for booleans. Other tables quote them as text.
	BooleanLiterals bool
	// Write the section header even when the table is empty.
	AlwaysEmitSection bool
	// Columns written as NULL whatever they hold.
	NullColumns []string
}

func newTableSpec(name string) TableSpec {
	return TableSpec{Name: name, Title: utils.CapitalizeFirst(name)}
}

// Tables returns the export order. With excludeFileData the forms payload
// column is blanked, keeping the INSERT shape unchanged.
func Tables(excludeFileData bool) []TableSpec {
	forms := newTableSpec("forms")
	forms.OrderBy = "created_at"
	forms.StructuredColumns = []string{"calculated_values", "metadata", "extra"}
	forms.AlwaysEmitSection = true
	if excludeFileData {
		forms.NullColumns = []string{FILE_DATA_COLUMN}
	}

	costItems := newTableSpec("cost_items")
	costItems.OrderBy = "item_id"
	costItems.StructuredColumns = []string{"extra"}
	costItems.BooleanLiterals = true
	costItems.AlwaysEmitSection = true

	return []TableSpec{
		forms,
		costItems,
		newTableSpec("materials"),
		newTableSpec("cost_groups"),
	}
}

func TableNames(specs []TableSpec) []string {
	names := make([]string, len(specs))
	for i, spec := range specs {
		names[i] = spec.Name
	}
	return names
}
