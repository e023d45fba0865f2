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
package rowdata

// Field is one named column of a Row.
type Field struct {
	Name  string
	Value Value
}

// Row keeps its fields in the order the driver reported the columns.
type Row []Field

func (r Row) ColumnNames() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

func (r Row) Get(name string) (Value, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Null(), false
}

// Set replaces the value of an existing column. It reports false when the row
// has no such column.
func (r Row) Set(name string, v Value) bool {
	for i := range r {
		if r[i].Name == name {
			r[i].Value = v
			return true
		}
	}
	return false
}
