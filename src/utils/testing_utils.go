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
package utils

import (
	"reflect"
	"testing"
)

// CompareStructAndReport fails t when the field layout (names, types, json
// tags, order) of actual differs from expected. Used to pin on-disk formats.
func CompareStructAndReport(t *testing.T, actual, expected reflect.Type, structName string) {
	t.Helper()
	if actual.Kind() != reflect.Struct || expected.Kind() != reflect.Struct {
		t.Fatalf("%s: both types must be structs", structName)
	}
	if actual.NumField() != expected.NumField() {
		t.Errorf("%s: got %d fields, expected %d. The on-disk format changed", structName, actual.NumField(), expected.NumField())
	}
	for i := 0; i < max(actual.NumField(), expected.NumField()); i++ {
		switch {
		case i >= actual.NumField():
			f := expected.Field(i)
			t.Errorf("%s: missing field %s of type %s", structName, f.Name, f.Type)
		case i >= expected.NumField():
			f := actual.Field(i)
			t.Errorf("%s: unexpected field %s of type %s", structName, f.Name, f.Type)
		default:
			got, want := actual.Field(i), expected.Field(i)
			if got.Name != want.Name {
				t.Errorf("%s: field %d is %s, expected %s", structName, i, got.Name, want.Name)
			}
			if got.Type != want.Type {
				t.Errorf("%s: field %s has type %s, expected %s", structName, got.Name, got.Type, want.Type)
			}
			if got.Tag != want.Tag {
				t.Errorf("%s: field %s has tag %q, expected %q", structName, got.Name, got.Tag, want.Tag)
			}
		}
	}
}
