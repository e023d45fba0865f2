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
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JsonFile persists a single JSON document of type T.
type JsonFile[T any] struct {
	sync.Mutex
	FilePath string
}

func NewJsonFile[T any](filePath string) *JsonFile[T] {
	return &JsonFile[T]{FilePath: filePath}
}

// Save replaces the file contents with obj. The document is written to a
// sibling temp file first so readers never observe a half-written file.
func (j *JsonFile[T]) Save(obj *T) error {
	j.Lock()
	defer j.Unlock()
	bs, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(j.FilePath), filepath.Base(j.FilePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", j.FilePath, err)
	}
	defer os.Remove(tmp.Name())
	_, err = tmp.Write(append(bs, '\n'))
	if err != nil {
		tmp.Close()
		return fmt.Errorf("write file %s: %w", tmp.Name(), err)
	}
	err = tmp.Close()
	if err != nil {
		return fmt.Errorf("close file %s: %w", tmp.Name(), err)
	}
	err = os.Chmod(tmp.Name(), 0644)
	if err != nil {
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	err = os.Rename(tmp.Name(), j.FilePath)
	if err != nil {
		return fmt.Errorf("rename %s to %s: %w", tmp.Name(), j.FilePath, err)
	}
	return nil
}

func (j *JsonFile[T]) Read() (*T, error) {
	j.Lock()
	defer j.Unlock()
	bs, err := os.ReadFile(j.FilePath)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", j.FilePath, err)
	}
	if len(bs) == 0 {
		return nil, fmt.Errorf("file %s is empty", j.FilePath)
	}
	obj := new(T)
	err = json.Unmarshal(bs, obj)
	if err != nil {
		return nil, fmt.Errorf("unmarshal json: %w", err)
	}
	return obj, nil
}
