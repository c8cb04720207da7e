// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package report turns the statements of one company into a period report
// (windowed aggregates of raw fields) and a metrics report (derived ratios and
// trend coefficients).
package report

import (
	"errors"
	"fmt"

	"github.com/penny-vault/pvscreen/data"
)

var (
	ErrIncompleteReport = errors.New("report is missing declared keys")
	ErrUndeclaredKey    = errors.New("key is not declared in report schema")
)

// Report is an ordered mapping of field name to nullable value
type Report struct {
	keys   []string
	values map[string]data.Float
}

func NewReport() *Report {
	return &Report{
		values: make(map[string]data.Float),
	}
}

// Set adds key to the end of the report or replaces its value
func (rep *Report) Set(key string, value data.Float) {
	if _, ok := rep.values[key]; !ok {
		rep.keys = append(rep.keys, key)
	}

	rep.values[key] = value
}

// Get returns the value of key; unknown keys are null
func (rep *Report) Get(key string) data.Float {
	return rep.values[key]
}

func (rep *Report) Has(key string) bool {
	_, ok := rep.values[key]
	return ok
}

// Keys returns the field names in report order
func (rep *Report) Keys() []string {
	return append([]string(nil), rep.keys...)
}

func (rep *Report) Len() int {
	return len(rep.keys)
}

// Merge appends every field of other to the report
func (rep *Report) Merge(other *Report) {
	for _, key := range other.keys {
		rep.Set(key, other.values[key])
	}
}

// NullCount is the number of fields with a null value
func (rep *Report) NullCount() int {
	count := 0
	for _, key := range rep.keys {
		if rep.values[key].IsNull() {
			count++
		}
	}

	return count
}

// builder fills a report whose key set is declared up front. Keys are
// emitted in schema order regardless of the order they are set in.
type builder struct {
	name     string
	schema   []string
	declared map[string]struct{}
	values   map[string]data.Float
	err      error
}

func newBuilder(name string, schema []string) *builder {
	declared := make(map[string]struct{}, len(schema))
	for _, key := range schema {
		declared[key] = struct{}{}
	}

	return &builder{
		name:     name,
		schema:   schema,
		declared: declared,
		values:   make(map[string]data.Float, len(schema)),
	}
}

func (b *builder) set(key string, value data.Float) {
	if _, ok := b.declared[key]; !ok {
		if b.err == nil {
			b.err = fmt.Errorf("%w: %s in %s", ErrUndeclaredKey, key, b.name)
		}
		return
	}

	b.values[key] = value
}

func (b *builder) build() (*Report, error) {
	if b.err != nil {
		return nil, b.err
	}

	rep := NewReport()
	for _, key := range b.schema {
		value, ok := b.values[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s not set in %s", ErrIncompleteReport, key, b.name)
		}
		rep.Set(key, value)
	}

	return rep, nil
}
