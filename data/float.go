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
package data

import (
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// Float is a nullable float64. The zero value is null. Every derived metric
// in a report is a Float so that a missing input only nullifies the values
// that depend on it.
type Float struct {
	value float64
	valid bool
}

// Null is the missing value
var Null = Float{}

// Some wraps v; NaN and infinities are stored as null
func Some(v float64) Float {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Null
	}

	return Float{value: v, valid: true}
}

// FromPtr converts a *float64 where nil means null
func FromPtr(v *float64) Float {
	if v == nil {
		return Null
	}

	return Some(*v)
}

func (f Float) IsNull() bool {
	return !f.valid
}

// Get returns the value and whether it is set
func (f Float) Get() (float64, bool) {
	return f.value, f.valid
}

// Or returns the value or def when null
func (f Float) Or(def float64) float64 {
	if !f.valid {
		return def
	}

	return f.value
}

// String formats the value for tabular output; null is the empty string
func (f Float) String() string {
	if !f.valid {
		return ""
	}

	return strconv.FormatFloat(f.value, 'f', -1, 64)
}

// MarshalCSV implements gocsv.TypeMarshaller
func (f Float) MarshalCSV() (string, error) {
	return f.String(), nil
}

func (f Float) MarshalJSON() ([]byte, error) {
	if !f.valid {
		return []byte("null"), nil
	}

	return json.Marshal(f.value)
}

func (f *Float) UnmarshalJSON(b []byte) error {
	var v *float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	*f = FromPtr(v)
	return nil
}

// Series is a per-year sequence of values; index 0 is the most recent year
// once the owning statement has been sorted.
type Series []Float

// NullSeries returns a series of n nulls
func NullSeries(n int) Series {
	return make(Series, n)
}

// Values returns the non-null values in order
func (s Series) Values() []float64 {
	values := make([]float64, 0, len(s))
	for _, v := range s {
		if val, ok := v.Get(); ok {
			values = append(values, val)
		}
	}

	return values
}

// At returns the value at idx, or null when idx is out of range
func (s Series) At(idx int) Float {
	if idx < 0 || idx >= len(s) {
		return Null
	}

	return s[idx]
}

// Latest returns the most recent value
func (s Series) Latest() Float {
	return s.At(0)
}

// Window returns s[start:end] clamped to the length of the series
func (s Series) Window(start, end int) Series {
	if start < 0 {
		start = 0
	}

	if end > len(s) {
		end = len(s)
	}

	if start >= end {
		return Series{}
	}

	return s[start:end]
}
