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
package calc

import (
	"fmt"
	"math"

	"github.com/penny-vault/pvscreen/data"
	"gonum.org/v1/gonum/stat"
)

// Window is a half-open range [Start, End) of year offsets counted back from
// the most recent year.
type Window struct {
	Start int
	End   int
}

var (
	Recent = Window{0, 4}
	Prior  = Window{5, 9}
	Oldest = Window{10, 14}
)

func (w Window) String() string {
	return fmt.Sprintf("%d_%d", w.Start, w.End)
}

// Reducer turns the non-null values of a window into a single statistic
type Reducer struct {
	Name   string
	Reduce func(values []float64) data.Float
}

var (
	Average = Reducer{Name: "average", Reduce: func(values []float64) data.Float { return data.Some(Mean(values)) }}
	Std     = Reducer{Name: "std", Reduce: func(values []float64) data.Float { return data.Some(StdDev(values)) }}
	CV      = Reducer{Name: "coef_var", Reduce: coefVar}
)

// FieldName is the report key of an aggregate, e.g. average_revenue_prev_0_4_y
func FieldName(reducer Reducer, field string, window Window) string {
	return fmt.Sprintf("%s_%s_prev_%d_%d_y", reducer.Name, field, window.Start, window.End)
}

// Aggregate applies reducer to series[window.Start:window.End] with nulls
// removed. An empty or all-null window is null.
func Aggregate(series data.Series, window Window, reducer Reducer) data.Float {
	values := series.Window(window.Start, window.End).Values()
	if len(values) == 0 {
		return data.Null
	}

	return reducer.Reduce(values)
}

// CoefVar is the population standard deviation over the mean of the non-null
// values. It is null when there are no values or the mean is exactly zero.
func CoefVar(series data.Series) data.Float {
	values := series.Values()
	if len(values) == 0 {
		return data.Null
	}

	return coefVar(values)
}

func coefVar(values []float64) data.Float {
	avg := Mean(values)
	if avg == 0 {
		return data.Null
	}

	return data.Some(StdDev(values) / avg)
}

// Mean of values; NaN when empty
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	return stat.Mean(values, nil)
}

// StdDev is the population standard deviation of values; NaN when empty
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	_, std := stat.PopMeanStdDev(values, nil)
	return std
}
