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

const (
	// TrendYears is the number of years used for every trend coefficient
	TrendYears = 5

	// StrongTrend is the absolute correlation treated as a strong trend
	// (r squared of roughly 0.5)
	StrongTrend = 0.71
)

// TrendName is the report key of a trend coefficient, e.g. corr_coef_revenue_last_5y
func TrendName(field string) string {
	return fmt.Sprintf("corr_coef_%s_last_%dy", field, TrendYears)
}

// Trend returns the Pearson correlation between the n most recent non-null
// values of series, in chronological order, and the index 0..n-1. It is null
// when fewer than n values are present or the values are constant.
func Trend(series data.Series, n int) data.Float {
	values := series.Values()
	if n < 2 || len(values) < n {
		return data.Null
	}

	chronological := make([]float64, n)
	for ii := 0; ii < n; ii++ {
		chronological[ii] = values[n-1-ii]
	}

	return pearson(chronological)
}

// pearson correlates y with its index; null when y is constant
func pearson(y []float64) data.Float {
	x := make([]float64, len(y))
	for ii := range x {
		x[ii] = float64(ii)
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return data.Null
	}

	return data.Some(r)
}
