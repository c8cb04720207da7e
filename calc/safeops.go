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

// Package calc holds the null-propagating arithmetic used to derive report
// metrics: safe division and subtraction, windowed aggregates and trend
// coefficients.
package calc

import (
	"github.com/penny-vault/pvscreen/data"
)

// Div returns a / b. The result is null if either operand is null, if b is
// zero, or if both operands are negative: a ratio of two negative amounts
// (e.g. negative equity over a net loss) is positive but meaningless.
func Div(a, b data.Float) data.Float {
	aa, aOk := a.Get()
	bb, bOk := b.Get()
	if !aOk || !bOk || bb == 0 || (aa < 0 && bb < 0) {
		return data.Null
	}

	return data.Some(aa / bb)
}

func Sub(a, b data.Float) data.Float {
	aa, aOk := a.Get()
	bb, bOk := b.Get()
	if !aOk || !bOk {
		return data.Null
	}

	return data.Some(aa - bb)
}

func Add(a, b data.Float) data.Float {
	aa, aOk := a.Get()
	bb, bOk := b.Get()
	if !aOk || !bOk {
		return data.Null
	}

	return data.Some(aa + bb)
}

func Mul(a, b data.Float) data.Float {
	aa, aOk := a.Get()
	bb, bOk := b.Get()
	if !aOk || !bOk {
		return data.Null
	}

	return data.Some(aa * bb)
}

func ReverseSign(a data.Float) data.Float {
	if aa, ok := a.Get(); ok {
		return data.Some(-aa)
	}

	return data.Null
}

// ChangeRate returns (a - b) / b
func ChangeRate(a, b data.Float) data.Float {
	aa, aOk := a.Get()
	bb, bOk := b.Get()
	if !aOk || !bOk || bb == 0 {
		return data.Null
	}

	return data.Some((aa - bb) / bb)
}

// LessThan is true only when both values are present and a < b. Filters use
// it so that missing data never counts as a violation.
func LessThan(a, b data.Float) bool {
	aa, aOk := a.Get()
	bb, bOk := b.Get()
	return aOk && bOk && aa < bb
}

func LessThanOrEqual(a, b data.Float) bool {
	aa, aOk := a.Get()
	bb, bOk := b.Get()
	return aOk && bOk && aa <= bb
}

// DivSeries divides two series year by year
func DivSeries(a, b data.Series) data.Series {
	return zip(a, b, Div)
}

// SubSeries subtracts two series year by year
func SubSeries(a, b data.Series) data.Series {
	return zip(a, b, Sub)
}

func zip(a, b data.Series, op func(data.Float, data.Float) data.Float) data.Series {
	n := max(len(a), len(b))
	out := make(data.Series, n)
	for ii := 0; ii < n; ii++ {
		out[ii] = op(a.At(ii), b.At(ii))
	}

	return out
}
