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
package calc_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvscreen/calc"
	"github.com/penny-vault/pvscreen/data"
)

func series(values ...float64) data.Series {
	out := make(data.Series, len(values))
	for ii, v := range values {
		out[ii] = data.Some(v)
	}
	return out
}

var _ = Describe("Aggregate", func() {
	It("names keys by reducer, field and window", func() {
		Expect(calc.FieldName(calc.Average, "revenue", calc.Recent)).To(Equal("average_revenue_prev_0_4_y"))
		Expect(calc.FieldName(calc.Std, "eps", calc.Oldest)).To(Equal("std_eps_prev_10_14_y"))
		Expect(calc.FieldName(calc.CV, "net_cash_flow", calc.Prior)).To(Equal("coef_var_net_cash_flow_prev_5_9_y"))
	})

	It("reduces the half-open window", func() {
		s := series(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
		Expect(calc.Aggregate(s, calc.Recent, calc.Average)).To(Equal(data.Some(2.5)))
		Expect(calc.Aggregate(s, calc.Prior, calc.Average)).To(Equal(data.Some(7.5)))
	})

	It("is null when the window holds only nulls", func() {
		Expect(calc.Aggregate(data.NullSeries(12), calc.Recent, calc.Average).IsNull()).To(BeTrue())
		Expect(calc.Aggregate(data.NullSeries(12), calc.Recent, calc.Std).IsNull()).To(BeTrue())
	})

	It("is null when the window is past the end of the series", func() {
		Expect(calc.Aggregate(series(1, 2, 3), calc.Oldest, calc.Average).IsNull()).To(BeTrue())
	})

	It("skips nulls inside the window", func() {
		s := data.Series{data.Some(10), data.Null, data.Some(20), data.Null}
		Expect(calc.Aggregate(s, calc.Recent, calc.Average)).To(Equal(data.Some(15)))
		Expect(calc.Aggregate(s, calc.Recent, calc.Std)).To(Equal(data.Some(5)))
	})

	It("returns the same result when applied twice", func() {
		s := series(3, 1, 4, 1, 5, 9, 2, 6)
		first := calc.Aggregate(s, calc.Recent, calc.CV)
		second := calc.Aggregate(s, calc.Recent, calc.CV)
		Expect(first).To(Equal(second))
	})

	It("computes the population standard deviation", func() {
		Expect(calc.StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})).To(Equal(2.0))
		Expect(calc.StdDev([]float64{7})).To(Equal(0.0))
		Expect(calc.StdDev([]float64{1, 2})).To(BeNumerically("~", 0.5, 1e-12))
		Expect(math.IsNaN(calc.Mean(nil))).To(BeTrue())
		Expect(math.IsNaN(calc.StdDev(nil))).To(BeTrue())
	})
})
