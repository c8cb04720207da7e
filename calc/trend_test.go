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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvscreen/calc"
	"github.com/penny-vault/pvscreen/data"
)

var _ = Describe("Trend", func() {
	It("names trend keys", func() {
		Expect(calc.TrendName("revenue")).To(Equal("corr_coef_revenue_last_5y"))
	})

	It("is +1 for linear growth", func() {
		// latest first
		Expect(calc.Trend(series(5, 4, 3, 2, 1), 5).Or(0)).To(BeNumerically("~", 1.0, 1e-12))
	})

	It("is -1 for a linear decline", func() {
		Expect(calc.Trend(series(0.0, 0.5, 1.0, 1.5, 2.0), 5).Or(0)).To(BeNumerically("~", -1.0, 1e-12))
	})

	It("is the Pearson coefficient of a noisy series", func() {
		// chronological 1, 2, 3, 5, 4
		Expect(calc.Trend(series(4, 5, 3, 2, 1), 5).Or(0)).To(BeNumerically("~", 0.9, 1e-12))
	})

	It("only uses the n most recent values", func() {
		s := series(5, 4, 3, 2, 1, 100, -100, 50)
		Expect(calc.Trend(s, 5).Or(0)).To(BeNumerically("~", 1.0, 1e-12))
	})

	It("skips nulls before taking the most recent values", func() {
		s := data.Series{data.Some(5), data.Null, data.Some(4), data.Some(3), data.Some(2), data.Some(1)}
		Expect(calc.Trend(s, 5).Or(0)).To(BeNumerically("~", 1.0, 1e-12))
	})

	It("is null with fewer than n values", func() {
		s := data.Series{data.Some(5), data.Null, data.Some(4), data.Some(3), data.Some(2)}
		Expect(calc.Trend(s, 5).IsNull()).To(BeTrue())
	})

	It("is null for a constant series", func() {
		Expect(calc.Trend(series(2, 2, 2, 2, 2), 5).IsNull()).To(BeTrue())
	})
})
