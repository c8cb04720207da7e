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

var _ = Describe("Safe operations", func() {
	DescribeTable("Div is null only for null operands, a zero divisor or two negatives",
		func(a, b data.Float, expected data.Float) {
			Expect(calc.Div(a, b)).To(Equal(expected))
		},
		Entry("both present", data.Some(6), data.Some(3), data.Some(2)),
		Entry("negative numerator", data.Some(-6), data.Some(3), data.Some(-2)),
		Entry("negative denominator", data.Some(6), data.Some(-3), data.Some(-2)),
		Entry("both negative", data.Some(-6), data.Some(-3), data.Null),
		Entry("zero divisor", data.Some(6), data.Some(0), data.Null),
		Entry("zero numerator", data.Some(0), data.Some(5), data.Some(0)),
		Entry("null numerator", data.Null, data.Some(3), data.Null),
		Entry("null denominator", data.Some(6), data.Null, data.Null),
	)

	It("propagates nulls through subtraction and addition", func() {
		Expect(calc.Sub(data.Some(5), data.Some(2))).To(Equal(data.Some(3)))
		Expect(calc.Sub(data.Null, data.Some(2))).To(Equal(data.Null))
		Expect(calc.Add(data.Some(5), data.Some(2))).To(Equal(data.Some(7)))
		Expect(calc.Add(data.Some(5), data.Null)).To(Equal(data.Null))
	})

	It("reverses the sign of present values only", func() {
		Expect(calc.ReverseSign(data.Some(4))).To(Equal(data.Some(-4)))
		Expect(calc.ReverseSign(data.Null)).To(Equal(data.Null))
	})

	DescribeTable("ChangeRate",
		func(a, b data.Float, expected data.Float) {
			Expect(calc.ChangeRate(a, b)).To(Equal(expected))
		},
		Entry("growth", data.Some(3), data.Some(2), data.Some(0.5)),
		Entry("decline", data.Some(1), data.Some(2), data.Some(-0.5)),
		Entry("zero base", data.Some(1), data.Some(0), data.Null),
		Entry("null base", data.Some(1), data.Null, data.Null),
	)

	It("never reports a comparison involving null as true", func() {
		Expect(calc.LessThan(data.Some(1), data.Some(2))).To(BeTrue())
		Expect(calc.LessThan(data.Some(2), data.Some(2))).To(BeFalse())
		Expect(calc.LessThanOrEqual(data.Some(2), data.Some(2))).To(BeTrue())
		Expect(calc.LessThan(data.Null, data.Some(2))).To(BeFalse())
		Expect(calc.LessThanOrEqual(data.Some(2), data.Null)).To(BeFalse())
	})

	It("applies the operations year by year on series", func() {
		a := data.Series{data.Some(4), data.Some(-2), data.Null}
		b := data.Series{data.Some(2), data.Some(-1), data.Some(1)}
		Expect(calc.DivSeries(a, b)).To(Equal(data.Series{data.Some(2), data.Null, data.Null}))
		Expect(calc.SubSeries(a, b)).To(Equal(data.Series{data.Some(2), data.Some(-1), data.Null}))
	})

	Describe("CoefVar", func() {
		It("ignores nulls", func() {
			cv := calc.CoefVar(data.Series{data.Some(2), data.Null, data.Some(4)})
			Expect(cv.Or(0)).To(BeNumerically("~", 1.0/3.0, 1e-12))
		})

		It("is null for an empty series or a zero mean", func() {
			Expect(calc.CoefVar(data.Series{data.Null}).IsNull()).To(BeTrue())
			Expect(calc.CoefVar(data.Series{data.Some(-1), data.Some(1)}).IsNull()).To(BeTrue())
		})
	})
})
