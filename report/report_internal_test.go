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
package report

import (
	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvscreen/data"
)

var _ = g.Describe("builder", func() {
	g.It("emits keys in schema order", func() {
		b := newBuilder("test", []string{"a", "b"})
		b.set("b", data.Some(2))
		b.set("a", data.Null)

		rep, err := b.build()
		Expect(err).NotTo(HaveOccurred())
		Expect(rep.Keys()).To(Equal([]string{"a", "b"}))
		Expect(rep.NullCount()).To(Equal(1))
	})

	g.It("fails when a declared key is never set", func() {
		b := newBuilder("test", []string{"a", "b"})
		b.set("a", data.Some(1))

		_, err := b.build()
		Expect(err).To(MatchError(ErrIncompleteReport))
	})

	g.It("fails when an undeclared key is set", func() {
		b := newBuilder("test", []string{"a"})
		b.set("a", data.Some(1))
		b.set("c", data.Some(1))

		_, err := b.build()
		Expect(err).To(MatchError(ErrUndeclaredKey))
	})
})

var _ = g.Describe("FieldSchema", func() {
	g.It("defaults to the recent average", func() {
		Expect(FieldSchema{Field: "inventory"}.Keys()).To(Equal([]string{"average_inventory_prev_0_4_y"}))
	})

	g.It("emits every reducer of a window in order", func() {
		keys := PeriodKeys(CashFlowStatementSchema)
		Expect(keys[len(keys)-2:]).To(Equal([]string{
			"average_net_cash_flow_prev_0_4_y",
			"coef_var_net_cash_flow_prev_0_4_y",
		}))
	})
})
