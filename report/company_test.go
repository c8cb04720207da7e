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
package report_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvscreen/data"
	"github.com/penny-vault/pvscreen/report"
)

func approx(f data.Float, expected float64) {
	GinkgoHelper()
	Expect(f.IsNull()).To(BeFalse(), "expected %v, got null", expected)
	Expect(f.Or(0)).To(BeNumerically("~", expected, 1e-9))
}

var _ = Describe("Generate", func() {
	var f *fixture

	BeforeEach(func() {
		f = newFixture()
	})

	It("refuses a company that has not been validated", func() {
		company := &data.Company{Ticker: "XOM"}
		_, _, err := report.Generate(company)
		Expect(err).To(MatchError(data.ErrNotValidated))
	})

	It("emits every declared key in order", func() {
		period, metrics, err := report.Generate(f.company("XOM"))
		Expect(err).NotTo(HaveOccurred())

		Expect(period.Ticker).To(Equal("XOM"))
		Expect(period.Values.Keys()).To(Equal(report.PeriodReportKeys))
		Expect(metrics.Values.Keys()).To(Equal(report.MetricsKeys))
		Expect(metrics.Country).To(Equal("us"))
		Expect(metrics.Industry).To(Equal("oil_and_gas_refining"))
		Expect(metrics.Get(report.MarketCapField)).To(Equal(data.Some(500)))
	})

	It("aggregates raw fields over their windows", func() {
		period, _, err := report.Generate(f.company("XOM"))
		Expect(err).NotTo(HaveOccurred())

		// revenue of the latest five years: 240, 230, 220, 210
		approx(period.Values.Get("average_revenue_prev_0_4_y"), 225)
		approx(period.Values.Get("average_revenue_prev_5_9_y"), 175)
		approx(period.Values.Get("average_eps_earnings_per_share_prev_0_4_y"), 4.0)
		approx(period.Values.Get("std_eps_earnings_per_share_prev_0_4_y"), math.Sqrt(0.05))
		approx(period.Values.Get("average_eps_earnings_per_share_prev_10_14_y"), 2.0)
		Expect(period.Values.Get("coef_var_net_cash_flow_prev_0_4_y").IsNull()).To(BeFalse())
	})

	Describe("income statement metrics", func() {
		It("computes trends, margins and growth", func() {
			_, metrics, err := report.Generate(f.company("XOM"))
			Expect(err).NotTo(HaveOccurred())

			approx(metrics.Get("corr_coef_revenue_last_5y"), 1)
			approx(metrics.Get("corr_coef_eps_last_5y"), 1)
			approx(metrics.Get("average_eps_prev_0_4_y"), 4.0)
			approx(metrics.Get("eps_growth_prev_0_4_vs_5_9_y"), 1.0/3.0)
			approx(metrics.Get("eps_growth_prev_0_4_vs_10_14_y"), 1.0)
			Expect(metrics.Get("corr_coef_shares_outstanding_last_5y").IsNull()).To(BeTrue())

			// gross profit over revenue per year, averaged
			expected := (110.0/240 + 105.0/230 + 100.0/220 + 95.0/210) / 4
			approx(metrics.Get("average_gross_profit_margin_prev_0_4_y"), expected)
			approx(metrics.Get("average_r_and_d_op_expenses_ratio_prev_0_4_y"), 5.0/57.5)
		})

		It("reverses the growth sign when the baseline EPS is negative", func() {
			f.income["eps_earnings_per_share"] = chronological(func(t float64) float64 {
				if t >= 10 {
					return 1
				}
				return -1
			})

			_, metrics, err := report.Generate(f.company("XOM"))
			Expect(err).NotTo(HaveOccurred())
			approx(metrics.Get("eps_growth_prev_0_4_vs_5_9_y"), 2)
			approx(metrics.Get("eps_growth_prev_0_4_vs_10_14_y"), 2)
		})

		It("expresses a non-operating loss as a positive drag", func() {
			_, metrics, err := report.Generate(f.company("XOM"))
			Expect(err).NotTo(HaveOccurred())
			approx(metrics.Get("average_non_op_income_drag_ratio_prev_0_4_y"), 2.0/40.0)
		})

		It("has no drag when non-operating income is positive", func() {
			f.income["total_non_operating_income_expense"] = constant(2)
			_, metrics, err := report.Generate(f.company("XOM"))
			Expect(err).NotTo(HaveOccurred())
			Expect(metrics.Get("average_non_op_income_drag_ratio_prev_0_4_y").IsNull()).To(BeTrue())
		})
	})

	Describe("balance sheet metrics", func() {
		It("computes liquidity ratios", func() {
			_, metrics, err := report.Generate(f.company("XOM"))
			Expect(err).NotTo(HaveOccurred())
			approx(metrics.Get("latest_current_ratio"), 88.0/30.0)
			approx(metrics.Get("latest_total_assets_liabilities_ratio"), 3.4)
			approx(metrics.Get("corr_coef_current_ratio_last_5y"), 1)
			approx(metrics.Get("average_inventory_current_assets_ratio_prev_0_4_y"), 8.0/85.0)
			approx(metrics.Get("average_cash_current_liabilities_ratio_prev_0_4_y"), 1)
		})

		It("nullifies only the metrics that depend on a missing field", func() {
			delete(f.balance, "inventory")
			_, metrics, err := report.Generate(f.company("XOM"))
			Expect(err).NotTo(HaveOccurred())
			Expect(metrics.Get("average_inventory_current_assets_ratio_prev_0_4_y").IsNull()).To(BeTrue())
			approx(metrics.Get("latest_current_ratio"), 88.0/30.0)
		})
	})

	Describe("cash flow metrics", func() {
		It("ignores net repayment of debt", func() {
			_, metrics, err := report.Generate(f.company("XOM"))
			Expect(err).NotTo(HaveOccurred())
			Expect(metrics.Get("average_debt_issuance_net_income_ratio_prev_0_4_y").IsNull()).To(BeTrue())
			approx(metrics.Get("average_equity_issued_net_income_ratio_prev_0_4_y"), 2.0/40.0)
		})

		It("computes working capital and debt trends", func() {
			f.cashFlow["change_in_accounts_receivable"] = chronological(func(t float64) float64 { return 2 * t })
			f.cashFlow["change_in_accounts_payable"] = chronological(func(t float64) float64 { return 50 - 3*t })
			f.cashFlow["net_long_term_debt"] = constant(4)
			f.cashFlow["net_current_debt"] = chronological(func(t float64) float64 { return t * t })

			_, metrics, err := report.Generate(f.company("XOM"))
			Expect(err).NotTo(HaveOccurred())
			approx(metrics.Get(report.TrendAccountsReceivable), 1)
			approx(metrics.Get(report.TrendAccountsPayable), -1)
			Expect(metrics.Get(report.TrendLongTermDebt).IsNull()).To(BeTrue())
			Expect(metrics.Get(report.TrendCurrentDebt).Or(0)).To(BeNumerically(">", 0.99))
		})

		It("leaves unreported trends null", func() {
			_, metrics, err := report.Generate(f.company("XOM"))
			Expect(err).NotTo(HaveOccurred())
			Expect(metrics.Get("corr_coef_accounts_receivable_last_5y").IsNull()).To(BeTrue())
			Expect(metrics.Values.Keys()).To(ContainElement("corr_coef_current_debt_last_5y"))
		})

		It("reverses the sign of dividends paid", func() {
			_, metrics, err := report.Generate(f.company("XOM"))
			Expect(err).NotTo(HaveOccurred())
			approx(metrics.Get("latest_dividend_net_income_ratio"), 5.0/43.0)
			approx(metrics.Get("average_dividend_net_income_ratio_prev_0_4_y"), 5.0/40.0)
		})
	})

	Describe("valuation metrics", func() {
		It("computes price ratios", func() {
			_, metrics, err := report.Generate(f.company("XOM"))
			Expect(err).NotTo(HaveOccurred())
			approx(metrics.Get("latest_price"), 35)
			approx(metrics.Get("latest_eps"), 4.3)
			approx(metrics.Get("latest_pe"), 35/4.3)
			approx(metrics.Get("latest_bv_per_share"), 16)
			approx(metrics.Get("latest_pb"), 35.0/16.0)
			approx(metrics.Get("latest_roe"), 43.0/170.0)
			approx(metrics.Get("latest_roic"), 43.0/240.0)
			approx(metrics.Get("latest_dividend_per_share"), 0.5)
			approx(metrics.Get("latest_dividend_yield"), 0.5/35)
		})

		It("uses zero goodwill when intangibles are not reported", func() {
			delete(f.balance, "goodwill_and_intangible_assets")
			_, metrics, err := report.Generate(f.company("XOM"))
			Expect(err).NotTo(HaveOccurred())
			approx(metrics.Get("latest_bv_per_share"), 17)
		})

		It("has a null P/E when EPS is zero", func() {
			f.income["eps_earnings_per_share"][fixtureYears-1] = 0
			_, metrics, err := report.Generate(f.company("XOM"))
			Expect(err).NotTo(HaveOccurred())
			Expect(metrics.Get("latest_pe").IsNull()).To(BeTrue())
			approx(metrics.Get("latest_pb"), 35.0/16.0)
		})
	})

	Describe("composite metrics", func() {
		It("relates cash flow to market cap, liabilities and revenue", func() {
			_, metrics, err := report.Generate(f.company("XOM"))
			Expect(err).NotTo(HaveOccurred())
			// 2024 is an even index so net cash flow is 3
			approx(metrics.Get("latest_net_cash_flow_market_cap_ratio"), 3.0/500.0)
			approx(metrics.Get("latest_solvency_ratio"), 45.0/100.0)
			approx(metrics.Get("latest_cash_flow_margin"), 48.0/240.0)
		})
	})
})
