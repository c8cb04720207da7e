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
	"github.com/penny-vault/pvscreen/calc"
	"github.com/penny-vault/pvscreen/data"
)

// margin is a per-year ratio of an income statement line to revenue
type margin struct {
	name  string
	field string
}

var incomeMargins = []margin{
	{name: "gross_profit_margin", field: grossProfit},
	{name: "net_profit_margin", field: netIncome},
	{name: "pre_tax_profit_margin", field: preTaxIncome},
	{name: "op_expenses_margin", field: operatingExpenses},
}

var (
	AverageEPSRecent = calc.FieldName(calc.Average, "eps", calc.Recent)
	AverageEPSPrior  = calc.FieldName(calc.Average, "eps", calc.Prior)

	EPSGrowthPrior  = "eps_growth_prev_0_4_vs_5_9_y"
	EPSGrowthOldest = "eps_growth_prev_0_4_vs_10_14_y"
)

// IncomeStatementMetrics is the ordered key set of the income statement
// metrics report
var IncomeStatementMetrics = incomeStatementMetrics()

func incomeStatementMetrics() []string {
	keys := []string{
		calc.TrendName(revenue),
		AverageEPSRecent,
		AverageEPSPrior,
		EPSGrowthPrior,
		EPSGrowthOldest,
		calc.TrendName("eps"),
	}

	for _, m := range incomeMargins {
		keys = append(keys,
			avg(m.name, calc.Recent),
			avg(m.name, calc.Prior),
			calc.TrendName(m.name),
		)
	}

	return append(keys,
		avg("r_and_d_op_expenses_ratio", calc.Recent),
		avg("non_op_income_drag_ratio", calc.Recent),
		calc.TrendName(sharesOutstanding),
	)
}

// IncomeStatement builds the period and metrics reports of an income statement
func IncomeStatement(stmt *data.Statement) (period *Report, metrics *Report, err error) {
	period, err = aggregatePeriod(data.IncomeStatementKey, stmt, IncomeStatementSchema)
	if err != nil {
		return nil, nil, err
	}

	b := newBuilder(data.IncomeStatementKey, IncomeStatementMetrics)
	b.set(calc.TrendName(revenue), trend(stmt.Field(revenue)))

	recentEPS := period.Get(avg(eps, calc.Recent))
	b.set(AverageEPSRecent, recentEPS)
	b.set(AverageEPSPrior, period.Get(avg(eps, calc.Prior)))
	b.set(EPSGrowthPrior, epsGrowth(recentEPS, period.Get(avg(eps, calc.Prior))))
	b.set(EPSGrowthOldest, epsGrowth(recentEPS, period.Get(avg(eps, calc.Oldest))))
	b.set(calc.TrendName("eps"), trend(stmt.Field(eps)))

	rev := stmt.Field(revenue)
	for _, m := range incomeMargins {
		ratio := calc.DivSeries(stmt.Field(m.field), rev)
		b.set(avg(m.name, calc.Recent), calc.Aggregate(ratio, calc.Recent, calc.Average))
		b.set(avg(m.name, calc.Prior), calc.Aggregate(ratio, calc.Prior, calc.Average))
		b.set(calc.TrendName(m.name), trend(ratio))
	}

	b.set(avg("r_and_d_op_expenses_ratio", calc.Recent), calc.Div(
		period.Get(avg(researchAndDevelopment, calc.Recent)),
		period.Get(avg(operatingExpenses, calc.Recent)),
	))

	// only a net non-operating loss is a drag on earnings
	drag := data.Null
	nonOp := period.Get(avg(nonOperatingIncome, calc.Recent))
	if calc.LessThan(nonOp, data.Some(0)) {
		drag = calc.Div(calc.ReverseSign(nonOp), period.Get(avg(netIncome, calc.Recent)))
	}
	b.set(avg("non_op_income_drag_ratio", calc.Recent), drag)

	b.set(calc.TrendName(sharesOutstanding), trend(stmt.Field(sharesOutstanding)))

	metrics, err = b.build()
	if err != nil {
		return nil, nil, err
	}

	return period, metrics, nil
}

// epsGrowth is the change rate of recent over baseline EPS. Growth measured
// from a negative baseline has its sign reversed.
func epsGrowth(recent, baseline data.Float) data.Float {
	growth := calc.ChangeRate(recent, baseline)
	if calc.LessThan(baseline, data.Some(0)) {
		return calc.ReverseSign(growth)
	}

	return growth
}
