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
package screen

import (
	"fmt"
	"strings"

	"github.com/penny-vault/pvscreen/calc"
	"github.com/penny-vault/pvscreen/data"
	"github.com/penny-vault/pvscreen/report"
)

var (
	// DownwardTrendWarnings are trends that should not be falling
	DownwardTrendWarnings = []string{
		calc.TrendName("revenue"),
		calc.TrendName("eps"),
		calc.TrendName("gross_profit_margin"),
		calc.TrendName("net_profit_margin"),
		calc.TrendName("pre_tax_profit_margin"),
		calc.TrendName("current_ratio"),
		calc.TrendName("total_assets_liabilities_ratio"),
		calc.TrendName("roa"),
		calc.TrendName("roe"),
		calc.TrendName("roic"),
		calc.TrendName("solvency_ratio"),
		calc.TrendName("cash_flow_margin"),
	}

	// UpwardTrendWarnings are trends that should not be rising
	UpwardTrendWarnings = []string{
		calc.TrendName("op_expenses_margin"),
		calc.TrendName("shares_outstanding"),
		report.TrendAccountsReceivable,
		report.TrendLongTermDebt,
		report.TrendCurrentDebt,
		report.TrendDebtIssuance,
		report.TrendEquityIssued,
	}
)

const warningSeparator = "; "

// Warnings describes the strong adverse trends of a company
func Warnings(metrics *report.MetricsReport) string {
	var warnings []string

	strong := data.Some(calc.StrongTrend)
	for _, field := range DownwardTrendWarnings {
		if calc.LessThanOrEqual(metrics.Get(field), calc.ReverseSign(strong)) {
			warnings = append(warnings, fmt.Sprintf("strong downward trend of %s", trendSubject(field)))
		}
	}

	for _, field := range UpwardTrendWarnings {
		if calc.LessThanOrEqual(strong, metrics.Get(field)) {
			warnings = append(warnings, fmt.Sprintf("strong upward trend of %s", trendSubject(field)))
		}
	}

	return strings.Join(warnings, warningSeparator)
}

// trendSubject turns corr_coef_gross_profit_margin_last_5y into
// "gross profit margin"
func trendSubject(field string) string {
	subject := strings.TrimPrefix(field, "corr_coef_")
	subject = strings.TrimSuffix(subject, fmt.Sprintf("_last_%dy", calc.TrendYears))
	return strings.ReplaceAll(subject, "_", " ")
}
