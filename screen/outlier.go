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
	"github.com/penny-vault/pvscreen/calc"
	"github.com/penny-vault/pvscreen/data"
	"github.com/penny-vault/pvscreen/report"
)

// OutlierStdMultiplier places the cohort bounds near the 25th and 75th
// percentiles of a normal distribution
const OutlierStdMultiplier = 0.675

var (
	// HigherIsBetter fields are rejected below mean - k*std
	HigherIsBetter = []string{
		report.LatestCurrentRatio,
		report.AverageCurrentRatioRecent,
		report.LatestAssetsLiabsRatio,
		report.AverageAssetsLiabsRatioRecent,
		"average_gross_profit_margin_prev_0_4_y",
		"average_net_profit_margin_prev_0_4_y",
		"average_pre_tax_profit_margin_prev_0_4_y",
		"latest_roa",
		"average_roa_prev_0_4_y",
		"latest_roe",
		"average_roe_prev_0_4_y",
		"latest_roic",
		"average_roic_prev_0_4_y",
		report.LatestSolvencyRatio,
		report.AverageSolvencyRatio,
		report.LatestCashFlowMargin,
		report.AverageCashFlowMargin,
		report.EPSGrowthPrior,
		report.EPSGrowthOldest,
	}

	// LowerIsBetter fields are rejected above mean + k*std
	LowerIsBetter = []string{
		"average_op_expenses_margin_prev_0_4_y",
		report.LatestPE,
		report.AveragePERecent,
		"latest_p_cash",
		"average_p_cash_prev_0_4_y",
		report.LatestPB,
		report.AveragePBRecent,
		report.LatestDividendPayoutRatio,
		report.AverageDividendPayoutRatio,
		report.AverageDebtIssuanceRatio,
		report.AverageEquityIssuedRatio,
		"average_inventory_current_assets_ratio_prev_0_4_y",
	}
)

// Bounds returns the lower and upper outlier bounds of a field
func (stats *GroupStats) Bounds(field string) (lower, upper data.Float) {
	spread := calc.Mul(stats.Std.Get(field), data.Some(OutlierStdMultiplier))
	average := stats.Average.Get(field)
	return calc.Sub(average, spread), calc.Add(average, spread)
}

// OutlierFilter returns the first field in which the company is worse than
// the cohort bound, or nil
func (stats *GroupStats) OutlierFilter(metrics *report.MetricsReport) *Exclusion {
	for _, field := range HigherIsBetter {
		lower, _ := stats.Bounds(field)
		if value := metrics.Get(field); calc.LessThan(value, lower) {
			return &Exclusion{
				Ticker:    metrics.Ticker,
				Stage:     OutlierStage,
				Field:     field,
				Reason:    "below cohort lower bound",
				Threshold: lower,
				Value:     value,
			}
		}
	}

	for _, field := range LowerIsBetter {
		_, upper := stats.Bounds(field)
		if value := metrics.Get(field); calc.LessThan(upper, value) {
			return &Exclusion{
				Ticker:    metrics.Ticker,
				Stage:     OutlierStage,
				Field:     field,
				Reason:    "above cohort upper bound",
				Threshold: upper,
				Value:     value,
			}
		}
	}

	return nil
}
