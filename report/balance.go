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

const (
	LatestCurrentRatio     = "latest_current_ratio"
	LatestAssetsLiabsRatio = "latest_total_assets_liabilities_ratio"

	currentRatio     = "current_ratio"
	assetsLiabsRatio = "total_assets_liabilities_ratio"
)

var (
	AverageCurrentRatioRecent     = avg(currentRatio, calc.Recent)
	AverageCurrentRatioPrior      = avg(currentRatio, calc.Prior)
	AverageAssetsLiabsRatioRecent = avg(assetsLiabsRatio, calc.Recent)
	AverageAssetsLiabsRatioPrior  = avg(assetsLiabsRatio, calc.Prior)
)

// BalanceSheetMetrics is the ordered key set of the balance sheet metrics
// report
var BalanceSheetMetrics = []string{
	LatestCurrentRatio,
	AverageCurrentRatioRecent,
	AverageCurrentRatioPrior,
	calc.TrendName(currentRatio),
	LatestAssetsLiabsRatio,
	AverageAssetsLiabsRatioRecent,
	AverageAssetsLiabsRatioPrior,
	calc.TrendName(assetsLiabsRatio),
	avg("cash_current_liabilities_ratio", calc.Recent),
	avg("inventory_current_assets_ratio", calc.Recent),
}

// BalanceSheet builds the period and metrics reports of a balance sheet
func BalanceSheet(stmt *data.Statement) (period *Report, metrics *Report, err error) {
	period, err = aggregatePeriod(data.BalanceSheetKey, stmt, BalanceSheetSchema)
	if err != nil {
		return nil, nil, err
	}

	b := newBuilder(data.BalanceSheetKey, BalanceSheetMetrics)

	b.set(LatestCurrentRatio, calc.Div(stmt.Latest(totalCurrentAssets), stmt.Latest(totalCurrentLiabilities)))
	b.set(AverageCurrentRatioRecent, calc.Div(
		period.Get(avg(totalCurrentAssets, calc.Recent)),
		period.Get(avg(totalCurrentLiabilities, calc.Recent)),
	))
	b.set(AverageCurrentRatioPrior, calc.Div(
		period.Get(avg(totalCurrentAssets, calc.Prior)),
		period.Get(avg(totalCurrentLiabilities, calc.Prior)),
	))
	b.set(calc.TrendName(currentRatio), trend(calc.DivSeries(stmt.Field(totalCurrentAssets), stmt.Field(totalCurrentLiabilities))))

	b.set(LatestAssetsLiabsRatio, calc.Div(stmt.Latest(totalAssets), stmt.Latest(totalLiabilities)))
	b.set(AverageAssetsLiabsRatioRecent, calc.Div(
		period.Get(avg(totalAssets, calc.Recent)),
		period.Get(avg(totalLiabilities, calc.Recent)),
	))
	b.set(AverageAssetsLiabsRatioPrior, calc.Div(
		period.Get(avg(totalAssets, calc.Prior)),
		period.Get(avg(totalLiabilities, calc.Prior)),
	))
	b.set(calc.TrendName(assetsLiabsRatio), trend(calc.DivSeries(stmt.Field(totalAssets), stmt.Field(totalLiabilities))))

	b.set(avg("cash_current_liabilities_ratio", calc.Recent), calc.Div(
		period.Get(avg(cashOnHand, calc.Recent)),
		period.Get(avg(totalCurrentLiabilities, calc.Recent)),
	))
	b.set(avg("inventory_current_assets_ratio", calc.Recent), calc.Div(
		period.Get(avg(inventory, calc.Recent)),
		period.Get(avg(totalCurrentAssets, calc.Recent)),
	))

	metrics, err = b.build()
	if err != nil {
		return nil, nil, err
	}

	return period, metrics, nil
}
