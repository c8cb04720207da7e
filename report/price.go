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
	LatestPrice = "latest_price"
	LatestEPS   = "latest_eps"
	LatestPE    = "latest_pe"
	LatestPB    = "latest_pb"
)

var (
	AveragePERecent = avg("pe", calc.Recent)
	AveragePEPrior  = avg("pe", calc.Prior)
	AveragePBRecent = avg("pb", calc.Recent)
)

// returnRatio is net income over a per-year capital base
type returnRatio struct {
	name string
	base func(balance *data.Statement) data.Series
}

var returnRatios = []returnRatio{
	{name: "roa", base: func(balance *data.Statement) data.Series { return balance.Field(totalAssets) }},
	{name: "roe", base: func(balance *data.Statement) data.Series { return balance.Field(shareHolderEquity) }},
	{name: "roic", base: func(balance *data.Statement) data.Series {
		return calc.SubSeries(balance.Field(totalAssets), balance.Field(totalLiabilities))
	}},
}

// PriceMetrics is the ordered key set of the valuation metrics report
var PriceMetrics = priceMetrics()

func priceMetrics() []string {
	keys := []string{
		LatestPrice,
		LatestEPS,
		LatestPE,
		AveragePERecent,
		AveragePEPrior,
		avg("price_average_eps_ratio", calc.Recent),
		"latest_cash_per_share",
		"latest_p_cash",
		avg("cash_per_share", calc.Recent),
		avg("p_cash", calc.Recent),
		"latest_net_cash_flow_per_share",
		"latest_p_net_cash_flow",
		"latest_bv_per_share",
		LatestPB,
		avg("bv_per_share", calc.Recent),
		AveragePBRecent,
	}

	for _, r := range returnRatios {
		keys = append(keys, "latest_"+r.name, avg(r.name, calc.Recent), calc.TrendName(r.name))
	}

	return append(keys, "latest_dividend_per_share", "latest_dividend_yield")
}

// Price builds the period report of the price history and the valuation
// metrics that combine it with the other statements. statements is the merged
// period report of the income statement, balance sheet and cash flow
// statement of the same company.
func Price(company *data.Company, statements *Report) (period *Report, metrics *Report, err error) {
	period, err = aggregatePeriod(data.PriceKey, company.Price, PriceSchema)
	if err != nil {
		return nil, nil, err
	}

	income := company.IncomeStatement
	balance := company.BalanceSheet
	cashFlow := company.CashFlowStatement

	b := newBuilder(data.PriceKey, PriceMetrics)

	latestPrice := company.Price.Latest(yearClose)
	avgPriceRecent := period.Get(avg(averageStockPrice, calc.Recent))
	avgEPSRecent := statements.Get(avg(eps, calc.Recent))

	b.set(LatestPrice, latestPrice)
	b.set(LatestEPS, income.Latest(eps))
	b.set(LatestPE, calc.Div(latestPrice, income.Latest(eps)))
	b.set(AveragePERecent, calc.Div(avgPriceRecent, avgEPSRecent))
	b.set(AveragePEPrior, calc.Div(period.Get(avg(averageStockPrice, calc.Prior)), statements.Get(avg(eps, calc.Prior))))
	b.set(avg("price_average_eps_ratio", calc.Recent), calc.Div(latestPrice, avgEPSRecent))

	latestShares := income.Latest(sharesOutstanding)
	avgShares := statements.Get(avg(sharesOutstanding, calc.Recent))

	cashPerShare := calc.Div(balance.Latest(cashOnHand), latestShares)
	avgCashPerShare := calc.Div(statements.Get(avg(cashOnHand, calc.Recent)), avgShares)
	b.set("latest_cash_per_share", cashPerShare)
	b.set("latest_p_cash", calc.Div(latestPrice, cashPerShare))
	b.set(avg("cash_per_share", calc.Recent), avgCashPerShare)
	b.set(avg("p_cash", calc.Recent), calc.Div(avgPriceRecent, avgCashPerShare))

	netCashFlowPerShare := calc.Div(cashFlow.Latest(netCashFlow), latestShares)
	b.set("latest_net_cash_flow_per_share", netCashFlowPerShare)
	b.set("latest_p_net_cash_flow", calc.Div(latestPrice, netCashFlowPerShare))

	bvPerShare := calc.Div(bookValue(balance.Latest(shareHolderEquity), balance.Latest(goodwill)), latestShares)
	avgBVPerShare := calc.Div(bookValue(
		statements.Get(avg(shareHolderEquity, calc.Recent)),
		statements.Get(avg(goodwill, calc.Recent)),
	), avgShares)
	b.set("latest_bv_per_share", bvPerShare)
	b.set(LatestPB, calc.Div(latestPrice, bvPerShare))
	b.set(avg("bv_per_share", calc.Recent), avgBVPerShare)
	b.set(AveragePBRecent, calc.Div(avgPriceRecent, avgBVPerShare))

	netIncomeSeries := income.Field(netIncome)
	for _, r := range returnRatios {
		base := r.base(balance)
		ratio := calc.DivSeries(netIncomeSeries, base)
		b.set("latest_"+r.name, calc.Div(netIncomeSeries.Latest(), base.Latest()))
		b.set(avg(r.name, calc.Recent), calc.Div(
			calc.Aggregate(netIncomeSeries, calc.Recent, calc.Average),
			calc.Aggregate(base, calc.Recent, calc.Average),
		))
		b.set(calc.TrendName(r.name), trend(ratio))
	}

	dividendPerShare := calc.Div(calc.ReverseSign(cashFlow.Latest(dividendsPaid)), latestShares)
	b.set("latest_dividend_per_share", dividendPerShare)
	b.set("latest_dividend_yield", calc.Div(dividendPerShare, latestPrice))

	metrics, err = b.build()
	if err != nil {
		return nil, nil, err
	}

	return period, metrics, nil
}

// bookValue is equity less goodwill and intangibles; missing intangibles
// count as zero
func bookValue(equity, intangibles data.Float) data.Float {
	return calc.Sub(equity, data.Some(intangibles.Or(0)))
}
