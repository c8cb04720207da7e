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
	"fmt"

	"github.com/penny-vault/pvscreen/calc"
	"github.com/penny-vault/pvscreen/data"
	"github.com/rs/zerolog"
)

const (
	TickerField    = "ticker"
	CountryField   = "country"
	MarketCapField = "market_cap"
	IndustryField  = "industry"
	WarningsField  = "warnings"

	compositeReport = "composite"
)

// IdentityFields lead every metrics report
var IdentityFields = []string{TickerField, CountryField, MarketCapField, IndustryField}

var (
	LatestSolvencyRatio        = "latest_solvency_ratio"
	AverageSolvencyRatio       = avg("solvency_ratio", calc.Recent)
	LatestCashFlowMargin       = "latest_cash_flow_margin"
	AverageCashFlowMargin      = avg("cash_flow_margin", calc.Recent)
	LatestNetCashFlowMarketCap = "latest_net_cash_flow_market_cap_ratio"
)

// CompositeMetrics is the ordered key set of the metrics combining several
// statements with the market capitalization
var CompositeMetrics = []string{
	LatestNetCashFlowMarketCap,
	avg("net_cash_flow_market_cap_ratio", calc.Recent),
	LatestSolvencyRatio,
	AverageSolvencyRatio,
	calc.TrendName("solvency_ratio"),
	LatestCashFlowMargin,
	AverageCashFlowMargin,
	calc.TrendName("cash_flow_margin"),
}

// PeriodReportKeys is the ordered key set of a merged period report
var PeriodReportKeys = concat(
	PeriodKeys(IncomeStatementSchema),
	PeriodKeys(BalanceSheetSchema),
	PeriodKeys(CashFlowStatementSchema),
	PeriodKeys(PriceSchema),
)

// MetricsKeys is the ordered key set of a metrics report, identity fields
// excluded
var MetricsKeys = concat(
	IncomeStatementMetrics,
	BalanceSheetMetrics,
	CashFlowStatementMetrics,
	PriceMetrics,
	CompositeMetrics,
)

// PeriodReport holds the windowed aggregates of every statement of a company
type PeriodReport struct {
	Ticker string
	Values *Report
}

// MetricsReport holds the identity of a company and its derived metrics.
// Warnings is filled in by the screener.
type MetricsReport struct {
	Ticker    string
	Country   string
	MarketCap data.Float
	Industry  string
	Values    *Report
	Warnings  string
}

// Get returns a metric by name; market_cap is served from the identity fields
func (metrics *MetricsReport) Get(key string) data.Float {
	if key == MarketCapField {
		return metrics.MarketCap
	}

	return metrics.Values.Get(key)
}

func (metrics *MetricsReport) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Ticker", metrics.Ticker)
	e.Str("Country", metrics.Country)
	e.Str("Industry", metrics.Industry)
	e.Str("MarketCap", metrics.MarketCap.String())
}

// Generate computes the period and metrics reports of a validated company.
// The statements are processed in a fixed order because the valuation
// metrics depend on the period reports of the three financial statements.
func Generate(company *data.Company) (*PeriodReport, *MetricsReport, error) {
	if !company.Validated() {
		return nil, nil, fmt.Errorf("%w: %s", data.ErrNotValidated, company.Ticker)
	}

	incomePeriod, incomeMetrics, err := IncomeStatement(company.IncomeStatement)
	if err != nil {
		return nil, nil, fmt.Errorf("income statement report of %s: %w", company.Ticker, err)
	}

	balancePeriod, balanceMetrics, err := BalanceSheet(company.BalanceSheet)
	if err != nil {
		return nil, nil, fmt.Errorf("balance sheet report of %s: %w", company.Ticker, err)
	}

	cashFlowPeriod, cashFlowMetrics, err := CashFlowStatement(company.CashFlowStatement)
	if err != nil {
		return nil, nil, fmt.Errorf("cash flow report of %s: %w", company.Ticker, err)
	}

	merged := NewReport()
	merged.Merge(incomePeriod)
	merged.Merge(balancePeriod)
	merged.Merge(cashFlowPeriod)

	pricePeriod, priceMetrics, err := Price(company, merged)
	if err != nil {
		return nil, nil, fmt.Errorf("price report of %s: %w", company.Ticker, err)
	}
	merged.Merge(pricePeriod)

	composite, err := compositeMetrics(company, merged)
	if err != nil {
		return nil, nil, fmt.Errorf("composite report of %s: %w", company.Ticker, err)
	}

	values := NewReport()
	values.Merge(incomeMetrics)
	values.Merge(balanceMetrics)
	values.Merge(cashFlowMetrics)
	values.Merge(priceMetrics)
	values.Merge(composite)

	period := &PeriodReport{
		Ticker: company.Ticker,
		Values: merged,
	}

	metrics := &MetricsReport{
		Ticker:    company.Ticker,
		Country:   company.Country,
		MarketCap: company.MarketCap,
		Industry:  company.Industry,
		Values:    values,
	}

	return period, metrics, nil
}

func compositeMetrics(company *data.Company, period *Report) (*Report, error) {
	income := company.IncomeStatement
	balance := company.BalanceSheet
	cashFlow := company.CashFlowStatement

	b := newBuilder(compositeReport, CompositeMetrics)

	b.set(LatestNetCashFlowMarketCap, calc.Div(cashFlow.Latest(netCashFlow), company.MarketCap))
	b.set(avg("net_cash_flow_market_cap_ratio", calc.Recent), calc.Div(period.Get(avg(netCashFlow, calc.Recent)), company.MarketCap))

	// solvency is operating earnings over total liabilities
	solvency := calc.DivSeries(calc.SubSeries(income.Field(netIncome), income.Field(nonOperatingIncome)), balance.Field(totalLiabilities))
	b.set(LatestSolvencyRatio, solvency.Latest())
	b.set(AverageSolvencyRatio, calc.Div(
		calc.Sub(period.Get(avg(netIncome, calc.Recent)), period.Get(avg(nonOperatingIncome, calc.Recent))),
		period.Get(avg(totalLiabilities, calc.Recent)),
	))
	b.set(calc.TrendName("solvency_ratio"), trend(solvency))

	cashFlowMargin := calc.DivSeries(cashFlow.Field(operatingCashFlow), income.Field(revenue))
	b.set(LatestCashFlowMargin, cashFlowMargin.Latest())
	b.set(AverageCashFlowMargin, calc.Div(period.Get(avg(operatingCashFlow, calc.Recent)), period.Get(avg(revenue, calc.Recent))))
	b.set(calc.TrendName("cash_flow_margin"), trend(cashFlowMargin))

	return b.build()
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}

	return out
}
