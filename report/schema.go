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

// raw statement fields read by the builders
const (
	revenue                = "revenue"
	grossProfit            = "gross_profit"
	operatingIncome        = "operating_income"
	preTaxIncome           = "pre_tax_income"
	netIncome              = "net_income"
	researchAndDevelopment = "research_and_development_expenses"
	sharesOutstanding      = "shares_outstanding"
	operatingExpenses      = "operating_expenses"
	nonOperatingIncome     = "total_non_operating_income_expense"
	eps                    = "eps_earnings_per_share"

	cashOnHand              = "cash_on_hand"
	shareHolderEquity       = "share_holder_equity"
	goodwill                = "goodwill_and_intangible_assets"
	inventory               = "inventory"
	totalCurrentAssets      = "total_current_assets"
	totalCurrentLiabilities = "total_current_liabilities"
	totalAssets             = "total_assets"
	totalLiabilities        = "total_liabilities"

	netIncomeLoss     = "net_income_loss"
	operatingCashFlow = "cash_flow_from_operating_activities"
	dividendsPaid     = "total_common_and_preferred_stock_dividends_paid"
	debtIssuance      = "debt_issuance_retirement_net_total"
	equityIssued      = "net_total_equity_issued_repurchased"
	netCashFlow       = "net_cash_flow"
	changeReceivables = "change_in_accounts_receivable"
	changePayables    = "change_in_accounts_payable"
	netLongTermDebt   = "net_long_term_debt"
	netCurrentDebt    = "net_current_debt"
	averageStockPrice = "average_stock_price"
	yearClose         = "year_close"
)

// FieldSchema declares which windows and reducers a raw field is aggregated
// with. Empty Windows or Reducers default to the average over calc.Recent.
type FieldSchema struct {
	Field    string
	Windows  []calc.Window
	Reducers []calc.Reducer
}

func (fs FieldSchema) windows() []calc.Window {
	if len(fs.Windows) == 0 {
		return []calc.Window{calc.Recent}
	}

	return fs.Windows
}

func (fs FieldSchema) reducers() []calc.Reducer {
	if len(fs.Reducers) == 0 {
		return []calc.Reducer{calc.Average}
	}

	return fs.Reducers
}

// Keys lists the period report keys emitted for the field
func (fs FieldSchema) Keys() []string {
	keys := make([]string, 0, len(fs.windows())*len(fs.reducers()))
	for _, window := range fs.windows() {
		for _, reducer := range fs.reducers() {
			keys = append(keys, calc.FieldName(reducer, fs.Field, window))
		}
	}

	return keys
}

// PeriodKeys lists every key emitted for a statement schema in order
func PeriodKeys(schema []FieldSchema) []string {
	keys := make([]string, 0, len(schema)*2)
	for _, fs := range schema {
		keys = append(keys, fs.Keys()...)
	}

	return keys
}

// both the recent and the prior window
var recentAndPrior = []calc.Window{calc.Recent, calc.Prior}

var (
	IncomeStatementSchema = []FieldSchema{
		{Field: revenue, Windows: recentAndPrior},
		{Field: grossProfit, Windows: recentAndPrior},
		{Field: operatingIncome, Windows: recentAndPrior},
		{Field: preTaxIncome, Windows: recentAndPrior},
		{Field: netIncome, Windows: recentAndPrior},
		{Field: researchAndDevelopment, Windows: recentAndPrior},
		{Field: sharesOutstanding, Windows: recentAndPrior},
		{Field: operatingExpenses, Windows: recentAndPrior},
		{Field: nonOperatingIncome, Windows: recentAndPrior},
		{
			Field:    eps,
			Windows:  []calc.Window{calc.Recent, calc.Prior, calc.Oldest},
			Reducers: []calc.Reducer{calc.Average, calc.Std},
		},
	}

	BalanceSheetSchema = []FieldSchema{
		{Field: cashOnHand},
		{Field: shareHolderEquity},
		{Field: goodwill},
		{Field: inventory},
		{Field: totalCurrentAssets, Windows: recentAndPrior},
		{Field: totalCurrentLiabilities, Windows: recentAndPrior},
		{Field: totalAssets, Windows: recentAndPrior},
		{Field: totalLiabilities, Windows: recentAndPrior},
	}

	CashFlowStatementSchema = []FieldSchema{
		{Field: netIncomeLoss},
		{Field: operatingCashFlow},
		{Field: dividendsPaid},
		{Field: debtIssuance},
		{Field: equityIssued},
		{Field: netCashFlow, Reducers: []calc.Reducer{calc.Average, calc.CV}},
	}

	PriceSchema = []FieldSchema{
		{Field: averageStockPrice, Windows: recentAndPrior},
		{Field: yearClose},
	}
)

// aggregatePeriod builds the period report of one statement
func aggregatePeriod(name string, stmt *data.Statement, schema []FieldSchema) (*Report, error) {
	b := newBuilder(name, PeriodKeys(schema))
	for _, fs := range schema {
		series := stmt.Field(fs.Field)
		for _, window := range fs.windows() {
			for _, reducer := range fs.reducers() {
				b.set(calc.FieldName(reducer, fs.Field, window), calc.Aggregate(series, window, reducer))
			}
		}
	}

	return b.build()
}

// avg is the key of the default average aggregate of field over window
func avg(field string, window calc.Window) string {
	return calc.FieldName(calc.Average, field, window)
}

// trend is the 5 year trend coefficient of series
func trend(series data.Series) data.Float {
	return calc.Trend(series, calc.TrendYears)
}
