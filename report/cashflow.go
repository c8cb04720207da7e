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

var (
	AverageNetCashFlowRecent = avg(netCashFlow, calc.Recent)
	CoefVarNetCashFlowRecent = calc.FieldName(calc.CV, netCashFlow, calc.Recent)

	AverageDebtIssuanceRatio   = avg("debt_issuance_net_income_ratio", calc.Recent)
	AverageEquityIssuedRatio   = avg("equity_issued_net_income_ratio", calc.Recent)
	LatestDividendPayoutRatio  = "latest_dividend_net_income_ratio"
	AverageDividendPayoutRatio = avg("dividend_net_income_ratio", calc.Recent)
	AverageEarningsQuality     = avg("net_income_operating_cash_flow_ratio", calc.Recent)

	TrendAccountsReceivable = calc.TrendName("accounts_receivable")
	TrendAccountsPayable    = calc.TrendName("accounts_payable")
	TrendLongTermDebt       = calc.TrendName("long_term_debt")
	TrendCurrentDebt        = calc.TrendName("current_debt")
	TrendDebtIssuance       = calc.TrendName("debt_issuance")
	TrendEquityIssued       = calc.TrendName("equity_issued")
)

// CashFlowStatementMetrics is the ordered key set of the cash flow statement
// metrics report
var CashFlowStatementMetrics = []string{
	AverageNetCashFlowRecent,
	CoefVarNetCashFlowRecent,
	AverageDebtIssuanceRatio,
	AverageEquityIssuedRatio,
	LatestDividendPayoutRatio,
	AverageDividendPayoutRatio,
	AverageEarningsQuality,
	TrendAccountsReceivable,
	TrendAccountsPayable,
	TrendLongTermDebt,
	TrendCurrentDebt,
	TrendDebtIssuance,
	TrendEquityIssued,
	calc.TrendName("net_income_operating_cash_flow_ratio"),
}

// CashFlowStatement builds the period and metrics reports of a cash flow
// statement
func CashFlowStatement(stmt *data.Statement) (period *Report, metrics *Report, err error) {
	period, err = aggregatePeriod(data.CashFlowStatementKey, stmt, CashFlowStatementSchema)
	if err != nil {
		return nil, nil, err
	}

	b := newBuilder(data.CashFlowStatementKey, CashFlowStatementMetrics)

	b.set(AverageNetCashFlowRecent, period.Get(AverageNetCashFlowRecent))
	b.set(CoefVarNetCashFlowRecent, period.Get(CoefVarNetCashFlowRecent))

	avgNetIncome := period.Get(avg(netIncomeLoss, calc.Recent))
	b.set(AverageDebtIssuanceRatio, issuanceRatio(period.Get(avg(debtIssuance, calc.Recent)), avgNetIncome))
	b.set(AverageEquityIssuedRatio, issuanceRatio(period.Get(avg(equityIssued, calc.Recent)), avgNetIncome))

	// dividends paid are reported as negative outflows
	b.set(LatestDividendPayoutRatio, calc.Div(calc.ReverseSign(stmt.Latest(dividendsPaid)), stmt.Latest(netIncomeLoss)))
	b.set(AverageDividendPayoutRatio, calc.Div(calc.ReverseSign(period.Get(avg(dividendsPaid, calc.Recent))), avgNetIncome))

	b.set(AverageEarningsQuality, calc.Div(avgNetIncome, period.Get(avg(operatingCashFlow, calc.Recent))))

	b.set(TrendAccountsReceivable, trend(stmt.Field(changeReceivables)))
	b.set(TrendAccountsPayable, trend(stmt.Field(changePayables)))
	b.set(TrendLongTermDebt, trend(stmt.Field(netLongTermDebt)))
	b.set(TrendCurrentDebt, trend(stmt.Field(netCurrentDebt)))
	b.set(TrendDebtIssuance, trend(stmt.Field(debtIssuance)))
	b.set(TrendEquityIssued, trend(stmt.Field(equityIssued)))
	b.set(calc.TrendName("net_income_operating_cash_flow_ratio"),
		trend(calc.DivSeries(stmt.Field(netIncomeLoss), stmt.Field(operatingCashFlow))))

	metrics, err = b.build()
	if err != nil {
		return nil, nil, err
	}

	return period, metrics, nil
}

// issuanceRatio relates net debt or equity issuance to net income. Periods
// of net repayment or buybacks are not comparable and yield null.
func issuanceRatio(issuance, netIncome data.Float) data.Float {
	if !calc.LessThan(data.Some(0), issuance) {
		return data.Null
	}

	return calc.Div(issuance, netIncome)
}
