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
package data

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const (
	IncomeStatementKey   = "income_statement"
	BalanceSheetKey      = "balance_sheet"
	CashFlowStatementKey = "cash_flow_statement"
	PriceKey             = "price"

	YearsKey = "years"

	// MinHistory is the number of yearly observations a statement needs
	// before it is accepted into the library
	MinHistory = 10
)

// RequiredStatements lists the statements every company record must carry
var RequiredStatements = []string{IncomeStatementKey, BalanceSheetKey, CashFlowStatementKey, PriceKey}

var fieldNameCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// FieldName normalizes a raw column title, e.g. "EPS - Earnings Per Share"
// becomes "eps_earnings_per_share"
func FieldName(raw string) string {
	return fieldNameCleaner.ReplaceAllString(strings.ToLower(raw), "_")
}

// Statement is one financial statement of a company: a set of per-year series
// aligned with Years.
type Statement struct {
	Years  []string
	fields map[string]Series
	order  []string
}

func NewStatement(years []string) *Statement {
	return &Statement{
		Years:  years,
		fields: make(map[string]Series),
	}
}

// Set adds or replaces the series for name. The name is normalized.
func (stmt *Statement) Set(name string, values Series) {
	name = FieldName(name)
	if _, ok := stmt.fields[name]; !ok {
		stmt.order = append(stmt.order, name)
	}

	stmt.fields[name] = values
}

// Field returns the named series. Fields that were not reported read as a
// series of nulls so that every dependent metric becomes null.
func (stmt *Statement) Field(name string) Series {
	if values, ok := stmt.fields[name]; ok {
		return values
	}

	return NullSeries(len(stmt.Years))
}

// Latest returns the most recent value of the named field
func (stmt *Statement) Latest(name string) Float {
	return stmt.Field(name).Latest()
}

// Fields returns the field names in the order they were added
func (stmt *Statement) Fields() []string {
	return append([]string(nil), stmt.order...)
}

// Len is the number of yearly observations
func (stmt *Statement) Len() int {
	return len(stmt.Years)
}

// sortByYear reorders every series so that index 0 holds the latest year
func (stmt *Statement) sortByYear() error {
	n := len(stmt.Years)
	for _, name := range stmt.order {
		if len(stmt.fields[name]) != n {
			return fmt.Errorf("%w: field %s has %d values for %d years", ErrSortAlignment, name, len(stmt.fields[name]), n)
		}
	}

	idx := make([]int, n)
	for ii := range idx {
		idx[ii] = ii
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return stmt.Years[idx[a]] > stmt.Years[idx[b]]
	})

	years := make([]string, n)
	for ii, src := range idx {
		years[ii] = stmt.Years[src]
	}
	stmt.Years = years

	for _, name := range stmt.order {
		orig := stmt.fields[name]
		sorted := make(Series, n)
		for ii, src := range idx {
			sorted[ii] = orig[src]
		}
		stmt.fields[name] = sorted
	}

	return nil
}
