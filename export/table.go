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

// Package export flattens reports into tables and writes them as CSV, JSON
// or Parquet files.
package export

import (
	"github.com/penny-vault/pvscreen/data"
	"github.com/penny-vault/pvscreen/report"
)

type Kind int

const (
	TextColumn Kind = iota
	NumberColumn
)

type Column struct {
	Name string
	Kind Kind
}

// Cell holds Text for text columns and Number for number columns
type Cell struct {
	Text   string
	Number data.Float
}

func (cell Cell) String(kind Kind) string {
	if kind == TextColumn {
		return cell.Text
	}

	return cell.Number.String()
}

// Table is an ordered list of columns and rows of cells
type Table struct {
	Columns []Column
	Rows    [][]Cell
}

func (table *Table) Header() []string {
	header := make([]string, len(table.Columns))
	for idx, col := range table.Columns {
		header[idx] = col.Name
	}

	return header
}

// PeriodTable has one row per company: the ticker then every period field
func PeriodTable(periods []*report.PeriodReport) *Table {
	table := &Table{
		Columns: []Column{{Name: report.TickerField, Kind: TextColumn}},
	}

	for _, key := range report.PeriodReportKeys {
		table.Columns = append(table.Columns, Column{Name: key, Kind: NumberColumn})
	}

	for _, period := range periods {
		row := []Cell{{Text: period.Ticker}}
		for _, key := range report.PeriodReportKeys {
			row = append(row, Cell{Number: period.Values.Get(key)})
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// MetricsTable has one row per company, identity fields first and warnings
// last, followed by one row per summary report (e.g. cohort average and
// standard deviation)
func MetricsTable(metrics []*report.MetricsReport, summary ...*report.MetricsReport) *Table {
	table := &Table{
		Columns: []Column{
			{Name: report.TickerField, Kind: TextColumn},
			{Name: report.CountryField, Kind: TextColumn},
			{Name: report.MarketCapField, Kind: NumberColumn},
			{Name: report.IndustryField, Kind: TextColumn},
		},
	}

	for _, key := range report.MetricsKeys {
		table.Columns = append(table.Columns, Column{Name: key, Kind: NumberColumn})
	}
	table.Columns = append(table.Columns, Column{Name: report.WarningsField, Kind: TextColumn})

	for _, rep := range append(append([]*report.MetricsReport{}, metrics...), summary...) {
		if rep == nil {
			continue
		}

		row := []Cell{
			{Text: rep.Ticker},
			{Text: rep.Country},
			{Number: rep.MarketCap},
			{Text: rep.Industry},
		}

		for _, key := range report.MetricsKeys {
			row = append(row, Cell{Number: rep.Values.Get(key)})
		}
		row = append(row, Cell{Text: rep.Warnings})

		table.Rows = append(table.Rows, row)
	}

	return table
}
