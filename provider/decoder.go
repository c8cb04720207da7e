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
package provider

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/penny-vault/pvscreen/data"
	"github.com/tidwall/gjson"
)

var (
	ErrInvalidRecord = errors.New("invalid company record")
)

// DecodeCompany parses one company record. The ticker is taken from the
// record's ticker key when present and from the argument otherwise. Field
// values may be JSON numbers or numeric strings; anything else reads as
// null. The company is returned unvalidated.
func DecodeCompany(ticker string, raw []byte) (*data.Company, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: %s is not valid json", ErrInvalidRecord, ticker)
	}

	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: %s is not a json object", ErrInvalidRecord, ticker)
	}

	if val := doc.Get("ticker").String(); val != "" {
		ticker = val
	}

	company := &data.Company{
		Ticker:      ticker,
		Name:        doc.Get("company_name").String(),
		Description: doc.Get("description").String(),
		Country:     doc.Get("country").String(),
		Industry:    doc.Get("industry").String(),
		Sector:      doc.Get("sector").String(),
		MarketCap:   number(doc.Get("market_cap")),
	}

	for _, key := range data.RequiredStatements {
		result := doc.Get(key)
		if !result.Exists() {
			// reported by Validate
			continue
		}

		stmt, err := decodeStatement(result)
		if err != nil {
			return nil, fmt.Errorf("%w: %s of %s: %w", ErrInvalidRecord, key, ticker, err)
		}

		switch key {
		case data.IncomeStatementKey:
			company.IncomeStatement = stmt
		case data.BalanceSheetKey:
			company.BalanceSheet = stmt
		case data.CashFlowStatementKey:
			company.CashFlowStatement = stmt
		case data.PriceKey:
			company.Price = stmt
		}
	}

	return company, nil
}

func decodeStatement(result gjson.Result) (*data.Statement, error) {
	if !result.IsObject() {
		return nil, errors.New("statement is not an object")
	}

	yearsResult := result.Get(data.YearsKey)
	if !yearsResult.IsArray() {
		return nil, errors.New("statement has no years")
	}

	var years []string
	for _, year := range yearsResult.Array() {
		years = append(years, yearLabel(year))
	}

	stmt := data.NewStatement(years)
	result.ForEach(func(key, value gjson.Result) bool {
		if key.String() == data.YearsKey || !value.IsArray() {
			return true
		}

		elems := value.Array()
		series := make(data.Series, len(elems))
		for idx, elem := range elems {
			series[idx] = number(elem)
		}

		stmt.Set(key.String(), series)
		return true
	})

	return stmt, nil
}

// yearLabel normalizes numeric years so that 2020 and "2020" sort together
func yearLabel(year gjson.Result) string {
	if year.Type == gjson.Number {
		return strconv.FormatFloat(year.Float(), 'f', -1, 64)
	}

	return strings.TrimSpace(year.String())
}

func number(result gjson.Result) data.Float {
	switch result.Type {
	case gjson.Number:
		return data.Some(result.Float())
	case gjson.String:
		val, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(result.String()), ",", ""), 64)
		if err != nil {
			return data.Null
		}
		return data.Some(val)
	default:
		return data.Null
	}
}
