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
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var (
	ErrMissingStatement    = errors.New("required statement missing")
	ErrInsufficientHistory = errors.New("insufficient statement history")
	ErrSortAlignment       = errors.New("statement fields are not aligned with years")
	ErrMissingTicker       = errors.New("ticker is empty")
	ErrNotValidated        = errors.New("company has not been validated")
)

// Company is the historical financial record of one listed company
type Company struct {
	Ticker      string
	Name        string
	Description string
	Country     string
	Industry    string
	Sector      string
	MarketCap   Float

	IncomeStatement   *Statement
	BalanceSheet      *Statement
	CashFlowStatement *Statement
	Price             *Statement

	validated bool
}

// Statement returns the statement stored under one of the statement keys
func (company *Company) Statement(key string) *Statement {
	switch key {
	case IncomeStatementKey:
		return company.IncomeStatement
	case BalanceSheetKey:
		return company.BalanceSheet
	case CashFlowStatementKey:
		return company.CashFlowStatement
	case PriceKey:
		return company.Price
	default:
		return nil
	}
}

// Validate checks that every required statement is present with enough
// history and sorts each of them by year, latest first. Validating twice is
// a no-op.
func (company *Company) Validate() error {
	if company.Ticker == "" {
		return ErrMissingTicker
	}

	if company.validated {
		return nil
	}

	for _, key := range RequiredStatements {
		stmt := company.Statement(key)
		if stmt == nil {
			return fmt.Errorf("%w: %s not in %s data", ErrMissingStatement, key, company.Ticker)
		}

		if stmt.Len() < MinHistory {
			return fmt.Errorf("%w: %s of %s has %d years, need %d", ErrInsufficientHistory, key, company.Ticker, stmt.Len(), MinHistory)
		}

		if err := stmt.sortByYear(); err != nil {
			return fmt.Errorf("fail to sort %s of %s by year: %w", key, company.Ticker, err)
		}
	}

	company.validated = true
	return nil
}

// Validated reports whether Validate has succeeded on the company
func (company *Company) Validated() bool {
	return company.validated
}

func (company *Company) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Ticker", company.Ticker)
	e.Str("Country", company.Country)
	e.Str("Sector", company.Sector)
	e.Str("Industry", company.Industry)
}
