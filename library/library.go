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
package library

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/penny-vault/pvscreen/data"
	"github.com/rs/zerolog"
)

var (
	ErrSectorNotFound   = errors.New("sector not found")
	ErrIndustryNotFound = errors.New("industry not found")
)

// Library is the set of companies available for screening indexed by
// ticker, sector and industry. Lookups are lock free; inserts are serialized
// so that the sector and industry indexes always agree with the companies.
type Library struct {
	Name     string
	DataDir  string
	LoadedAt time.Time

	companies  *haxmap.Map[string, *data.Company]
	mu         sync.RWMutex
	sectors    map[string]map[string]struct{}
	industries map[string]map[string]struct{}
	numFailed  atomic.Int64
}

func New(name, dataDir string) *Library {
	return &Library{
		Name:       name,
		DataDir:    dataDir,
		companies:  haxmap.New[string, *data.Company](),
		sectors:    make(map[string]map[string]struct{}),
		industries: make(map[string]map[string]struct{}),
	}
}

// Add validates the company and stores it. Adding a ticker that is already
// present replaces the previous record and moves it between sectors and
// industries as needed.
func (myLibrary *Library) Add(ctx context.Context, company *data.Company) error {
	logger := zerolog.Ctx(ctx)

	if err := company.Validate(); err != nil {
		return err
	}

	myLibrary.mu.Lock()
	defer myLibrary.mu.Unlock()

	if prev, ok := myLibrary.companies.Get(company.Ticker); ok {
		removeFromIndex(myLibrary.sectors, prev.Sector, prev.Ticker)
		removeFromIndex(myLibrary.industries, prev.Industry, prev.Ticker)
		logger.Debug().Str("Ticker", company.Ticker).Msg("replacing existing company")
	}

	myLibrary.companies.Set(company.Ticker, company)

	if company.Sector != "" {
		addToIndex(myLibrary.sectors, company.Sector, company.Ticker)
	} else {
		logger.Warn().Str("Ticker", company.Ticker).Msg("sector not found in company data")
	}

	if company.Industry != "" {
		addToIndex(myLibrary.industries, company.Industry, company.Ticker)
	} else {
		logger.Warn().Str("Ticker", company.Ticker).Msg("industry not found in company data")
	}

	logger.Debug().Object("Company", company).Msg("added company")
	return nil
}

// RecordFailure counts a record that could not be added
func (myLibrary *Library) RecordFailure() {
	myLibrary.numFailed.Add(1)
}

// NumFailed is the number of records that failed to load
func (myLibrary *Library) NumFailed() int {
	return int(myLibrary.numFailed.Load())
}

// Company returns the company with the given ticker
func (myLibrary *Library) Company(ticker string) (*data.Company, bool) {
	return myLibrary.companies.Get(ticker)
}

// Len is the number of companies in the library
func (myLibrary *Library) Len() int {
	return int(myLibrary.companies.Len())
}

// Tickers returns every ticker in the library in sorted order
func (myLibrary *Library) Tickers() []string {
	tickers := make([]string, 0, myLibrary.Len())
	myLibrary.companies.ForEach(func(ticker string, _ *data.Company) bool {
		tickers = append(tickers, ticker)
		return true
	})

	sort.Strings(tickers)
	return tickers
}

// Sectors returns the names of all sectors in sorted order
func (myLibrary *Library) Sectors() []string {
	myLibrary.mu.RLock()
	defer myLibrary.mu.RUnlock()
	return sortedKeys(myLibrary.sectors)
}

// Industries returns the names of all industries in sorted order
func (myLibrary *Library) Industries() []string {
	myLibrary.mu.RLock()
	defer myLibrary.mu.RUnlock()
	return sortedKeys(myLibrary.industries)
}

// SectorTickers returns the sorted tickers of the companies in sector
func (myLibrary *Library) SectorTickers(sector string) ([]string, error) {
	myLibrary.mu.RLock()
	defer myLibrary.mu.RUnlock()

	tickers, ok := myLibrary.sectors[sector]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSectorNotFound, sector)
	}

	return sortedKeys(tickers), nil
}

// IndustryTickers returns the sorted tickers of the companies in industry
func (myLibrary *Library) IndustryTickers(industry string) ([]string, error) {
	myLibrary.mu.RLock()
	defer myLibrary.mu.RUnlock()

	tickers, ok := myLibrary.industries[industry]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIndustryNotFound, industry)
	}

	return sortedKeys(tickers), nil
}

func addToIndex(index map[string]map[string]struct{}, key, ticker string) {
	set, ok := index[key]
	if !ok {
		set = make(map[string]struct{})
		index[key] = set
	}

	set[ticker] = struct{}{}
}

func removeFromIndex(index map[string]map[string]struct{}, key, ticker string) {
	set, ok := index[key]
	if !ok {
		return
	}

	delete(set, ticker)
	if len(set) == 0 {
		delete(index, key)
	}
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	return keys
}
