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
package screen

import (
	"fmt"
	"strings"

	"github.com/penny-vault/pvscreen/calc"
	"github.com/penny-vault/pvscreen/data"
	"github.com/penny-vault/pvscreen/report"
)

var (
	// liquidity ratios that must be at least one
	liquidityFields = []string{
		report.LatestCurrentRatio,
		report.AverageCurrentRatioRecent,
		report.LatestAssetsLiabsRatio,
		report.AverageAssetsLiabsRatioRecent,
	}

	// price to book ratios that must not be negative
	bookValueFields = []string{
		report.LatestPB,
		report.AveragePBRecent,
	}
)

// HardFilter applies the absolute eligibility rules to one company and
// returns the first rule it violates, or nil. Missing values never violate
// a rule; only the null ratio rule looks at them.
func (cfg Config) HardFilter(metrics *report.MetricsReport) *Exclusion {
	reject := func(field, reason string, threshold, value data.Float) *Exclusion {
		return &Exclusion{
			Ticker:    metrics.Ticker,
			Stage:     HardFilterStage,
			Field:     field,
			Reason:    reason,
			Threshold: threshold,
			Value:     value,
		}
	}

	floor := data.Some(cfg.MarketCapFloor)
	if calc.LessThan(metrics.MarketCap, floor) {
		return reject(report.MarketCapField, "market cap below floor", floor, metrics.MarketCap)
	}

	country := strings.ToLower(metrics.Country)
	for _, excluded := range cfg.ExcludedCountries {
		if country == strings.ToLower(excluded) {
			return reject(report.CountryField, fmt.Sprintf("country %s is excluded", country), data.Null, data.Null)
		}
	}

	zero := data.Some(0)
	if cfg.PositiveAverageEarnings {
		for _, field := range []string{report.AverageEPSRecent, report.AverageEPSPrior} {
			if value := metrics.Get(field); calc.LessThan(value, zero) {
				return reject(field, "negative average earnings", zero, value)
			}
		}
	}

	if cfg.PositiveCashOnHand {
		if value := metrics.Get(report.AverageNetCashFlowRecent); calc.LessThan(value, zero) {
			return reject(report.AverageNetCashFlowRecent, "negative average net cash flow", zero, value)
		}
	}

	if cfg.SolidLiquidity {
		one := data.Some(1)
		for _, field := range liquidityFields {
			if value := metrics.Get(field); calc.LessThan(value, one) {
				return reject(field, "liabilities exceed assets", one, value)
			}
		}

		for _, field := range bookValueFields {
			if value := metrics.Get(field); calc.LessThan(value, zero) {
				return reject(field, "negative book value", zero, value)
			}
		}
	}

	if cfg.CurrentPEBelowAverage {
		average, latest := metrics.Get(report.AveragePERecent), metrics.Get(report.LatestPE)
		if calc.LessThan(average, latest) {
			return reject(report.LatestPE, "current P/E above recent average", average, latest)
		}
	}

	if metrics.Values.Len() > 0 {
		ratio := data.Some(float64(metrics.Values.NullCount()) / float64(metrics.Values.Len()))
		threshold := data.Some(cfg.NullRatioThreshold)
		if calc.LessThan(threshold, ratio) {
			return reject("null_ratio", "too many missing metrics", threshold, ratio)
		}
	}

	return nil
}
