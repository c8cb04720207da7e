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

// Package screen filters a cohort of companies: absolute eligibility rules
// first, then rejection of outliers relative to the cohort statistics, and
// finally annotation of the survivors with trend warnings.
package screen

// Config controls which companies survive a screen
type Config struct {
	// MarketCapFloor rejects companies with a smaller market capitalization
	MarketCapFloor float64

	// ExcludedCountries lists lower case country codes that are rejected
	ExcludedCountries []string

	PositiveAverageEarnings bool
	PositiveCashOnHand      bool
	SolidLiquidity          bool

	// CurrentPEBelowAverage rejects companies whose latest P/E is above
	// their average P/E of the recent window
	CurrentPEBelowAverage bool

	// NullRatioThreshold rejects companies whose share of null metrics is
	// greater than the threshold
	NullRatioThreshold float64

	// AutoFilter disables both filter stages when false; only the cohort
	// statistics are computed
	AutoFilter bool

	Workers int
}

func DefaultConfig() Config {
	return Config{
		MarketCapFloor:          100,
		ExcludedCountries:       []string{"cn", "hk", "ru", "br", "ar", "mx", "in", "tr", "gr", "cl", "co", "pe", "za", "id"},
		PositiveAverageEarnings: true,
		PositiveCashOnHand:      true,
		SolidLiquidity:          true,
		CurrentPEBelowAverage:   true,
		NullRatioThreshold:      0.8,
		AutoFilter:              true,
		Workers:                 8,
	}
}
