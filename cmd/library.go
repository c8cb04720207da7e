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
package cmd

import (
	"context"

	"github.com/penny-vault/pvscreen/library"
	"github.com/penny-vault/pvscreen/provider"
	"github.com/penny-vault/pvscreen/screen"
	"github.com/spf13/viper"
)

// loadLibrary reads every company file in data.dir into a new library
func loadLibrary(ctx context.Context) (*library.Library, *provider.LoadSummary, error) {
	dataDir := viper.GetString("data.dir")
	myLibrary := library.New(viper.GetString("library.name"), dataDir)

	folder := &provider.Folder{
		Dir:     dataDir,
		Workers: viper.GetInt("screen.workers"),
	}

	summary, err := folder.Load(ctx, myLibrary)
	if err != nil {
		return nil, nil, err
	}

	return myLibrary, summary, nil
}

// screenConfig builds the screen configuration from the screen.* keys
func screenConfig() screen.Config {
	return screen.Config{
		MarketCapFloor:          viper.GetFloat64("screen.market_cap_floor"),
		ExcludedCountries:       viper.GetStringSlice("screen.excluded_countries"),
		PositiveAverageEarnings: viper.GetBool("screen.positive_average_earnings"),
		PositiveCashOnHand:      viper.GetBool("screen.positive_cash_on_hand"),
		SolidLiquidity:          viper.GetBool("screen.solid_liquidity"),
		CurrentPEBelowAverage:   viper.GetBool("screen.current_pe_below_average"),
		NullRatioThreshold:      viper.GetFloat64("screen.null_ratio_threshold"),
		AutoFilter:              viper.GetBool("screen.auto_filter"),
		Workers:                 viper.GetInt("screen.workers"),
	}
}
