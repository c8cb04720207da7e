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
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// fileConfig mirrors the layout of $HOME/.pvscreen.toml
type fileConfig struct {
	Library struct {
		Name string `toml:"name"`
	} `toml:"library"`

	Data struct {
		Dir string `toml:"dir"`
	} `toml:"data"`

	Output struct {
		Dir     string   `toml:"dir"`
		Formats []string `toml:"formats"`
	} `toml:"output"`

	Screen struct {
		MarketCapFloor          float64  `toml:"market_cap_floor"`
		ExcludedCountries       []string `toml:"excluded_countries"`
		PositiveAverageEarnings bool     `toml:"positive_average_earnings"`
		PositiveCashOnHand      bool     `toml:"positive_cash_on_hand"`
		SolidLiquidity          bool     `toml:"solid_liquidity"`
		CurrentPEBelowAverage   bool     `toml:"current_pe_below_average"`
		NullRatioThreshold      float64  `toml:"null_ratio_threshold"`
		AutoFilter              bool     `toml:"auto_filter"`
		Workers                 int      `toml:"workers"`
	} `toml:"screen"`

	Backblaze struct {
		ApplicationID  string `toml:"application_id,omitempty"`
		ApplicationKey string `toml:"application_key,omitempty"`
		Bucket         string `toml:"bucket,omitempty"`
	} `toml:"backblaze"`

	Healthchecks struct {
		CheckID string `toml:"check_id,omitempty"`
	} `toml:"healthchecks"`

	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

// currentConfig captures the effective configuration, defaults included
func currentConfig() *fileConfig {
	conf := &fileConfig{}

	conf.Library.Name = viper.GetString("library.name")
	conf.Data.Dir = viper.GetString("data.dir")
	conf.Output.Dir = viper.GetString("output.dir")
	conf.Output.Formats = viper.GetStringSlice("output.formats")

	screenConf := screenConfig()
	conf.Screen.MarketCapFloor = screenConf.MarketCapFloor
	conf.Screen.ExcludedCountries = screenConf.ExcludedCountries
	conf.Screen.PositiveAverageEarnings = screenConf.PositiveAverageEarnings
	conf.Screen.PositiveCashOnHand = screenConf.PositiveCashOnHand
	conf.Screen.SolidLiquidity = screenConf.SolidLiquidity
	conf.Screen.CurrentPEBelowAverage = screenConf.CurrentPEBelowAverage
	conf.Screen.NullRatioThreshold = screenConf.NullRatioThreshold
	conf.Screen.AutoFilter = screenConf.AutoFilter
	conf.Screen.Workers = screenConf.Workers

	conf.Backblaze.ApplicationID = viper.GetString("backblaze.application_id")
	conf.Backblaze.ApplicationKey = viper.GetString("backblaze.application_key")
	conf.Backblaze.Bucket = viper.GetString("backblaze.bucket")
	conf.Healthchecks.CheckID = viper.GetString("healthchecks.check_id")
	conf.Log.Level = viper.GetString("log.level")

	return conf
}

func (conf *fileConfig) Marshal() ([]byte, error) {
	return toml.Marshal(conf)
}

// splitList parses a comma separated list, dropping empty items
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			items = append(items, item)
		}
	}

	return items
}
