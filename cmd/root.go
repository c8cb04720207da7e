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
	"os"

	"github.com/penny-vault/pvscreen/screen"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pvscreen",
	Short: "pvscreen screens stocks on ten to fifteen years of fundamentals",
	Long: `pvscreen is a command line stock screener. It reads the yearly
financial statements of a universe of companies, derives valuation,
profitability, liquidity and trend metrics for each of them and filters a
sector or industry down to the companies that pass:

	* hard eligibility rules (market cap, country, earnings, liquidity)
	* an outlier test against the statistics of the cohort

Survivors are annotated with warnings about strong adverse trends and the
reports are written as CSV, JSON or Parquet files.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	setDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pvscreen.toml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	if err := viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for log-level failed")
	}

	rootCmd.PersistentFlags().String("data-dir", "", "directory of company json files")
	if err := viper.BindPFlag("data.dir", rootCmd.PersistentFlags().Lookup("data-dir")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for data-dir failed")
	}
}

func setDefaults() {
	viper.SetDefault("library.name", "pvscreen")
	viper.SetDefault("data.dir", "./data/stocks_data")
	viper.SetDefault("output.dir", "./data/reports")
	viper.SetDefault("output.formats", []string{"csv"})

	defaults := screen.DefaultConfig()
	viper.SetDefault("screen.market_cap_floor", defaults.MarketCapFloor)
	viper.SetDefault("screen.excluded_countries", defaults.ExcludedCountries)
	viper.SetDefault("screen.positive_average_earnings", defaults.PositiveAverageEarnings)
	viper.SetDefault("screen.positive_cash_on_hand", defaults.PositiveCashOnHand)
	viper.SetDefault("screen.solid_liquidity", defaults.SolidLiquidity)
	viper.SetDefault("screen.current_pe_below_average", defaults.CurrentPEBelowAverage)
	viper.SetDefault("screen.null_ratio_threshold", defaults.NullRatioThreshold)
	viper.SetDefault("screen.auto_filter", defaults.AutoFilter)
	viper.SetDefault("screen.workers", defaults.Workers)

	viper.SetDefault("log.level", "info")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".pvscreen" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("toml")
		viper.SetConfigName(".pvscreen")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Info().Str("ConfigFN", viper.ConfigFileUsed()).Msg("Using config file")
	}

	level, err := zerolog.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.Warn().Str("Level", viper.GetString("log.level")).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
