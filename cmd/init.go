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
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the pvscreen configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		conf := currentConfig()

		marketCapFloor := strconv.FormatFloat(conf.Screen.MarketCapFloor, 'f', -1, 64)
		nullRatio := strconv.FormatFloat(conf.Screen.NullRatioThreshold, 'f', -1, 64)
		countries := strings.Join(conf.Screen.ExcludedCountries, ", ")

		validFloat := func(s string) error {
			_, err := strconv.ParseFloat(s, 64)
			return err
		}

		form := huh.NewForm(
			// Where data comes from and where reports go
			huh.NewGroup(
				huh.NewInput().
					Title("Give the library a name:").
					Value(&conf.Library.Name),

				huh.NewInput().
					Title("Which directory holds the company json files?").
					Value(&conf.Data.Dir),

				huh.NewInput().
					Title("Which directory should reports be written to?").
					Value(&conf.Output.Dir),

				huh.NewMultiSelect[string]().
					Title("Which report formats should be written?").
					Options(huh.NewOptions("csv", "json", "parquet")...).
					Value(&conf.Output.Formats),
			),

			// Screen rules
			huh.NewGroup(
				huh.NewInput().
					Title("Minimum market cap:").
					Value(&marketCapFloor).
					Validate(validFloat),

				huh.NewInput().
					Title("Excluded countries (comma separated):").
					Value(&countries),

				huh.NewConfirm().
					Title("Require positive average earnings?").
					Value(&conf.Screen.PositiveAverageEarnings),

				huh.NewConfirm().
					Title("Require positive average net cash flow?").
					Value(&conf.Screen.PositiveCashOnHand),

				huh.NewConfirm().
					Title("Require solid liquidity?").
					Value(&conf.Screen.SolidLiquidity),

				huh.NewConfirm().
					Title("Reject companies whose current P/E is above their 5 year average?").
					Value(&conf.Screen.CurrentPEBelowAverage),

				huh.NewInput().
					Title("Maximum share of missing metrics (0-1):").
					Value(&nullRatio).
					Validate(validFloat),
			),

			// Optional upload and monitoring
			huh.NewGroup(
				huh.NewInput().
					Title("Backblaze application id (blank disables upload):").
					Value(&conf.Backblaze.ApplicationID),

				huh.NewInput().
					Title("Backblaze application key:").
					Password(true).
					Value(&conf.Backblaze.ApplicationKey),

				huh.NewInput().
					Title("Backblaze bucket:").
					Value(&conf.Backblaze.Bucket),

				huh.NewInput().
					Title("healthchecks.io check id (blank disables monitoring):").
					Value(&conf.Healthchecks.CheckID),
			),
		)

		err := form.Run()
		if err != nil {
			log.Fatal().Err(err).Msg("error gathering settings")
		}

		conf.Screen.MarketCapFloor, _ = strconv.ParseFloat(marketCapFloor, 64)
		conf.Screen.NullRatioThreshold, _ = strconv.ParseFloat(nullRatio, 64)
		conf.Screen.ExcludedCountries = splitList(countries)

		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal().Err(err).Msg("could not determine user home directory")
		}

		configFN := filepath.Join(home, ".pvscreen.toml")
		log.Info().Str("ConfigFile", configFN).Msg("Saving settings to config file")

		configData, err := conf.Marshal()
		if err != nil {
			log.Fatal().Err(err).Msg("could not marshal configuration data")
		}

		err = os.WriteFile(configFN, configData, 0600)
		if err != nil {
			log.Fatal().Err(err).Str("FileName", configFN).Msg("could not save configuration to file")
		}

		log.Info().Msg("pvscreen has been initialized")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
