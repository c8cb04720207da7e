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
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gosimple/slug"
	"github.com/hako/durafmt"
	"github.com/penny-vault/pvscreen/backblaze"
	"github.com/penny-vault/pvscreen/export"
	"github.com/penny-vault/pvscreen/healthcheck"
	"github.com/penny-vault/pvscreen/library"
	"github.com/penny-vault/pvscreen/screen"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	sectors    []string
	industries []string
)

type cohort struct {
	name    string
	tickers []string
}

// screenCmd represents the screen command
var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Screen sectors or industries and export the reports",
	Long: `The screen sub-command loads every company in the data directory,
generates its reports and filters each requested cohort. Cohorts are named
with --sector and --industry; when neither is given every sector is screened.

For each cohort the period, unfiltered metrics, metrics and exclusions files
are written to the output directory and, when backblaze credentials are
configured, uploaded to the bucket under <cohort>/<run id>.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := log.Logger.WithContext(context.Background())

		check := healthcheck.FromConfig()
		if check != nil {
			if err := check.Start(); err != nil {
				log.Warn().Err(err).Msg("healthcheck start ping failed")
			}
		}

		startTime := time.Now()
		results, err := runScreen(ctx)
		if err != nil {
			if check != nil {
				if pingErr := check.Fail(err); pingErr != nil {
					log.Warn().Err(pingErr).Msg("healthcheck fail ping failed")
				}
			}
			log.Fatal().Err(err).Msg("screen failed")
		}

		runTime := time.Since(startTime)
		printSummary(results, runTime)

		if check != nil {
			msg := fmt.Sprintf("screened %d cohorts in %s", len(results), durafmt.Parse(runTime).LimitFirstN(2).String())
			if err := check.Success(msg); err != nil {
				log.Warn().Err(err).Msg("healthcheck success ping failed")
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringSliceVar(&sectors, "sector", nil, "sector to screen (repeatable)")
	screenCmd.Flags().StringSliceVar(&industries, "industry", nil, "industry to screen (repeatable)")

	screenCmd.Flags().String("output-dir", "", "directory reports are written to")
	if err := viper.BindPFlag("output.dir", screenCmd.Flags().Lookup("output-dir")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for output-dir failed")
	}

	screenCmd.Flags().StringSlice("format", nil, "report formats: csv, json, parquet")
	if err := viper.BindPFlag("output.formats", screenCmd.Flags().Lookup("format")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for format failed")
	}

	screenCmd.Flags().Bool("auto-filter", true, "apply the hard and outlier filters")
	if err := viper.BindPFlag("screen.auto_filter", screenCmd.Flags().Lookup("auto-filter")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for auto-filter failed")
	}
}

// runScreen loads the library, screens every cohort, exports the reports and
// uploads them when backblaze is configured
func runScreen(ctx context.Context) ([]*screen.Result, error) {
	formats, err := export.ParseFormats(viper.GetStringSlice("output.formats"))
	if err != nil {
		return nil, err
	}

	myLibrary, loadSummary, err := loadLibrary(ctx)
	if err != nil {
		return nil, err
	}
	log.Info().EmbedObject(loadSummary).Msg("library loaded")

	cohorts, err := selectCohorts(myLibrary, sectors, industries)
	if err != nil {
		return nil, err
	}

	screener := screen.New(screenConfig(), myLibrary)
	exporter := export.New(viper.GetString("output.dir"), formats)

	results := make([]*screen.Result, 0, len(cohorts))
	for _, item := range cohorts {
		result, err := screener.Screen(ctx, item.name, item.tickers)
		if err != nil {
			return results, err
		}

		written, err := exporter.Export(ctx, result)
		if err != nil {
			return results, err
		}

		if backblaze.Enabled() {
			if err := backblaze.Upload(ctx, written, path.Join(slug.Make(item.name), result.RunID.String())); err != nil {
				return results, err
			}
		}

		results = append(results, result)
	}

	return results, nil
}

// selectCohorts resolves sector and industry names to ticker lists. With no
// names every sector is a cohort.
func selectCohorts(myLibrary *library.Library, sectorNames, industryNames []string) ([]cohort, error) {
	if len(sectorNames) == 0 && len(industryNames) == 0 {
		sectorNames = myLibrary.Sectors()
	}

	cohorts := make([]cohort, 0, len(sectorNames)+len(industryNames))

	for _, name := range sectorNames {
		tickers, err := myLibrary.SectorTickers(name)
		if err != nil {
			return nil, err
		}
		cohorts = append(cohorts, cohort{name: name, tickers: tickers})
	}

	for _, name := range industryNames {
		tickers, err := myLibrary.IndustryTickers(name)
		if err != nil {
			return nil, err
		}
		cohorts = append(cohorts, cohort{name: name, tickers: tickers})
	}

	return cohorts, nil
}

func printSummary(results []*screen.Result, runTime time.Duration) {
	var sb strings.Builder
	p := message.NewPrinter(language.English)

	keyword := func(s string) string {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Render(s)
	}

	fmt.Fprintf(&sb, "%s\n\nRun time: %s\n",
		lipgloss.NewStyle().Bold(true).Render("SCREEN SUMMARY"),
		keyword(durafmt.Parse(runTime).LimitFirstN(2).String()),
	)

	for _, result := range results {
		fmt.Fprintf(&sb, "\n%s (%s)\n", lipgloss.NewStyle().Bold(true).Render(result.Cohort), result.RunID.String()[:8])
		fmt.Fprintf(&sb, "Companies: %s  Survivors: %s  Excluded: %s  Failed: %s\n",
			keyword(p.Sprintf("%d", len(result.Unfiltered))),
			keyword(p.Sprintf("%d", len(result.Metrics))),
			keyword(p.Sprintf("%d", len(result.Exclusions))),
			keyword(p.Sprintf("%d", len(result.Failures))),
		)
	}

	fmt.Println(
		lipgloss.NewStyle().
			Width(72).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2).
			Render(sb.String()),
	)
}
