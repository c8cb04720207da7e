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
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/penny-vault/pvscreen/library"
	"github.com/penny-vault/pvscreen/report"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/iter"
)

var (
	ErrUnknownTicker = errors.New("ticker not in library")
)

// Failure is a company whose reports could not be generated
type Failure struct {
	Ticker string
	Err    error
}

// Result is the outcome of screening one cohort
type Result struct {
	RunID  uuid.UUID
	Cohort string

	// Periods and Unfiltered hold the reports of every company in the cohort
	Periods    []*report.PeriodReport
	Unfiltered []*report.MetricsReport

	// Metrics holds the reports of the companies that survived the screen
	Metrics []*report.MetricsReport
	Stats   *GroupStats

	Exclusions []*Exclusion
	Failures   []*Failure
}

// Screener runs screens over companies stored in a library
type Screener struct {
	Config  Config
	Library *library.Library
}

func New(cfg Config, lib *library.Library) *Screener {
	return &Screener{
		Config:  cfg,
		Library: lib,
	}
}

type generated struct {
	ticker  string
	period  *report.PeriodReport
	metrics *report.MetricsReport
	err     error
}

// Screen generates the reports of every ticker in parallel, then filters the
// cohort. Reports are generated from companies that are read only for the
// duration of the screen.
func (screener *Screener) Screen(ctx context.Context, cohort string, tickers []string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:  uuid.New(),
		Cohort: cohort,
	}

	logger := zerolog.Ctx(ctx).With().Str("RunID", result.RunID.String()).Str("Cohort", cohort).Logger()

	workers := screener.Config.Workers
	if workers <= 0 {
		workers = 1
	}

	mapper := iter.Mapper[string, generated]{MaxGoroutines: workers}
	reports := mapper.Map(tickers, func(ticker *string) generated {
		return screener.generate(*ticker)
	})

	for _, gen := range reports {
		if gen.err != nil {
			logger.Error().Err(gen.err).Str("Ticker", gen.ticker).Msg("fail to generate company report")
			result.Failures = append(result.Failures, &Failure{Ticker: gen.ticker, Err: gen.err})
			continue
		}

		result.Periods = append(result.Periods, gen.period)
		result.Unfiltered = append(result.Unfiltered, gen.metrics)
	}

	if !screener.Config.AutoFilter {
		result.Stats = NewGroupStats(result.Unfiltered)
		result.Metrics = result.Unfiltered
		logger.Info().Int("NumCompanies", len(result.Metrics)).Msg("auto filter disabled; computed cohort statistics only")
		return result, nil
	}

	var survivors []*report.MetricsReport
	for _, metrics := range result.Unfiltered {
		if excl := screener.Config.HardFilter(metrics); excl != nil {
			result.exclude(logger, excl)
			continue
		}
		survivors = append(survivors, metrics)
	}

	result.Stats = NewGroupStats(survivors)

	for _, metrics := range survivors {
		if excl := result.Stats.OutlierFilter(metrics); excl != nil {
			result.exclude(logger, excl)
			continue
		}

		metrics.Warnings = Warnings(metrics)
		if metrics.Warnings != "" {
			logger.Warn().Str("Ticker", metrics.Ticker).Str("Warnings", metrics.Warnings).Msg("adverse trends")
		}

		result.Metrics = append(result.Metrics, metrics)
	}

	logger.Info().Int("NumCompanies", len(tickers)).Int("NumSurvivors", len(result.Metrics)).
		Int("NumExcluded", len(result.Exclusions)).Int("NumFailed", len(result.Failures)).Msg("screen complete")

	return result, nil
}

func (screener *Screener) generate(ticker string) generated {
	company, ok := screener.Library.Company(ticker)
	if !ok {
		return generated{ticker: ticker, err: fmt.Errorf("%w: %s", ErrUnknownTicker, ticker)}
	}

	period, metrics, err := report.Generate(company)
	return generated{
		ticker:  ticker,
		period:  period,
		metrics: metrics,
		err:     err,
	}
}

func (result *Result) exclude(logger zerolog.Logger, excl *Exclusion) {
	excl.RunID = result.RunID.String()
	logger.Info().Object("Exclusion", excl).Msg("filtered company")
	result.Exclusions = append(result.Exclusions, excl)
}
