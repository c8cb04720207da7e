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
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/goccy/go-json"
	"github.com/gosimple/slug"
	"github.com/penny-vault/pvscreen/report"
	"github.com/penny-vault/pvscreen/screen"
	"github.com/rs/zerolog"
)

const (
	PeriodKind            = "period"
	UnfilteredMetricsKind = "metrics-unfiltered"
	MetricsKind           = "metrics"
	ExclusionsKind        = "exclusions"
)

// Exporter writes the reports of a screen run to Dir in every format listed
// in Formats
type Exporter struct {
	Dir     string
	Formats []Format
}

func New(dir string, formats []Format) *Exporter {
	return &Exporter{
		Dir:     dir,
		Formats: formats,
	}
}

// FileName returns the output file name for cohort, e.g. "oil-gas-metrics.csv"
func FileName(cohort, kind string, format Format) string {
	return fmt.Sprintf("%s-%s.%s", slug.Make(cohort), kind, format)
}

// Export writes the period, unfiltered metrics, metrics and exclusions files
// and returns the paths of everything written
func (exporter *Exporter) Export(ctx context.Context, result *screen.Result) ([]string, error) {
	logger := zerolog.Ctx(ctx).With().Str("RunID", result.RunID.String()).Str("Cohort", result.Cohort).Logger()

	if err := os.MkdirAll(exporter.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create output directory %s: %w", exporter.Dir, err)
	}

	var summary []*report.MetricsReport
	if result.Stats != nil {
		summary = append(summary, result.Stats.Average, result.Stats.Std)
	}

	tables := []struct {
		kind  string
		table *Table
	}{
		{PeriodKind, PeriodTable(result.Periods)},
		{UnfilteredMetricsKind, MetricsTable(result.Unfiltered)},
		{MetricsKind, MetricsTable(result.Metrics, summary...)},
	}

	written := make([]string, 0, len(exporter.Formats)*(len(tables)+1))

	for _, format := range exporter.Formats {
		for _, item := range tables {
			if err := ctx.Err(); err != nil {
				return written, err
			}

			fn := filepath.Join(exporter.Dir, FileName(result.Cohort, item.kind, format))
			if err := writeTable(item.table, fn, format); err != nil {
				return written, err
			}

			logger.Info().Str("FileName", fn).Int("NumRows", len(item.table.Rows)).Msg("wrote report")
			written = append(written, fn)
		}

		fn := filepath.Join(exporter.Dir, FileName(result.Cohort, ExclusionsKind, format))
		if err := writeExclusions(result.Exclusions, fn, format); err != nil {
			return written, err
		}

		logger.Info().Str("FileName", fn).Int("NumExcluded", len(result.Exclusions)).Msg("wrote exclusions")
		written = append(written, fn)
	}

	return written, nil
}

func writeTable(table *Table, fn string, format Format) error {
	if format == Parquet {
		return table.WriteParquet(fn)
	}

	fh, err := os.Create(fn)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", fn, err)
	}
	defer fh.Close()

	switch format {
	case CSV:
		err = table.WriteCSV(fh)
	case JSON:
		err = table.WriteJSON(fh)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	if err != nil {
		return fmt.Errorf("write %s failed: %w", fn, err)
	}

	return nil
}

func writeExclusions(exclusions []*screen.Exclusion, fn string, format Format) error {
	if exclusions == nil {
		exclusions = []*screen.Exclusion{}
	}

	if format == Parquet {
		return ExclusionTable(exclusions).WriteParquet(fn)
	}

	var (
		out []byte
		err error
	)

	switch format {
	case CSV:
		var str string
		str, err = gocsv.MarshalString(&exclusions)
		out = []byte(str)
	case JSON:
		out, err = json.Marshal(exclusions)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	if err != nil {
		return fmt.Errorf("marshal exclusions failed: %w", err)
	}

	return os.WriteFile(fn, out, 0o644)
}

// ExclusionTable flattens exclusions into a table
func ExclusionTable(exclusions []*screen.Exclusion) *Table {
	table := &Table{
		Columns: []Column{
			{Name: "run_id", Kind: TextColumn},
			{Name: "ticker", Kind: TextColumn},
			{Name: "stage", Kind: TextColumn},
			{Name: "field", Kind: TextColumn},
			{Name: "reason", Kind: TextColumn},
			{Name: "threshold", Kind: NumberColumn},
			{Name: "value", Kind: NumberColumn},
		},
	}

	for _, excl := range exclusions {
		table.Rows = append(table.Rows, []Cell{
			{Text: excl.RunID},
			{Text: excl.Ticker},
			{Text: string(excl.Stage)},
			{Text: excl.Field},
			{Text: excl.Reason},
			{Number: excl.Threshold},
			{Number: excl.Value},
		})
	}

	return table
}
