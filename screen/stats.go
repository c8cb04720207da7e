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
	"github.com/penny-vault/pvscreen/data"
	"github.com/penny-vault/pvscreen/report"
	"gonum.org/v1/gonum/stat"
)

const (
	AverageTicker = "average"
	StdTicker     = "std"
)

// GroupStats holds the field-wise mean and population standard deviation of
// a cohort's metrics reports. Nulls are left out of both reductions and a
// field without any values has null statistics.
type GroupStats struct {
	Average *report.MetricsReport
	Std     *report.MetricsReport
}

func NewGroupStats(reports []*report.MetricsReport) *GroupStats {
	stats := &GroupStats{
		Average: &report.MetricsReport{Ticker: AverageTicker, Values: report.NewReport()},
		Std:     &report.MetricsReport{Ticker: StdTicker, Values: report.NewReport()},
	}

	stats.Average.MarketCap, stats.Std.MarketCap = reduce(reports, report.MarketCapField)
	for _, key := range report.MetricsKeys {
		average, std := reduce(reports, key)
		stats.Average.Values.Set(key, average)
		stats.Std.Values.Set(key, std)
	}

	return stats
}

func reduce(reports []*report.MetricsReport, key string) (data.Float, data.Float) {
	series := make(data.Series, len(reports))
	for idx, rep := range reports {
		series[idx] = rep.Get(key)
	}

	values := series.Values()
	if len(values) == 0 {
		return data.Null, data.Null
	}

	mean, std := stat.PopMeanStdDev(values, nil)
	return data.Some(mean), data.Some(std)
}
