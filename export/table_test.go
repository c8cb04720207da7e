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
package export_test

import (
	"bytes"
	"encoding/csv"
	"errors"

	"github.com/goccy/go-json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvscreen/export"
	"github.com/penny-vault/pvscreen/report"
)

var _ = Describe("Table", func() {
	Context("period table", func() {
		It("has the ticker then every period key", func() {
			table := export.PeriodTable([]*report.PeriodReport{period("AAA", 1), period("BBB", 2)})
			header := table.Header()
			Expect(header[0]).To(Equal("ticker"))
			Expect(header[1:]).To(Equal(report.PeriodReportKeys))
			Expect(table.Rows).To(HaveLen(2))
			Expect(table.Rows[1][1].Number.Or(0)).To(Equal(2.0))
		})
	})

	Context("metrics table", func() {
		It("puts identity fields first and warnings last", func() {
			rep := metrics("AAA", 1)
			rep.Warnings = "strong downward trend of eps"
			table := export.MetricsTable([]*report.MetricsReport{rep})

			header := table.Header()
			Expect(header[:4]).To(Equal([]string{"ticker", "country", "market_cap", "industry"}))
			Expect(header[len(header)-1]).To(Equal("warnings"))
			Expect(header).To(HaveLen(len(report.MetricsKeys) + 5))

			row := table.Rows[0]
			Expect(row[len(row)-1].Text).To(Equal("strong downward trend of eps"))
		})

		It("appends summary rows after the companies", func() {
			avg := metrics("average", 3)
			table := export.MetricsTable([]*report.MetricsReport{metrics("AAA", 1), metrics("BBB", 5)}, avg, nil)
			Expect(table.Rows).To(HaveLen(3))
			Expect(table.Rows[2][0].Text).To(Equal("average"))
		})
	})

	Context("csv", func() {
		It("writes nulls as empty cells", func() {
			table := export.MetricsTable([]*report.MetricsReport{metrics("AAA", 1.5)})
			buf := bytes.Buffer{}
			Expect(table.WriteCSV(&buf)).To(Succeed())

			records, err := csv.NewReader(&buf).ReadAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
			Expect(records[0]).To(Equal(table.Header()))
			Expect(records[1][0]).To(Equal("AAA"))
			Expect(records[1][2]).To(Equal("500"))
			Expect(records[1][4]).To(Equal(""))
			Expect(records[1][5]).To(Equal("1.5"))
		})
	})

	Context("json", func() {
		It("writes one object per row with null for missing numbers", func() {
			table := export.MetricsTable([]*report.MetricsReport{metrics("AAA", 1.5), metrics("BBB", 2)})
			buf := bytes.Buffer{}
			Expect(table.WriteJSON(&buf)).To(Succeed())

			var rows []map[string]any
			Expect(json.Unmarshal(buf.Bytes(), &rows)).To(Succeed())
			Expect(rows).To(HaveLen(2))
			Expect(rows[0]["ticker"]).To(Equal("AAA"))
			Expect(rows[0][report.MetricsKeys[0]]).To(BeNil())
			Expect(rows[1][report.MetricsKeys[1]]).To(Equal(2.0))
		})

		It("keeps column order", func() {
			table := export.PeriodTable([]*report.PeriodReport{period("AAA", 1)})
			buf := bytes.Buffer{}
			Expect(table.WriteJSON(&buf)).To(Succeed())
			Expect(buf.String()).To(HavePrefix(`[{"ticker":"AAA","` + report.PeriodReportKeys[0] + `":1`))
		})
	})

	Context("formats", func() {
		It("parses known formats case insensitively", func() {
			formats, err := export.ParseFormats([]string{"CSV", " json", "parquet"})
			Expect(err).NotTo(HaveOccurred())
			Expect(formats).To(Equal([]export.Format{export.CSV, export.JSON, export.Parquet}))
		})

		It("rejects unknown formats", func() {
			_, err := export.ParseFormats([]string{"csv", "xlsx"})
			Expect(errors.Is(err, export.ErrUnknownFormat)).To(BeTrue())
		})
	})
})
