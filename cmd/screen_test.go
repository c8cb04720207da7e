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
	"errors"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/penny-vault/pvscreen/export"
	"github.com/penny-vault/pvscreen/library"
	"github.com/penny-vault/pvscreen/screen"
)

var _ = Describe("Screen command", func() {
	var outDir string

	BeforeEach(func() {
		viper.Reset()
		setDefaults()

		outDir = GinkgoT().TempDir()
		viper.Set("data.dir", filepath.Join("..", "provider", "testdata"))
		viper.Set("output.dir", outDir)

		sectors = nil
		industries = nil
	})

	AfterEach(func() {
		viper.Reset()
		setDefaults()
	})

	It("reads the screen defaults", func() {
		Expect(screenConfig()).To(Equal(screen.DefaultConfig()))
	})

	It("splits comma separated lists", func() {
		Expect(splitList(" CN, hk ,,ru")).To(Equal([]string{"cn", "hk", "ru"}))
		Expect(splitList("")).To(BeEmpty())
	})

	It("writes the effective configuration as toml", func() {
		viper.Set("screen.market_cap_floor", 250.0)
		out, err := currentConfig().Marshal()
		Expect(err).NotTo(HaveOccurred())

		parsed := map[string]map[string]any{}
		Expect(toml.Unmarshal(out, &parsed)).To(Succeed())
		Expect(parsed["screen"]["market_cap_floor"]).To(Equal(250.0))
		Expect(parsed["output"]["formats"]).To(Equal([]any{"csv"}))
		Expect(parsed["log"]["level"]).To(Equal("info"))
		Expect(parsed["screen"]["current_pe_below_average"]).To(Equal(true))
	})

	Context("cohorts", func() {
		var myLibrary *library.Library

		BeforeEach(func() {
			var err error
			myLibrary, _, err = loadLibrary(context.Background())
			Expect(err).NotTo(HaveOccurred())
		})

		It("uses every sector when none is named", func() {
			cohorts, err := selectCohorts(myLibrary, nil, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(cohorts).To(HaveLen(2))
			Expect(cohorts[0]).To(Equal(cohort{name: "computer_and_technology", tickers: []string{"AAPL", "MSFT"}}))
			Expect(cohorts[1]).To(Equal(cohort{name: "oils_energy", tickers: []string{"XOM"}}))
		})

		It("resolves named industries", func() {
			cohorts, err := selectCohorts(myLibrary, nil, []string{"computer_software"})
			Expect(err).NotTo(HaveOccurred())
			Expect(cohorts).To(Equal([]cohort{{name: "computer_software", tickers: []string{"MSFT"}}}))
		})

		It("rejects unknown sectors", func() {
			_, err := selectCohorts(myLibrary, []string{"utilities"}, nil)
			Expect(errors.Is(err, library.ErrSectorNotFound)).To(BeTrue())
		})
	})

	It("screens and exports every sector", func() {
		results, err := runScreen(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(2))

		for _, result := range results {
			for _, kind := range []string{export.PeriodKind, export.UnfilteredMetricsKind, export.MetricsKind, export.ExclusionsKind} {
				Expect(filepath.Join(outDir, export.FileName(result.Cohort, kind, export.CSV))).To(BeAnExistingFile())
			}
		}
	})

	It("fails on an unknown format before loading", func() {
		viper.Set("output.formats", []string{"xlsx"})
		_, err := runScreen(context.Background())
		Expect(errors.Is(err, export.ErrUnknownFormat)).To(BeTrue())
	})
})
