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
package provider_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvscreen/library"
	"github.com/penny-vault/pvscreen/provider"
)

var _ = Describe("Folder", func() {
	It("loads every valid record and skips the rest", func() {
		lib := library.New("test", "testdata")
		folder := &provider.Folder{Dir: "testdata", Workers: 2}

		summary, err := folder.Load(context.Background(), lib)
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.NumFiles).To(Equal(5))
		Expect(summary.NumLoaded).To(Equal(3))
		Expect(summary.NumFailed()).To(Equal(2))

		Expect(lib.Tickers()).To(Equal([]string{"AAPL", "MSFT", "XOM"}))
		Expect(lib.NumFailed()).To(Equal(2))
		Expect(lib.LoadedAt.IsZero()).To(BeFalse())

		tickers, err := lib.SectorTickers("computer_and_technology")
		Expect(err).NotTo(HaveOccurred())
		Expect(tickers).To(Equal([]string{"AAPL", "MSFT"}))
	})

	It("sorts string years from compressed records", func() {
		lib := library.New("test", "testdata")
		folder := &provider.Folder{Dir: "testdata", Workers: 1}

		_, err := folder.Load(context.Background(), lib)
		Expect(err).NotTo(HaveOccurred())

		msft, ok := lib.Company("MSFT")
		Expect(ok).To(BeTrue())
		Expect(msft.Price.Years[0]).To(Equal("2021"))
		Expect(msft.Price.Latest("year_close").Or(0)).To(Equal(31.0))
	})

	It("fails when the folder does not exist", func() {
		folder := &provider.Folder{Dir: "testdata/missing"}
		_, err := folder.Load(context.Background(), library.New("test", "testdata/missing"))
		Expect(err).To(HaveOccurred())
	})

	It("is listed among the providers", func() {
		Expect(provider.All("testdata", 1)).To(HaveKey("folder"))
	})
})
