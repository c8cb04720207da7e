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
	"bytes"

	"github.com/goccy/go-json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvscreen/pkginfo"
)

var _ = Describe("Version command", func() {
	It("prints only the version number when short", func() {
		buf := bytes.Buffer{}
		Expect(printVersion(&buf, versionOptions{short: true})).To(Succeed())
		Expect(buf.String()).To(Equal("dev\n"))
	})

	It("prints the build stamp", func() {
		buf := bytes.Buffer{}
		Expect(printVersion(&buf, versionOptions{})).To(Succeed())
		Expect(buf.String()).To(HavePrefix("pvscreen dev "))
		Expect(buf.String()).To(ContainSubstring("Built with: go"))
	})

	It("prints json", func() {
		buf := bytes.Buffer{}
		Expect(printVersion(&buf, versionOptions{asJSON: true})).To(Succeed())

		info := pkginfo.Info{}
		Expect(json.Unmarshal(buf.Bytes(), &info)).To(Succeed())
		Expect(info.Name).To(Equal("pvscreen"))
		Expect(info.Version).To(Equal("dev"))
		Expect(info.Deps).To(BeEmpty())
	})
})
