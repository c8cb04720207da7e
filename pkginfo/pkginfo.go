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
package pkginfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// Set at build time with -ldflags "-X"
var (
	BuildDate  string
	CommitHash string
	Version    string
)

const name = "pvscreen"

// Info describes the running binary
type Info struct {
	Name       string   `json:"name"`
	Version    string   `json:"version"`
	BuildDate  string   `json:"build_date"`
	CommitHash string   `json:"commit"`
	GoVersion  string   `json:"go_version"`
	Platform   string   `json:"platform"`
	Deps       []string `json:"deps,omitempty"`
}

// BuildInfo collects the build stamp; deps are only listed when withDeps is
// set and limited to paths containing filter
func BuildInfo(withDeps bool, filter string) Info {
	info := Info{
		Name:       name,
		Version:    orDev(Version),
		BuildDate:  BuildDate,
		CommitHash: CommitHash,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}

	if withDeps {
		info.Deps = DependencyList(filter)
	}

	return info
}

// UserAgent identifies pvscreen in outgoing requests
func UserAgent() string {
	return fmt.Sprintf("%s/%s", name, orDev(Version))
}

func BuildVersionString() string {
	info := BuildInfo(false, "")

	return fmt.Sprintf(`%s %s %s

Build Date: %s
Commit: %s
Built with: %s`, info.Name, info.Version, info.Platform, info.BuildDate, info.CommitHash, info.GoVersion)
}

// DependencyList returns module=version pairs of every dependency compiled
// into the binary, optionally limited to paths containing filter
func DependencyList(filter string) []string {
	var deps []string

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		log.Error().Msg("could not get package build info")
		return deps
	}

	for _, dep := range buildInfo.Deps {
		if filter != "" && !strings.Contains(dep.Path, filter) {
			continue
		}
		deps = append(deps, fmt.Sprintf("%s=%q", dep.Path, dep.Version))
	}

	sort.Strings(deps)

	return deps
}

func orDev(version string) string {
	if version == "" {
		return "dev"
	}

	return version
}
