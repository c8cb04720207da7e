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
package provider

import (
	"context"
	"time"

	"github.com/penny-vault/pvscreen/library"
	"github.com/rs/zerolog"
)

// Provider delivers company records into a library
type Provider interface {
	Name() string
	Description() string
	Load(context.Context, *library.Library) (*LoadSummary, error)
}

// LoadSummary describes the outcome of a Load
type LoadSummary struct {
	NumFiles  int
	NumLoaded int
	Duration  time.Duration
}

func (summary *LoadSummary) NumFailed() int {
	return summary.NumFiles - summary.NumLoaded
}

func (summary *LoadSummary) MarshalZerologObject(e *zerolog.Event) {
	e.Int("NumFiles", summary.NumFiles)
	e.Int("NumLoaded", summary.NumLoaded)
	e.Dur("Duration", summary.Duration)
}

// All returns the providers available for the given configuration
func All(dataDir string, workers int) map[string]Provider {
	folder := &Folder{Dir: dataDir, Workers: workers}
	return map[string]Provider{
		folder.Name(): folder,
	}
}
