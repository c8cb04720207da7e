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
	"github.com/rs/zerolog"
)

type Stage string

const (
	HardFilterStage Stage = "hard_filter"
	OutlierStage    Stage = "outlier"
)

// Exclusion records why a company was removed from a screen run. Threshold and
// Value are null when the rule does not compare numbers.
type Exclusion struct {
	RunID     string     `csv:"run_id" json:"run_id"`
	Ticker    string     `csv:"ticker" json:"ticker"`
	Stage     Stage      `csv:"stage" json:"stage"`
	Field     string     `csv:"field" json:"field"`
	Reason    string     `csv:"reason" json:"reason"`
	Threshold data.Float `csv:"threshold" json:"threshold"`
	Value     data.Float `csv:"value" json:"value"`
}

func (excl *Exclusion) MarshalZerologObject(e *zerolog.Event) {
	e.Str("RunID", excl.RunID)
	e.Str("Ticker", excl.Ticker)
	e.Str("Stage", string(excl.Stage))
	e.Str("Field", excl.Field)
	e.Str("Reason", excl.Reason)
	e.Str("Threshold", excl.Threshold.String())
	e.Str("Value", excl.Value.String())
}
