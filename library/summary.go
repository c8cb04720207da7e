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
package library

import (
	"fmt"
	"strings"
	"time"

	"github.com/xeonx/timeago"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary returns a description of the library in markdown
func (myLibrary *Library) Summary() (string, error) {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	if _, err := builder.WriteString(fmt.Sprintf("# %s\n", myLibrary.Name)); err != nil {
		return "", err
	}

	if _, err := builder.WriteString("## Details\n\n"); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(fmt.Sprintf("Data directory: %s\n\n", myLibrary.DataDir)); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(p.Sprintf("  * Companies: %d\n", myLibrary.Len())); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(p.Sprintf("  * Failed Records: %d\n", myLibrary.NumFailed())); err != nil {
		return "", err
	}

	sectors := myLibrary.Sectors()
	industries := myLibrary.Industries()

	if _, err := builder.WriteString(p.Sprintf("  * Sectors: %d\n", len(sectors))); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(p.Sprintf("  * Industries: %d\n\n", len(industries))); err != nil {
		return "", err
	}

	if myLibrary.LoadedAt.Equal(time.Time{}) {
		if _, err := builder.WriteString("Loaded: Never\n\n"); err != nil {
			return "", err
		}
	} else {
		age := timeago.English.Format(myLibrary.LoadedAt)
		if _, err := builder.WriteString(fmt.Sprintf("Loaded: %s (%s)\n\n", age, myLibrary.LoadedAt.Local().Format("01/02/2006 15:04"))); err != nil {
			return "", err
		}
	}

	if _, err := builder.WriteString("## Sectors\n\n"); err != nil {
		return "", err
	}

	for _, sector := range sectors {
		tickers, err := myLibrary.SectorTickers(sector)
		if err != nil {
			return "", err
		}

		if _, err := builder.WriteString(p.Sprintf("  * %s (%d)\n", sector, len(tickers))); err != nil {
			return "", err
		}
	}

	if _, err := builder.WriteString("\n## Industries\n\n"); err != nil {
		return "", err
	}

	for _, industry := range industries {
		tickers, err := myLibrary.IndustryTickers(industry)
		if err != nil {
			return "", err
		}

		if _, err := builder.WriteString(p.Sprintf("  * %s (%d)\n", industry, len(tickers))); err != nil {
			return "", err
		}
	}

	return builder.String(), nil
}
