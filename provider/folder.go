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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hako/durafmt"
	"github.com/klauspost/compress/gzip"
	"github.com/penny-vault/pvscreen/library"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/iter"
)

const (
	jsonExt   = ".json"
	gzJSONExt = ".json.gz"
)

// Folder loads one company record per file from a directory of .json and
// .json.gz files named after the ticker
type Folder struct {
	Dir     string
	Workers int
}

func (folder *Folder) Name() string {
	return "folder"
}

func (folder *Folder) Description() string {
	return fmt.Sprintf("company records stored as <TICKER>.json or <TICKER>.json.gz in %s", folder.Dir)
}

// Load decodes every record in the folder and adds it to the library.
// Records that fail to decode or validate are logged and skipped.
func (folder *Folder) Load(ctx context.Context, lib *library.Library) (*LoadSummary, error) {
	logger := zerolog.Ctx(ctx).With().Str("Dir", folder.Dir).Logger()
	start := time.Now()

	files, err := folder.discover()
	if err != nil {
		return nil, err
	}

	workers := folder.Workers
	if workers <= 0 {
		workers = 1
	}

	mapper := iter.Mapper[string, error]{MaxGoroutines: workers}
	errs := mapper.Map(files, func(path *string) error {
		return loadFile(ctx, lib, *path)
	})

	summary := &LoadSummary{
		NumFiles: len(files),
	}

	for idx, err := range errs {
		if err != nil {
			lib.RecordFailure()
			logger.Error().Err(err).Str("File", files[idx]).Msg("fail to load company file")
			continue
		}
		summary.NumLoaded++
	}

	lib.LoadedAt = time.Now()
	summary.Duration = time.Since(start)

	logger.Info().Int("NumLoaded", summary.NumLoaded).Int("NumFiles", summary.NumFiles).
		Str("RunTime", durafmt.Parse(summary.Duration).String()).Msg("loaded company data")

	return summary, nil
}

// discover lists the record files in the folder in sorted order
func (folder *Folder) discover() ([]string, error) {
	entries, err := os.ReadDir(folder.Dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read data folder %s: %w", folder.Dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasSuffix(name, jsonExt) || strings.HasSuffix(name, gzJSONExt) {
			files = append(files, filepath.Join(folder.Dir, name))
		}
	}

	sort.Strings(files)
	return files, nil
}

func loadFile(ctx context.Context, lib *library.Library, path string) error {
	raw, err := readFile(path)
	if err != nil {
		return err
	}

	company, err := DecodeCompany(TickerFromPath(path), raw)
	if err != nil {
		return err
	}

	return lib.Add(ctx, company)
}

func readFile(path string) ([]byte, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	if !strings.HasSuffix(path, gzJSONExt) {
		return io.ReadAll(fh)
	}

	gz, err := gzip.NewReader(fh)
	if err != nil {
		return nil, fmt.Errorf("cannot open gzip stream %s: %w", path, err)
	}
	defer gz.Close()

	return io.ReadAll(gz)
}

// TickerFromPath returns the file name without its .json or .json.gz suffix
func TickerFromPath(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, gzJSONExt)
	return strings.TrimSuffix(name, jsonExt)
}
