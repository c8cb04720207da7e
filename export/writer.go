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
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/goccy/go-json"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

type Format string

const (
	CSV     Format = "csv"
	JSON    Format = "json"
	Parquet Format = "parquet"
)

var (
	ErrUnknownFormat = errors.New("unknown export format")
)

// ParseFormats validates a list of format names
func ParseFormats(names []string) ([]Format, error) {
	formats := make([]Format, 0, len(names))
	for _, name := range names {
		format := Format(strings.ToLower(strings.TrimSpace(name)))
		switch format {
		case CSV, JSON, Parquet:
			formats = append(formats, format)
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
		}
	}

	return formats, nil
}

// WriteCSV writes the header and every row; null numbers are empty cells
func (table *Table) WriteCSV(w io.Writer) error {
	csvWriter := gocsv.DefaultCSVWriter(w)
	if err := csvWriter.Write(table.Header()); err != nil {
		return err
	}

	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for idx, col := range table.Columns {
			record[idx] = row[idx].String(col.Kind)
		}

		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// WriteJSON writes the rows as an array of objects with keys in column
// order; null numbers are JSON null
func (table *Table) WriteJSON(w io.Writer) error {
	buf := bytes.Buffer{}
	buf.WriteByte('[')

	for rowIdx, row := range table.Rows {
		if rowIdx > 0 {
			buf.WriteByte(',')
		}

		obj, err := table.rowJSON(row)
		if err != nil {
			return err
		}
		buf.Write(obj)
	}

	buf.WriteString("]\n")
	_, err := w.Write(buf.Bytes())
	return err
}

func (table *Table) rowJSON(row []Cell) ([]byte, error) {
	buf := bytes.Buffer{}
	buf.WriteByte('{')

	for idx, col := range table.Columns {
		if idx > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(col.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var val []byte
		if col.Kind == TextColumn {
			val, err = json.Marshal(row[idx].Text)
		} else {
			val, err = json.Marshal(row[idx].Number)
		}
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type parquetField struct {
	Tag string `json:"Tag"`
}

type parquetSchema struct {
	Tag    string         `json:"Tag"`
	Fields []parquetField `json:"Fields"`
}

func (table *Table) schemaJSON() (string, error) {
	schema := parquetSchema{
		Tag: "name=parquet_go_root, repetitiontype=REQUIRED",
	}

	for _, col := range table.Columns {
		tag := fmt.Sprintf("name=%s, type=DOUBLE, repetitiontype=OPTIONAL", col.Name)
		if col.Kind == TextColumn {
			tag = fmt.Sprintf("name=%s, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL", col.Name)
		}
		schema.Fields = append(schema.Fields, parquetField{Tag: tag})
	}

	out, err := json.Marshal(schema)
	return string(out), err
}

// WriteParquet writes the table to a parquet file at fn
func (table *Table) WriteParquet(fn string) error {
	schema, err := table.schemaJSON()
	if err != nil {
		return err
	}

	fh, err := local.NewLocalFileWriter(fn)
	if err != nil {
		return fmt.Errorf("cannot create parquet file %s: %w", fn, err)
	}
	defer fh.Close()

	pw, err := writer.NewJSONWriter(schema, fh, 4)
	if err != nil {
		return fmt.Errorf("cannot create parquet writer: %w", err)
	}

	pw.RowGroupSize = 128 * 1024 * 1024 // 128M
	pw.PageSize = 8 * 1024              // 8k
	pw.CompressionType = parquet.CompressionCodec_ZSTD

	for _, row := range table.Rows {
		obj, err := table.rowJSON(row)
		if err != nil {
			return err
		}

		if err := pw.Write(string(obj)); err != nil {
			return fmt.Errorf("parquet write failed for %s: %w", row[0].Text, err)
		}
	}

	return pw.WriteStop()
}
