// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output serializes Records to delimited text, JSON, YAML, or a
// SQLite database.
package output

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/anthology-export/pkg/types"
)

// ParseFormat validates a format name from flags or config.
func ParseFormat(s string) (types.OutputFormat, error) {
	switch f := types.OutputFormat(s); f {
	case types.FormatCSV, types.FormatJSON, types.FormatYAML, types.FormatSQLite:
		return f, nil
	case "":
		return types.FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want csv, json, yaml, or sqlite)", s)
	}
}

// WriteCSV writes a header row followed by one row per record. Fields are
// quoted when they contain the delimiter, quotes, or line breaks.
func WriteCSV(w io.Writer, records []types.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(types.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads records written by WriteCSV. The header must match
// types.Columns exactly.
func ReadCSV(r io.Reader) ([]types.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(types.Columns)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading header: empty input")
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if !slices.Equal(header, types.Columns) {
		return nil, fmt.Errorf("unexpected header %q, want %q", header, types.Columns)
	}

	records := make([]types.Record, 0)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		records = append(records, types.RecordFromRow(row))
	}
	return records, nil
}

// WriteJSON writes records as an indented JSON array.
func WriteJSON(w io.Writer, records []types.Record) error {
	if records == nil {
		records = []types.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WriteYAML writes records as a YAML sequence.
func WriteYAML(w io.Writer, records []types.Record) error {
	if records == nil {
		records = []types.Record{}
	}
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(records); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Write serializes records to w in a text format. SQLite is not a stream
// format; use Store for it.
func Write(w io.Writer, format types.OutputFormat, records []types.Record) error {
	switch format {
	case types.FormatCSV, "":
		return WriteCSV(w, records)
	case types.FormatJSON:
		return WriteJSON(w, records)
	case types.FormatYAML:
		return WriteYAML(w, records)
	default:
		return fmt.Errorf("format %q cannot be streamed", format)
	}
}

// WriteFile writes records to path in a text format. Output goes to a
// temporary file in the same directory that is renamed over path only
// after every record is written, so a failure leaves no partial file.
func WriteFile(path string, format types.OutputFormat, records []types.Record) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	writeErr := Write(tmpFile, format, records)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", format, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
