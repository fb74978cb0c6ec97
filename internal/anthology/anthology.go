// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package anthology runs the export pipeline: locate the volume XML for a
// conference and year, fetch it, extract one Record per paper, and write
// the records to the output file.
//
// The stages run once, in order. Any failure aborts the run before the
// output is written, and the returned error names the failed stage.
package anthology

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/pdiddy/anthology-export/internal/extract"
	"github.com/pdiddy/anthology-export/internal/httputil"
	"github.com/pdiddy/anthology-export/internal/locate"
	"github.com/pdiddy/anthology-export/internal/output"
	"github.com/pdiddy/anthology-export/pkg/types"
)

// Result describes a completed export.
type Result struct {
	// URL is the data file that was fetched.
	URL string

	// Path is the output file written.
	Path string

	// Records holds the extracted records in document order.
	Records []types.Record
}

// OutputPath returns where Export writes for sel under cfg.
func OutputPath(sel locate.Selector, cfg types.ExportConfig) string {
	dir := cfg.OutputDir
	if dir == "" {
		dir = "."
	}
	format := cfg.Format
	if format == "" {
		format = types.FormatCSV
	}
	return filepath.Join(dir, locate.OutputName(sel, format.Extension()))
}

// Export runs the pipeline for sel, writing progress lines to w.
func Export(ctx context.Context, client *http.Client, sel locate.Selector, cfg types.ExportConfig, w io.Writer) (Result, error) {
	url, err := locate.Locator{BaseURL: cfg.BaseURL}.Locate(sel)
	if err != nil {
		return Result{}, fmt.Errorf("locate: %w", err)
	}
	fmt.Fprintf(w, "URL: %s\n", url)

	data, err := httputil.Fetch(ctx, client, url, cfg.UserAgent)
	if err != nil {
		return Result{}, fmt.Errorf("fetch: %w", err)
	}
	fmt.Fprintf(w, "fetched %d bytes\n", len(data))

	records, err := extract.Extractor{Homepage: cfg.Homepage}.Records(data)
	if err != nil {
		return Result{}, fmt.Errorf("extract: %w", err)
	}
	fmt.Fprintf(w, "extracted %d records\n", len(records))

	path := OutputPath(sel, cfg)
	if err := write(ctx, path, sel, cfg.Format, records); err != nil {
		return Result{}, fmt.Errorf("write: %w", err)
	}
	fmt.Fprintf(w, "wrote %s\n", path)

	return Result{URL: url, Path: path, Records: records}, nil
}

func write(ctx context.Context, path string, sel locate.Selector, format types.OutputFormat, records []types.Record) error {
	if format != types.FormatSQLite {
		return output.WriteFile(path, format, records)
	}

	store, err := output.OpenStore(path)
	if err != nil {
		return err
	}
	if err := store.Replace(ctx, sel, records); err != nil {
		store.Close()
		return err
	}
	return store.Close()
}
