package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/anthology-export/internal/anthology"
	"github.com/pdiddy/anthology-export/internal/extract"
	"github.com/pdiddy/anthology-export/internal/httputil"
	"github.com/pdiddy/anthology-export/internal/locate"
	"github.com/pdiddy/anthology-export/internal/output"
	"github.com/pdiddy/anthology-export/pkg/types"
)

const (
	defaultConference = "acl"
	defaultYear       = 2021
	defaultUserAgent  = "anthology-export/0.1"
)

func init() {
	f := rootCmd.Flags()
	f.String("format", string(types.FormatCSV), "output format: csv, json, yaml, or sqlite")
	f.String("output-dir", ".", "directory for the output file")
	f.Duration("timeout", 0, "HTTP request timeout (default 60s)")
	f.String("homepage", extract.DefaultHomepage, "paper homepage template; {path} is replaced by the url element")
	f.String("user-agent", defaultUserAgent, "User-Agent header for the data request")

	for _, key := range []string{"format", "output-dir", "timeout", "homepage", "user-agent"} {
		viper.BindPFlag(key, f.Lookup(key))
	}
}

// selector reads the conference and year from flags, config, or env.
func selector() locate.Selector {
	return locate.Selector{
		Conference: viper.GetString("conference"),
		Year:       viper.GetInt("year"),
	}
}

// exportConfig resolves the export settings from flags, config, or env.
func exportConfig() (types.ExportConfig, error) {
	format, err := output.ParseFormat(viper.GetString("format"))
	if err != nil {
		return types.ExportConfig{}, err
	}

	timeout := viper.GetDuration("timeout")
	if timeout <= 0 {
		timeout = httputil.DefaultTimeout
	}

	return types.ExportConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: viper.GetString("user-agent"),
		},
		BaseURL:   viper.GetString("base-url"),
		Homepage:  viper.GetString("homepage"),
		OutputDir: viper.GetString("output-dir"),
		Format:    format,
	}, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := exportConfig()
	if err != nil {
		return err
	}
	sel := selector()

	client := httputil.NewClient(cfg.Timeout)

	start := time.Now()
	res, err := anthology.Export(cmd.Context(), client, sel, cfg, os.Stderr)
	if err != nil {
		return fmt.Errorf("exporting %s: %w", sel, err)
	}
	fmt.Fprintf(os.Stderr, "%d papers from %s in %s\n", len(res.Records), sel, time.Since(start).Round(time.Millisecond))
	fmt.Fprintln(cmd.OutOrStdout(), res.Path)
	return nil
}
