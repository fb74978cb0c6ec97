package types

import "time"

// HTTPConfig holds HTTP settings for the fetch stage.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero is replaced by the CLI default.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with the request
	// (e.g. "anthology-export/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// OutputFormat selects the serialization written by the export.
type OutputFormat string

const (
	FormatCSV    OutputFormat = "csv"
	FormatJSON   OutputFormat = "json"
	FormatYAML   OutputFormat = "yaml"
	FormatSQLite OutputFormat = "sqlite"
)

// Extension returns the file extension used for the format.
func (f OutputFormat) Extension() string {
	if f == FormatSQLite {
		return "db"
	}
	return string(f)
}

// ExportConfig holds settings for one export run.
type ExportConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the raw-content root of the anthology XML data directory.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Homepage is the paper homepage template; "{path}" is replaced by the
	// paper's url element text.
	Homepage string `json:"homepage" yaml:"homepage"`

	// OutputDir is the directory the output file is written to (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Format selects csv, json, yaml, or sqlite output.
	Format OutputFormat `json:"format" yaml:"format"`
}
