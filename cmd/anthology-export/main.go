// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the anthology-export CLI.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd exports one conference/year when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "anthology-export",
	Short: "Export ACL Anthology paper metadata to CSV",
	Long: `anthology-export downloads the ACL Anthology XML data file for a conference
and year and writes one row per paper (Title, Author, Abstract, Url) to
{conference}.{year}.csv.

Years up to 2019 use the legacy single-letter volume codes; run
"anthology-export conferences" to list the conferences that have one.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runExport,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./anthology-export.yaml or ~/.config/anthology-export/anthology-export.yaml)")
	pf.String("conference", defaultConference, "conference mnemonic (e.g. acl, emnlp, naacl)")
	pf.Int("year", defaultYear, "publication year")
	pf.String("base-url", "", "anthology XML data root (default: GitHub raw content)")

	for _, key := range []string{"conference", "year", "base-url"} {
		viper.BindPFlag(key, pf.Lookup(key))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("anthology-export")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "anthology-export"))
		}
	}

	viper.SetEnvPrefix("ANTHOLOGY_EXPORT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
