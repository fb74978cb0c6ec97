package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/anthology-export/internal/locate"
)

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the data URL for a conference and year without fetching it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := locate.Locator{BaseURL: viper.GetString("base-url")}.Locate(selector())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), u)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(urlCmd)
}
