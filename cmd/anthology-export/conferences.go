package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/anthology-export/internal/locate"
)

var conferencesCmd = &cobra.Command{
	Use:   "conferences",
	Short: "List conferences with a legacy volume code",
	Long: fmt.Sprintf(`Conferences lists the conference mnemonics accepted for years up to %d
and the single-letter volume code each maps to. Later years accept any
conference name and use it verbatim.`, locate.CutoverYear),
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		for _, name := range locate.Conferences() {
			code, _ := locate.LegacyCode(name)
			fmt.Fprintf(w, "%-8s  %s\n", name, code)
		}
	},
}

func init() {
	rootCmd.AddCommand(conferencesCmd)
}
