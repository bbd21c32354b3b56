package main

import (
	"fmt"
	"strings"

	notebook "github.com/TimRka/Notes-manager-PL"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of notebook",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "notebook version %s\n", strings.TrimSpace(notebook.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
