package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the state of the store as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := open()
		if err != nil {
			return err
		}
		// State reports counters gathered on load.
		if _, err := c.Service().Repository().LoadAll(cmd.Context()); err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(c.Service().State())
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
