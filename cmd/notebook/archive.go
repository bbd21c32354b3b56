package main

import (
	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive [id]",
	Short: "Move a note to the archive",
	Args:  noteIDArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := open()
		if err != nil {
			return err
		}
		out, err := c.Archive(cmd.Context(), parseID(args))
		if err != nil {
			return err
		}
		writeOut(cmd, out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
}
