package main

import (
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note permanently",
	Args:  noteIDArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := open()
		if err != nil {
			return err
		}
		out, err := c.Delete(cmd.Context(), parseID(args))
		if err != nil {
			return err
		}
		writeOut(cmd, out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
