package main

import (
	"github.com/spf13/cobra"
)

var searchScope string

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search notes by text",
	Long:  `Search finds notes containing the term, ignoring case, in the title, the content, the tags or all of them.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := open()
		if err != nil {
			return err
		}
		out, err := c.Search(cmd.Context(), args[0], searchScope)
		if err != nil {
			return err
		}
		writeOut(cmd, out)
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchScope, "in", "all", "Where to search: title, content, tags or all")
	rootCmd.AddCommand(searchCmd)
}
