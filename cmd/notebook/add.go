package main

import (
	"github.com/TimRka/Notes-manager-PL/pkg/core"
	"github.com/spf13/cobra"
)

var (
	addCategory string
	addPriority string
	addTags     []string
)

var addCmd = &cobra.Command{
	Use:   "add [title] [content]",
	Short: "Add a new note",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := open()
		if err != nil {
			return err
		}

		in := core.AddInput{
			Title:    args[0],
			Category: addCategory,
			Priority: addPriority,
			Tags:     addTags,
		}
		if len(args) > 1 {
			in.Content = args[1]
		}

		out, err := c.Add(cmd.Context(), in)
		if err != nil {
			return err
		}
		writeOut(cmd, out)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category: work, personal, study, shopping, ideas, other (default other)")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Priority: low, medium, high (default medium)")
	addCmd.Flags().StringSliceVarP(&addTags, "tags", "t", nil, "Tags (repeat the flag or separate with commas)")
	rootCmd.AddCommand(addCmd)
}
