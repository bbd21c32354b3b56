package main

import (
	"github.com/TimRka/Notes-manager-PL/pkg/core"
	"github.com/spf13/cobra"
)

var (
	editTitle    string
	editContent  string
	editCategory string
	editPriority string
	editTags     []string
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit fields of a note",
	Long:  `Edit changes only the fields given as flags. Passing --tags "" clears the tags.`,
	Args:  noteIDArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := open()
		if err != nil {
			return err
		}

		var in core.EditInput
		flags := cmd.Flags()
		if flags.Changed("title") {
			in.Title = &editTitle
		}
		if flags.Changed("content") {
			in.Content = &editContent
		}
		if flags.Changed("category") {
			in.Category = &editCategory
		}
		if flags.Changed("priority") {
			in.Priority = &editPriority
		}
		if flags.Changed("tags") {
			in.Tags = []string{}
			for _, t := range editTags {
				if t != "" {
					in.Tags = append(in.Tags, t)
				}
			}
		}

		out, err := c.Edit(cmd.Context(), parseID(args), in)
		if err != nil {
			return err
		}
		writeOut(cmd, out)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVar(&editContent, "content", "", "New content")
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "New category")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "New priority")
	editCmd.Flags().StringSliceVarP(&editTags, "tags", "t", nil, "New tags, replacing the old ones")
	rootCmd.AddCommand(editCmd)
}
