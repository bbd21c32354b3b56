package main

import (
	"github.com/TimRka/Notes-manager-PL/pkg/core"
	"github.com/spf13/cobra"
)

type listFlags struct {
	category string
	priority string
	status   string
	full     bool
}

var listOpts listFlags

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, active ones by default",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, listOpts)
	},
}

func runList(cmd *cobra.Command, f listFlags) error {
	c, err := open()
	if err != nil {
		return err
	}

	opts := core.ListOptions{
		Category: f.category,
		Priority: f.priority,
		Status:   f.status,
	}
	out, err := c.List(cmd.Context(), opts, f.full)
	if err != nil {
		return err
	}
	writeOut(cmd, out)
	return nil
}

func init() {
	listCmd.Flags().StringVarP(&listOpts.category, "category", "c", "", "Filter by category")
	listCmd.Flags().StringVarP(&listOpts.priority, "priority", "p", "", "Filter by priority")
	listCmd.Flags().StringVarP(&listOpts.status, "status", "s", "", "Filter by status: active, archived or all (default active)")
	listCmd.Flags().BoolVar(&listOpts.full, "full", false, "Print the full text of long notes")
	rootCmd.AddCommand(listCmd)
}
