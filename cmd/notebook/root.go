package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	notebook "github.com/TimRka/Notes-manager-PL"
	"github.com/TimRka/Notes-manager-PL/pkg/commands"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	configPath  string
	storePath   string
	adapterName string

	cfg       *notebook.Config
	cmds      *commands.Commands
	logCloser io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notebook",
	Short: "A personal note manager for the terminal",
	Long: `Notebook keeps categorized, prioritized and tagged notes in a JSON or YAML
file (optionally versioned with Git) or in an embedded SQLite database.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A .env file in the working directory may carry NOTEBOOK_CONFIG.
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}

		c, err := notebook.ResolveConfig(configPath)
		if err != nil {
			return err
		}
		cfg = c

		logger, closer := notebook.NewLogger(cfg, os.Stderr, verbose)
		slog.SetDefault(logger)
		logCloser = closer
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		defer logCloser.Close()
		if cmds == nil {
			return nil
		}
		return cmds.Service().Repository().Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cmd.Help(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return runList(cmd, listFlags{})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// open builds the command layer from the resolved config and the flag overrides.
func open() (*commands.Commands, error) {
	if cmds != nil {
		return cmds, nil
	}

	path := cfg.StorePath()
	if storePath != "" {
		path = storePath
	}
	if adapterName != "" {
		cfg.Storage.Adapter = adapterName
	}

	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, notebook.WithLogger(slog.Default()))

	c, err := notebook.Open(path, opts...)
	if err != nil {
		return nil, err
	}
	cmds = c
	return cmds, nil
}

// writeOut writes a command result followed by a newline.
func writeOut(cmd *cobra.Command, out string) {
	fmt.Fprintln(cmd.OutOrStdout(), out)
}

// noteIDArg accepts exactly one integer argument.
func noteIDArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	if _, err := strconv.Atoi(args[0]); err != nil {
		return fmt.Errorf("invalid note id '%s': must be an integer", args[0])
	}
	return nil
}

func parseID(args []string) int {
	id, _ := strconv.Atoi(args[0])
	return id
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: nearest notebook.yaml)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Path to the note store (overrides the config)")
	rootCmd.PersistentFlags().StringVar(&adapterName, "adapter", "", "Storage adapter: fs, json, yaml or sqlite (overrides the config)")
}
