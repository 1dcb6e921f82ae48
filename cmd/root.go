// Copyright (c) 2025 Csvlate
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the csvlate application.
// It implements the translate and key subcommands using the Cobra CLI
// framework. The package handles command parsing, execution, and provides a
// rich terminal UI with spinners and progress indicators.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands.
// It serves as the entry point for the csvlate CLI application.
var rootCmd = &cobra.Command{
	Use:           "csvlate",
	Short:         "Translate product-catalog CSV exports via the DeepL API",
	Long:          `csvlate reads a product CSV export of uncertain formatting, works out which columns carry human-readable text, and translates those columns through the DeepL API while leaving catalog data (IDs, SKUs, prices, taxonomies) untouched.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("csvlate %s\n", Version)
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
}
