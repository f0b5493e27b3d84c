package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "pdf-processing-service",
	Short: "Render PDF pages to images and extract their layout as markdown",
	Long: `pdf-processing-service renders each page of a PDF to an image,
normalizes it to a configured longest-side pixel size and submits it to a
remote layout-parsing service. The per-page markdown results are collected
into one ordered JSON document.

Run "serve" to expose the pipeline over HTTP or "process" to handle a
single PDF from the command line. Running without a subcommand starts the
server.`,
	Version: version,
	// Starting the server is the default mode.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
