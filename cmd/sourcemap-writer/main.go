// Package main provides the sourcemap-writer CLI.
//
// sourcemap-writer attaches source maps to built JS/CSS files:
//   - inline, as a base64 data URI in the trailing comment, or
//   - external, as a sibling .map file referenced by relative URL.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "sourcemap-writer",
	Short: "Attach source maps to build artifacts",
	Long:  "sourcemap-writer serializes a file's source map inline or as an\nexternal .map file and injects the matching sourceMappingURL comment.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(writeCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
