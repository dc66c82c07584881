// Package main provides the artmd CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "artmd",
	Short: "Convert article metadata records to Markdown with front matter",
	Long: `artmd converts LaTeX-flavored article metadata records into Markdown
documents with YAML front matter.

Core features:
  - Metadata record parsing (authors, title, keywords, abstract, ...)
  - Citation resolution against a BibTeX bibliography
  - SQLite-backed bibliography store for reuse across articles
  - DOI extraction from article PDFs

Diagnostic commands output JSON by default for scripting; the converted
document itself is always written raw.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
