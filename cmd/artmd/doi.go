package main

import (
	"github.com/amleao/artmd/internal/pdfscan"
	"github.com/spf13/cobra"
)

var (
	doiText  bool
	doiPages int
)

func init() {
	doiCmd.Flags().BoolVar(&doiText, "text", false, "Print the extracted text instead of the DOI")
	doiCmd.Flags().IntVar(&doiPages, "pages", 3, "Number of pages to scan (0 for all)")
	rootCmd.AddCommand(doiCmd)
}

var doiCmd = &cobra.Command{
	Use:   "doi <pdf>",
	Short: "Extract a DOI from an article PDF",
	Long: `Scan the first pages of an article PDF for a DOI, to help locate the
paper's bibliography entry. With --text, print the extracted plain text
instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runDOI,
}

// DOIResult is the response for the doi command.
type DOIResult struct {
	DOI  string `json:"doi"`
	File string `json:"file"`
}

func runDOI(cmd *cobra.Command, args []string) error {
	if doiText {
		text, err := pdfscan.ExtractText(args[0], doiPages)
		if err != nil {
			exitWithError(ExitError, "reading PDF: %v", err)
		}
		outputHuman("%s", text)
		return nil
	}

	doi, err := pdfscan.ExtractDOI(args[0], doiPages)
	if err != nil {
		exitWithError(ExitError, "reading PDF: %v", err)
	}
	if doi == "" {
		exitWithError(ExitDataError, "no DOI found in %s", args[0])
	}

	if humanOutput {
		outputHuman("%s\n", doi)
		return nil
	}
	return outputJSON(DOIResult{DOI: doi, File: args[0]})
}
