package main

import (
	"os"
	"path/filepath"

	"github.com/amleao/artmd/internal/bib"
	"github.com/amleao/artmd/internal/bibstore"
	"github.com/amleao/artmd/internal/config"
	"github.com/spf13/cobra"
)

var bibImportDryRun bool

func init() {
	bibImportCmd.Flags().BoolVar(&bibImportDryRun, "dry-run", false, "Parse the file without writing to the store")
	bibCmd.AddCommand(bibImportCmd)
	bibCmd.AddCommand(bibListCmd)
	bibCmd.AddCommand(bibGetCmd)
	rootCmd.AddCommand(bibCmd)
}

var bibCmd = &cobra.Command{
	Use:   "bib",
	Short: "Manage the bibliography store",
}

var bibImportCmd = &cobra.Command{
	Use:   "import <file.bib>",
	Short: "Import a BibTeX file into the store",
	Long: `Parse a BibTeX file and write its entries to the bibliography store.
An entry whose key is already stored is replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: runBibImport,
}

var bibListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the citation keys in the store",
	Args:  cobra.NoArgs,
	RunE:  runBibList,
}

var bibGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show a stored bibliography entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runBibGet,
}

// BibImportResult is the response for bib import.
type BibImportResult struct {
	Status  string `json:"status"`
	Entries int    `json:"entries"`
	Store   string `json:"store,omitempty"`
}

// BibListResult is the response for bib list.
type BibListResult struct {
	Count int      `json:"count"`
	Keys  []string `json:"keys"`
}

func runBibImport(cmd *cobra.Command, args []string) error {
	entries, err := bib.ParseFile(args[0])
	if err != nil {
		exitWithError(ExitDataError, "parsing bibliography: %v", err)
	}

	if bibImportDryRun {
		if humanOutput {
			outputHuman("Parsed %d entries (dry run)\n", len(entries))
			return nil
		}
		return outputJSON(BibImportResult{Status: "dry-run", Entries: len(entries)})
	}

	cfg := mustLoadConfig()
	db := mustOpenStore(cfg)
	defer db.Close()

	if err := db.Put(entries); err != nil {
		exitWithError(ExitError, "writing store: %v", err)
	}

	if humanOutput {
		outputHuman("Imported %d entries into %s\n", len(entries), cfg.StoreLocation())
		return nil
	}
	return outputJSON(BibImportResult{
		Status:  "imported",
		Entries: len(entries),
		Store:   cfg.StoreLocation(),
	})
}

func runBibList(cmd *cobra.Command, args []string) error {
	db := mustOpenStore(mustLoadConfig())
	defer db.Close()

	keys, err := db.Keys()
	if err != nil {
		exitWithError(ExitError, "reading store: %v", err)
	}

	if humanOutput {
		for _, k := range keys {
			outputHuman("%s\n", k)
		}
		return nil
	}
	return outputJSON(BibListResult{Count: len(keys), Keys: keys})
}

func runBibGet(cmd *cobra.Command, args []string) error {
	db := mustOpenStore(mustLoadConfig())
	defer db.Close()

	entry, err := db.Get(args[0])
	if err != nil {
		exitWithError(ExitError, "reading store: %v", err)
	}
	if entry == nil {
		exitWithError(ExitDataError, "entry %q not found", args[0])
	}

	if humanOutput {
		outputHuman("@%s{%s}\n", entry.Type, entry.Key)
		for _, tag := range entry.Tags {
			outputHuman("  %s = %s\n", tag.Name, tag.Value)
		}
		return nil
	}
	return outputJSON(entry)
}

// mustOpenStore opens the bibliography store, creating its directory if
// needed. Exits on error. The caller must Close the returned DB.
func mustOpenStore(cfg *config.Global) *bibstore.DB {
	path := cfg.StoreLocation()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		exitWithError(ExitConfigError, "creating store directory: %v", err)
	}
	db, err := bibstore.Open(path)
	if err != nil {
		exitWithError(ExitError, "opening store: %v", err)
	}
	return db
}
