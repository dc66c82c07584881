package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/amleao/artmd/internal/bib"
	"github.com/amleao/artmd/internal/config"
	"github.com/amleao/artmd/internal/meta"
	"github.com/amleao/artmd/internal/render"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	convertDate   string
	convertOutput string
	convertStore  bool
)

func init() {
	// .env can carry ARTMD_DATE / ARTMD_BIB
	_ = godotenv.Load()

	convertCmd.Flags().StringVar(&convertDate, "date", "", "Publication timestamp (RFC 3339), overrides ARTMD_DATE")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Write the document to a file instead of stdout")
	convertCmd.Flags().BoolVar(&convertStore, "store", false, "Resolve citations against the bibliography store")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <metadata> [bibliography]",
	Short: "Convert a metadata record to Markdown with YAML front matter",
	Long: `Convert a LaTeX-flavored metadata record into a Markdown document with
YAML front matter, resolving abstract citations against a BibTeX
bibliography.

The bibliography is taken from the second argument, the ARTMD_BIB
environment variable, the store (with --store), or the bib_path in the
global config, in that order. With none of those, citations in the
abstract fail as unresolved.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		exitWithError(ExitError, "reading metadata: %v", err)
	}

	now, err := resolveDate(convertDate)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	bibPath := ""
	if len(args) == 2 {
		bibPath = args[1]
	}
	b := resolveBibliography(bibPath, convertStore)

	// Render into a buffer so a failure produces no partial document.
	var buf bytes.Buffer
	if err := convertDocument(data, b, now, &buf); err != nil {
		var unresolved *render.UnresolvedCitationError
		var syntaxErr *meta.SyntaxError
		switch {
		case errors.As(err, &unresolved):
			exitWithError(ExitUnresolved, "%v", err)
		case errors.As(err, &syntaxErr):
			exitWithError(ExitDataError, "%v", err)
		default:
			exitWithError(ExitError, "converting: %v", err)
		}
	}

	if convertOutput != "" {
		if err := os.WriteFile(convertOutput, buf.Bytes(), 0644); err != nil {
			exitWithError(ExitError, "writing output: %v", err)
		}
		return nil
	}
	_, err = os.Stdout.Write(buf.Bytes())
	return err
}

// convertDocument parses a metadata record and renders it to w. Input
// left over after the record is a syntax error: the record must consume
// the whole document.
func convertDocument(data []byte, b bib.Bibliography, now time.Time, w io.Writer) error {
	rec, rest, err := meta.Parse(data)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(rest)) > 0 {
		return &meta.SyntaxError{Expected: "field keyword", Rest: rest}
	}
	return render.Record(w, rec, b, now)
}

// resolveDate picks the document timestamp: the --date flag, then
// ARTMD_DATE, then the current time.
func resolveDate(flagValue string) (time.Time, error) {
	value := flagValue
	if value == "" {
		value = os.Getenv("ARTMD_DATE")
	}
	if value == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", value, err)
	}
	return t, nil
}

// resolveBibliography loads the bibliography for citation resolution.
// Precedence: explicit path, ARTMD_BIB, the store (with useStore), the
// global config bib_path. With none of those the bibliography is empty.
// Exits on error.
func resolveBibliography(path string, useStore bool) bib.Bibliography {
	if path == "" {
		path = os.Getenv("ARTMD_BIB")
	}
	if path != "" {
		entries, err := bib.ParseFile(path)
		if err != nil {
			exitWithError(ExitDataError, "reading bibliography: %v", err)
		}
		return bib.Index(entries)
	}

	cfg := mustLoadConfig()

	if useStore {
		db := mustOpenStore(cfg)
		defer db.Close()
		b, err := db.Load()
		if err != nil {
			exitWithError(ExitError, "loading store: %v", err)
		}
		return b
	}

	if cfg.BibPath != "" {
		entries, err := bib.ParseFile(cfg.BibPath)
		if err != nil {
			exitWithError(ExitDataError, "reading bibliography: %v", err)
		}
		return bib.Index(entries)
	}

	return bib.Bibliography{}
}

// mustLoadConfig loads the global configuration, exits on error.
func mustLoadConfig() *config.Global {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}
