package main

import (
	"bytes"
	"os"
	"strings"

	"github.com/amleao/artmd/internal/meta"
	"github.com/spf13/cobra"
)

var checkStore bool

func init() {
	checkCmd.Flags().BoolVar(&checkStore, "store", false, "Resolve citations against the bibliography store")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <metadata> [bibliography]",
	Short: "Validate a metadata record and its citations",
	Long: `Parse a metadata record and resolve every abstract citation against the
bibliography, without producing a document. Reports which fields the
record carries and which citation keys could not be resolved.

The bibliography is resolved the same way as for convert.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status     string   `json:"status"`
	Fields     []string `json:"fields"`
	Citations  int      `json:"citations"`
	Unresolved []string `json:"unresolved"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		exitWithError(ExitError, "reading metadata: %v", err)
	}

	rec, rest, err := meta.Parse(data)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	if len(bytes.TrimSpace(rest)) > 0 {
		exitWithError(ExitDataError, "%v", &meta.SyntaxError{Expected: "field keyword", Rest: rest})
	}

	bibPath := ""
	if len(args) == 2 {
		bibPath = args[1]
	}
	b := resolveBibliography(bibPath, checkStore)

	citations := 0
	unresolved := []string{}
	seen := make(map[string]bool)
	if rec.Abstract != nil {
		for _, p := range rec.Abstract.Parts {
			if p.Kind != meta.PartCite && p.Kind != meta.PartCiteYear {
				continue
			}
			citations++
			if _, ok := b.Lookup(p.Span); !ok {
				key := string(p.Span)
				if !seen[key] {
					seen[key] = true
					unresolved = append(unresolved, key)
				}
			}
		}
	}

	status := "ok"
	if len(unresolved) > 0 {
		status = "unresolved"
	}
	fields := presentFields(rec)

	if humanOutput {
		outputHuman("Record check: %s\n\nFields: %s\nCitations: %d\n",
			status, strings.Join(fields, ", "), citations)
		for _, key := range unresolved {
			outputHuman("  [WARN] Unresolved citation: %s\n", key)
		}
	} else {
		outputJSON(CheckResult{
			Status:     status,
			Fields:     fields,
			Citations:  citations,
			Unresolved: unresolved,
		})
	}

	if len(unresolved) > 0 {
		os.Exit(ExitUnresolved)
	}
	return nil
}

// presentFields lists the fields the record carries, in declaration
// order of the record grammar.
func presentFields(rec *meta.Record) []string {
	fields := []string{}
	if len(rec.Authors) > 0 {
		fields = append(fields, "authors")
	}
	scalar := func(name string, v []byte) {
		if v != nil {
			fields = append(fields, name)
		}
	}
	scalar("title", rec.Title)
	scalar("first_page", rec.FirstPage)
	scalar("last_page", rec.LastPage)
	if rec.Abstract != nil {
		fields = append(fields, "abstract")
	}
	scalar("keywords", rec.Keywords)
	scalar("section", rec.Section)
	scalar("number", rec.Number)
	scalar("semester", rec.Semester)
	scalar("year", rec.Year)
	return fields
}
