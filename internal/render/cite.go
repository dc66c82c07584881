// Package render serializes a parsed metadata record as YAML front
// matter plus a Markdown body, resolving citations against a
// bibliography.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/amleao/artmd/internal/bib"
	"github.com/amleao/artmd/internal/meta"
)

// Format selects the target markup for abstract rendering.
type Format int

const (
	// Markdown wraps italic spans in underscores and italicizes the
	// "et al." suffix.
	Markdown Format = iota
	// PlainText passes spans through unchanged.
	PlainText
)

// noDate is the rendered year for entries without a year tag
// ("sem data").
const noDate = "s.d."

// UnresolvedCitationError reports a citation key with no bibliography
// entry. It is always fatal to the render: a missing entry is an
// unresolvable cross-reference.
type UnresolvedCitationError struct {
	Key string
}

func (e *UnresolvedCitationError) Error() string {
	return fmt.Sprintf("bibliography not found: %s", e.Key)
}

// writeItalic writes text with format-specific emphasis markup.
func (f Format) writeItalic(w io.Writer, text []byte) error {
	if f == Markdown {
		_, err := fmt.Fprintf(w, "_%s_", text)
		return err
	}
	_, err := w.Write(text)
	return err
}

// Abstract renders an abstract part list in the given format, resolving
// citation keys against b.
func Abstract(w io.Writer, a *meta.Abstract, b bib.Bibliography, f Format) error {
	for _, p := range a.Parts {
		var err error
		switch p.Kind {
		case meta.PartText:
			_, err = w.Write(p.Span)
		case meta.PartItalic:
			err = f.writeItalic(w, p.Span)
		case meta.PartCiteYear:
			err = citeYear(w, b, p.Span)
		case meta.PartCite:
			err = cite(w, b, p.Span, f)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// citeYear renders a year-only citation as (YEAR).
func citeYear(w io.Writer, b bib.Bibliography, key []byte) error {
	e, ok := b.Lookup(key)
	if !ok {
		return &UnresolvedCitationError{Key: string(key)}
	}
	year, ok := e.Tag("year")
	if !ok {
		year = noDate
	}
	_, err := fmt.Fprintf(w, "(%s)", year)
	return err
}

// cite renders a full citation as (AUTHOR, YEAR), with the author string
// trimmed and upper-cased.
func cite(w io.Writer, b bib.Bibliography, key []byte, f Format) error {
	e, ok := b.Lookup(key)
	if !ok {
		return &UnresolvedCitationError{Key: string(key)}
	}
	year, ok := e.Tag("year")
	if !ok {
		year = noDate
	}
	author := authorDisplay(e, f)
	_, err := fmt.Fprintf(w, "(%s, %s)",
		strings.ToUpper(strings.TrimSpace(author)), strings.TrimSpace(year))
	return err
}

// authorDisplay resolves the citation author string. Precedence: the
// surnames of the author tag; the first word of the title tag; empty.
// Surnames are the portion of each " AND "-separated name before its
// first comma. More than three collapses to "first, et al.", two or
// three are joined with "; ", a single one is used directly.
func authorDisplay(e *bib.Entry, f Format) string {
	if v, ok := e.Tag("author"); ok {
		names := strings.Split(v, " AND ")
		surnames := make([]string, len(names))
		for i, n := range names {
			surnames[i], _, _ = strings.Cut(n, ",")
		}
		switch {
		case len(surnames) > 3:
			if f == Markdown {
				return surnames[0] + ", _et al._"
			}
			return surnames[0] + ", et al."
		case len(surnames) > 1:
			return strings.Join(surnames, "; ")
		default:
			return surnames[0]
		}
	}
	if v, ok := e.Tag("title"); ok {
		first, _, _ := strings.Cut(v, " ")
		return first
	}
	return ""
}
