package render

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/amleao/artmd/internal/bib"
	"github.com/amleao/artmd/internal/meta"
)

// Conventional meta-description length limit: a rendered description
// longer than descriptionMax bytes is cut to descriptionKeep bytes plus
// a three-dot ellipsis marker. Truncation is byte-wise.
const (
	descriptionMax  = 143
	descriptionKeep = 140
)

// appendEscaped appends text with '"' escaped as \". The front-matter
// quoting escapes nothing else.
func appendEscaped(buf *bytes.Buffer, text []byte) {
	for {
		i := bytes.IndexByte(text, '"')
		if i < 0 {
			buf.Write(text)
			return
		}
		buf.Write(text[:i])
		buf.WriteString(`\"`)
		text = text[i+1:]
	}
}

// Record writes rec as a front-matter block delimited by --- lines,
// followed by the Markdown body. Field order is fixed; absent fields are
// omitted. The timestamp is injected by the caller so rendering stays
// deterministic. Output is buffered internally: on any error nothing is
// written to w.
func Record(w io.Writer, rec *meta.Record, b bib.Bibliography, now time.Time) error {
	var buf bytes.Buffer

	buf.WriteString("---\n")

	if rec.Title != nil {
		buf.WriteString(`title: "`)
		appendEscaped(&buf, rec.Title)
		buf.WriteString("\"\n")
	}

	if rec.Abstract != nil {
		var desc bytes.Buffer
		if err := Abstract(&desc, rec.Abstract, b, PlainText); err != nil {
			return err
		}
		if desc.Len() > descriptionMax {
			desc.Truncate(descriptionKeep)
			desc.WriteString("...")
		}
		buf.WriteString(`description: "`)
		appendEscaped(&buf, desc.Bytes())
		buf.WriteString("\"\n")
	}

	buf.WriteString("date: ")
	buf.WriteString(now.Format(time.RFC3339))
	buf.WriteString("\n")

	if rec.Authors != nil {
		buf.WriteString("authors:")
		for _, a := range rec.Authors {
			buf.WriteString("\n- given: ")
			buf.Write(a.Given)
			buf.WriteString("\n  family: ")
			buf.Write(a.Family)
		}
		buf.WriteString("\n")
	}

	if rec.Keywords != nil {
		buf.WriteString("tags:")
		for _, kw := range strings.Split(string(rec.Keywords), ".") {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				continue
			}
			buf.WriteString("\n- ")
			buf.WriteString(kw)
		}
		buf.WriteString("\n")
	}

	if rec.FirstPage != nil && rec.LastPage != nil {
		buf.WriteString("pages: [")
		buf.Write(rec.FirstPage)
		buf.WriteString(", ")
		buf.Write(rec.LastPage)
		buf.WriteString("]\n")
	}

	if rec.Section != nil {
		buf.WriteString(`section: "`)
		appendEscaped(&buf, rec.Section)
		buf.WriteString("\"\n")
	}

	if rec.Number != nil {
		// series and number both derive from the number field.
		buf.WriteString("series: [n")
		appendEscaped(&buf, rec.Number)
		buf.WriteString("]\n")
		buf.WriteString("number: ")
		appendEscaped(&buf, rec.Number)
		buf.WriteString("\n")
	}

	if rec.Semester != nil {
		buf.WriteString("semester: ")
		appendEscaped(&buf, rec.Semester)
		buf.WriteString("\n")
	}

	if rec.Year != nil {
		buf.WriteString("year: ")
		appendEscaped(&buf, bytes.TrimSpace(rec.Year))
		buf.WriteString("\n")
	}

	buf.WriteString("---\n\n")

	if rec.Abstract != nil {
		buf.WriteString("**Resumo:** ")
		if err := Abstract(&buf, rec.Abstract, b, Markdown); err != nil {
			return err
		}
		buf.WriteString("\n\n")
	}

	if rec.Keywords != nil {
		buf.WriteString("**Palavras-chave:** ")
		buf.Write(rec.Keywords)
		buf.WriteString("\n")
	}

	_, err := w.Write(buf.Bytes())
	return err
}
