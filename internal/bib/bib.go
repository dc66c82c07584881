// Package bib defines bibliography entries and parses BibTeX files into
// them.
package bib

// Tag is one named attribute of a bibliography entry.
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Entry is a single bibliography record identified by its citation key.
// Tags keep their source order; lookups by name take the first match.
type Entry struct {
	Type string `json:"type"` // entry type, e.g. "article" or "book"
	Key  string `json:"key"`
	Tags []Tag  `json:"tags"`
}

// Tag returns the value of the first tag with the given name.
func (e *Entry) Tag(name string) (string, bool) {
	for _, t := range e.Tags {
		if t.Name == name {
			return t.Value, true
		}
	}
	return "", false
}

// Bibliography maps citation keys to entries.
type Bibliography map[string]*Entry

// Lookup resolves a citation key by exact match.
func (b Bibliography) Lookup(key []byte) (*Entry, bool) {
	e, ok := b[string(key)]
	return e, ok
}

// Index builds a key-indexed bibliography from parsed entries. A
// duplicate key keeps the later entry.
func Index(entries []*Entry) Bibliography {
	b := make(Bibliography, len(entries))
	for _, e := range entries {
		b[e.Key] = e
	}
	return b
}
