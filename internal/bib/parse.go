package bib

import (
	"fmt"
	"os"
	"strings"
)

// Parse reads BibTeX entries of the form @type{key, name = {value}, ...}.
// Tag values may be braced (nesting-aware), quoted, or bare words. Text
// between entries is ignored; a malformed entry body is an error, no
// recovery is attempted.
func Parse(data []byte) ([]*Entry, error) {
	p := &parser{src: string(data)}
	var entries []*Entry
	for {
		e, err := p.next()
		if err != nil {
			return nil, err
		}
		if e == nil {
			return entries, nil
		}
		entries = append(entries, e)
	}
}

// ParseFile reads and parses a .bib file.
func ParseFile(path string) ([]*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bibliography: %w", err)
	}
	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return entries, nil
}

type parser struct {
	src string
	pos int
}

// next parses the next entry, or returns nil at end of input.
func (p *parser) next() (*Entry, error) {
	i := strings.IndexByte(p.src[p.pos:], '@')
	if i < 0 {
		return nil, nil
	}
	p.pos += i + 1

	typ := p.ident()
	if typ == "" {
		return nil, p.errorf("entry type after '@'")
	}
	p.skipSpace()
	if !p.accept('{') {
		return nil, p.errorf("'{' after @%s", typ)
	}
	p.skipSpace()

	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != ',' && p.src[p.pos] != '}' {
		p.pos++
	}
	key := strings.TrimSpace(p.src[start:p.pos])
	if key == "" {
		return nil, p.errorf("citation key in @%s", typ)
	}

	e := &Entry{Type: strings.ToLower(typ), Key: key}
	for {
		p.skipSpace()
		if p.accept('}') {
			return e, nil
		}
		if !p.accept(',') {
			return nil, p.errorf("',' or '}' in @%s{%s", typ, key)
		}
		p.skipSpace()
		if p.accept('}') {
			// trailing comma
			return e, nil
		}

		name := p.ident()
		if name == "" {
			return nil, p.errorf("tag name in @%s{%s", typ, key)
		}
		p.skipSpace()
		if !p.accept('=') {
			return nil, p.errorf("'=' after tag %q", name)
		}
		p.skipSpace()
		value, err := p.value()
		if err != nil {
			return nil, err
		}
		e.Tags = append(e.Tags, Tag{Name: strings.ToLower(name), Value: value})
	}
}

// ident reads a run of letters, digits, '_' and '-'.
func (p *parser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) accept(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

// value reads a braced (nesting-aware), quoted, or bare tag value.
func (p *parser) value() (string, error) {
	if p.pos >= len(p.src) {
		return "", p.errorf("tag value")
	}
	switch p.src[p.pos] {
	case '{':
		depth := 0
		start := p.pos + 1
		for i := p.pos; i < len(p.src); i++ {
			switch p.src[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					v := p.src[start:i]
					p.pos = i + 1
					return v, nil
				}
			}
		}
		return "", p.errorf("closing '}' for tag value")
	case '"':
		start := p.pos + 1
		if i := strings.IndexByte(p.src[start:], '"'); i >= 0 {
			v := p.src[start : start+i]
			p.pos = start + i + 1
			return v, nil
		}
		return "", p.errorf(`closing '"' for tag value`)
	default:
		start := p.pos
	bare:
		for p.pos < len(p.src) {
			switch p.src[p.pos] {
			case ',', '}', ' ', '\t', '\r', '\n':
				break bare
			}
			p.pos++
		}
		if p.pos == start {
			return "", p.errorf("tag value")
		}
		return p.src[start:p.pos], nil
	}
}

func (p *parser) errorf(format string, args ...interface{}) error {
	args = append(args, p.pos)
	return fmt.Errorf("bibtex: expected "+format+" at byte %d", args...)
}
