package bib

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleBib = `
Comment text between entries is ignored.

@book{EcCUNHA1902sertoes,
  author    = {Cunha, E.},
  title     = {Os sertões},
  location  = {São Paulo},
  publisher = {Editora Martin Claret},
  year      = {1902}
}

@incollection{EcSANTOS2004Para,
  author     = {Santos, B. S.},
  title      = {Para uma sociologia das ausências},
  editortype = {organizer},
  year       = {2004}
}
`

func TestParse(t *testing.T) {
	entries, err := Parse([]byte(sampleBib))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}

	e := entries[0]
	if e.Type != "book" || e.Key != "EcCUNHA1902sertoes" {
		t.Errorf("entry = @%s{%s}, want @book{EcCUNHA1902sertoes}", e.Type, e.Key)
	}
	if got, _ := e.Tag("author"); got != "Cunha, E." {
		t.Errorf("author = %q", got)
	}
	if got, _ := e.Tag("year"); got != "1902" {
		t.Errorf("year = %q", got)
	}
	if _, ok := e.Tag("doi"); ok {
		t.Error("Tag(doi) found, want absent")
	}

	if entries[1].Type != "incollection" {
		t.Errorf("entries[1].Type = %q", entries[1].Type)
	}
}

func TestParseValueForms(t *testing.T) {
	in := `@article{K, a = {nested {braces} kept}, b = "quoted value", c = 1998, }`

	entries, err := Parse([]byte(in))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	e := entries[0]

	tests := []struct {
		tag  string
		want string
	}{
		{"a", "nested {braces} kept"},
		{"b", "quoted value"},
		{"c", "1998"},
	}
	for _, tt := range tests {
		got, ok := e.Tag(tt.tag)
		if !ok {
			t.Errorf("Tag(%q) absent", tt.tag)
			continue
		}
		if got != tt.want {
			t.Errorf("Tag(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestTagFirstMatchWins(t *testing.T) {
	entries, err := Parse([]byte(`@book{K, year = {1999}, year = {2001}}`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got, _ := entries[0].Tag("year"); got != "1999" {
		t.Errorf("year = %q, want first match 1999", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing key", "@book{,}"},
		{"missing equals", "@book{K, year {1999}}"},
		{"unterminated braces", "@book{K, title = {open"},
		{"unterminated quote", `@book{K, title = "open}`},
		{"missing value", "@book{K, year = ,}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.in)); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tt.in)
			}
		})
	}
}

func TestIndexLastKeyWins(t *testing.T) {
	entries, err := Parse([]byte(`@book{K, year = {1}} @book{K, year = {2}}`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	b := Index(entries)
	e, ok := b.Lookup([]byte("K"))
	if !ok {
		t.Fatal("Lookup(K) failed")
	}
	if got, _ := e.Tag("year"); got != "2" {
		t.Errorf("year = %q, want 2", got)
	}
	if _, ok := b.Lookup([]byte("missing")); ok {
		t.Error("Lookup(missing) succeeded")
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refs.bib")
	if err := os.WriteFile(path, []byte(sampleBib), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	entries, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("len(entries) = %d, want 2", len(entries))
	}

	if _, err := ParseFile(filepath.Join(dir, "absent.bib")); err == nil {
		t.Error("ParseFile(absent) succeeded, want error")
	}
}
