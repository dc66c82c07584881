package meta

import (
	"strings"
	"testing"
)

const sampleRecord = ` authors=given> Aurora Almeida de Miranda, family> Leão\par ` +
	`title=Euclides da Cunha atualizado no sertão da teledramaturgia\par ` +
	`first_page=15\par last_page=29\par ` +
	`abstract=A série \textit {Onde nascem os fortes} remete ao livro ` +
	`\textit {Os sertões} \citeyear {EcCUNHA1902sertoes}. \par ` +
	`keywords=Onde nascem os fortes. Euclides da Cunha. Sertão.\par ` +
	`section=Dossiê História dos Sertões\par number=5\par semester=1\par year=2022`

func TestParseRecord(t *testing.T) {
	rec, rest, err := Parse([]byte(sampleRecord))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("rest = %q, want empty", rest)
	}

	if len(rec.Authors) != 1 {
		t.Fatalf("len(authors) = %d, want 1", len(rec.Authors))
	}
	if got := string(rec.Authors[0].Given); got != "Aurora Almeida de Miranda" {
		t.Errorf("given = %q", got)
	}
	if got := string(rec.Authors[0].Family); got != "Leão" {
		t.Errorf("family = %q", got)
	}
	if got := string(rec.Title); got != "Euclides da Cunha atualizado no sertão da teledramaturgia" {
		t.Errorf("title = %q", got)
	}
	if string(rec.FirstPage) != "15" || string(rec.LastPage) != "29" {
		t.Errorf("pages = %q..%q, want 15..29", rec.FirstPage, rec.LastPage)
	}
	if rec.Abstract == nil {
		t.Fatal("abstract absent")
	}
	if len(rec.Abstract.Parts) != 7 {
		t.Errorf("len(abstract parts) = %d, want 7", len(rec.Abstract.Parts))
	}
	if !strings.HasPrefix(string(rec.Keywords), "Onde nascem os fortes.") {
		t.Errorf("keywords = %q", rec.Keywords)
	}
	if string(rec.Number) != "5" || string(rec.Semester) != "1" || string(rec.Year) != "2022" {
		t.Errorf("number/semester/year = %q/%q/%q", rec.Number, rec.Semester, rec.Year)
	}
}

func TestParseFieldOrderFree(t *testing.T) {
	rec, rest, err := Parse([]byte(`year=2022\par title=T`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("rest = %q, want empty", rest)
	}
	if string(rec.Year) != "2022" || string(rec.Title) != "T" {
		t.Errorf("year/title = %q/%q", rec.Year, rec.Title)
	}
}

func TestParseRepeatedKeyLastWins(t *testing.T) {
	rec, _, err := Parse([]byte(`title=First\par title=Second\par`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if string(rec.Title) != "Second" {
		t.Errorf("title = %q, want Second", rec.Title)
	}
}

func TestParseStrayParIgnored(t *testing.T) {
	rec, rest, err := Parse([]byte(`\par \par title=T\par \par year=2022`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("rest = %q, want empty", rest)
	}
	if string(rec.Title) != "T" || string(rec.Year) != "2022" {
		t.Errorf("title/year = %q/%q", rec.Title, rec.Year)
	}
}

func TestParseStopsAtUnknownKeyword(t *testing.T) {
	rec, rest, err := Parse([]byte(`title=T\par publisher=X`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if string(rec.Title) != "T" {
		t.Errorf("title = %q, want T", rec.Title)
	}
	// The loop stops without error; the remainder (whitespace included)
	// goes back to the caller.
	if string(rest) != " publisher=X" {
		t.Errorf("rest = %q, want %q", rest, " publisher=X")
	}
}

func TestParseMissingDivisorIsHardError(t *testing.T) {
	_, _, err := Parse([]byte(`title T\par`))
	if err == nil {
		t.Fatal("Parse succeeded, want divisor error")
	}
	if _, ok := err.(*SyntaxError); !ok {
		t.Errorf("err = %T, want *SyntaxError", err)
	}
}

// A keyword is matched by prefix, so "yearly=..." matches "year" and then
// fails on the divisor.
func TestParseKeywordPrefixMatch(t *testing.T) {
	_, _, err := Parse([]byte(`yearly=2\par`))
	if err == nil {
		t.Fatal("Parse succeeded, want divisor error after prefix match")
	}
}

func TestParseBadAuthorListIsHardError(t *testing.T) {
	_, _, err := Parse([]byte(`authors=given>A,given>B\par`))
	if err == nil {
		t.Fatal("Parse succeeded, want author grammar error")
	}
}

func TestParseEmptyInput(t *testing.T) {
	rec, rest, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(rest) != 0 {
		t.Errorf("rest = %q, want empty", rest)
	}
	if rec.Title != nil || rec.Authors != nil || rec.Abstract != nil {
		t.Error("empty input produced non-empty record")
	}
}
