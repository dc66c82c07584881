package meta

import "bytes"

// Record is the aggregate metadata record. Scalar fields alias the input
// buffer; nil means the field was absent from the source.
type Record struct {
	Authors   []Author
	Title     []byte
	FirstPage []byte
	LastPage  []byte
	Abstract  *Abstract
	Keywords  []byte
	Section   []byte
	Number    []byte
	Semester  []byte
	Year      []byte
}

// fieldKeys in match order. The bare \par marker comes last so stray
// separators between fields are consumed and ignored.
var fieldKeys = [][]byte{
	[]byte("authors"),
	[]byte("title"),
	[]byte("first_page"),
	[]byte("last_page"),
	[]byte("abstract"),
	[]byte("keywords"),
	[]byte("section"),
	[]byte("number"),
	[]byte("semester"),
	[]byte("year"),
	parMarker,
}

// divisor consumes the assignment separator: whitespace, '=', whitespace.
func divisor(in []byte) ([]byte, error) {
	in = space(in)
	if len(in) == 0 || in[0] != '=' {
		return nil, &SyntaxError{Expected: `"="`, Rest: in}
	}
	return space(in[1:]), nil
}

// Parse parses a metadata record. Fields may appear in any order and a
// repeated key overwrites the earlier value. The loop ends at the first
// position where no field keyword matches; the unconsumed remainder is
// returned and is empty for a well-formed document. A recognized keyword
// not followed by a valid divisor and value is a hard error.
func Parse(in []byte) (*Record, []byte, error) {
	rec := &Record{}
	rest := in
	for {
		r := space(rest)
		var key []byte
		for _, k := range fieldKeys {
			if bytes.HasPrefix(r, k) {
				key = k
				break
			}
		}
		if key == nil {
			// No more fields. Not an error: the remainder goes back
			// to the caller.
			return rec, rest, nil
		}
		r = r[len(key):]

		if bytes.Equal(key, parMarker) {
			rest = r
			continue
		}

		r, err := divisor(r)
		if err != nil {
			return nil, nil, err
		}

		switch string(key) {
		case "authors":
			authors, r2, err := parseAuthors(r)
			if err != nil {
				return nil, nil, err
			}
			_, r2 = paragraph(r2)
			rec.Authors = authors
			rest = r2
		case "abstract":
			abs, r2 := parseAbstract(r)
			// Residue the part loop could not consume is discarded up
			// to the terminating \par.
			_, r2 = paragraph(r2)
			rec.Abstract = &abs
			rest = r2
		default:
			body, r2 := paragraph(r)
			switch string(key) {
			case "title":
				rec.Title = body
			case "first_page":
				rec.FirstPage = body
			case "last_page":
				rec.LastPage = body
			case "keywords":
				rec.Keywords = body
			case "section":
				rec.Section = body
			case "number":
				rec.Number = body
			case "semester":
				rec.Semester = body
			case "year":
				rec.Year = body
			}
			rest = r2
		}
	}
}
