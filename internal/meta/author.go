package meta

import "bytes"

// Author is one parsed author entry. Given and Family alias the input
// buffer.
type Author struct {
	Given  []byte
	Family []byte
}

const (
	labelGiven = iota
	labelFamily
)

// name consumes a run of bytes excluding ',', '.' and '\'. A trailing
// ',' or '.' delimiter is consumed and discarded when present; neither
// is required.
func name(in []byte) (val, rest []byte, err error) {
	i := bytes.IndexAny(in, `,.\`)
	if i < 0 {
		i = len(in)
	}
	if i == 0 {
		return nil, nil, &SyntaxError{Expected: "author name", Rest: in}
	}
	val, rest = in[:i], in[i:]
	if len(rest) > 0 && (rest[0] == ',' || rest[0] == '.') {
		rest = rest[1:]
	}
	return val, rest, nil
}

// authorPart parses one labeled part: "given" or "family", '>' with
// optional whitespace around it, then a name.
func authorPart(in []byte) (label int, val, rest []byte, err error) {
	rest = space(in)
	switch {
	case bytes.HasPrefix(rest, []byte("given")):
		label, rest = labelGiven, rest[len("given"):]
	case bytes.HasPrefix(rest, []byte("family")):
		label, rest = labelFamily, rest[len("family"):]
	default:
		return 0, nil, nil, &SyntaxError{Expected: `"given" or "family"`, Rest: rest}
	}
	rest = space(rest)
	if len(rest) == 0 || rest[0] != '>' {
		return 0, nil, nil, &SyntaxError{Expected: `">"`, Rest: rest}
	}
	val, rest, err = name(space(rest[1:]))
	if err != nil {
		return 0, nil, nil, err
	}
	return label, val, rest, nil
}

// parseAuthor parses one author entry: a given part and a family part in
// either order. Exactly one of each must be present.
func parseAuthor(in []byte) (Author, []byte, error) {
	first, v1, rest, err := authorPart(in)
	if err != nil {
		return Author{}, nil, err
	}
	second, v2, rest, err := authorPart(rest)
	if err != nil {
		return Author{}, nil, err
	}
	if first == second {
		return Author{}, nil, &SyntaxError{Expected: "one given and one family part", Rest: in}
	}
	if first == labelFamily {
		v1, v2 = v2, v1
	}
	return Author{Given: v1, Family: v2}, rest, nil
}

// parseAuthors parses a greedy one-or-more author list. The list has no
// explicit delimiter: each entry is followed by a re-application of the
// same rule, and the list ends at the first entry that no longer
// matches.
func parseAuthors(in []byte) ([]Author, []byte, error) {
	a, rest, err := parseAuthor(in)
	if err != nil {
		return nil, nil, err
	}
	authors := []Author{a}
	for {
		a, r, err := parseAuthor(rest)
		if err != nil {
			return authors, rest, nil
		}
		authors = append(authors, a)
		rest = r
	}
}
