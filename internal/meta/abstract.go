package meta

import "bytes"

// PartKind discriminates the abstract part variants.
type PartKind int

const (
	// PartText is a plain text span.
	PartText PartKind = iota
	// PartItalic is the argument of a \textit command.
	PartItalic
	// PartCiteYear is the citation key of a \citeyear command.
	PartCiteYear
	// PartCite is the citation key of a \cite command.
	PartCite
)

// Part is one abstract fragment. Span aliases the input buffer: the text
// itself for PartText and PartItalic, the citation key otherwise.
type Part struct {
	Kind PartKind
	Span []byte
}

// Abstract is the ordered part list of an abstract field. Order is
// rendering order.
type Abstract struct {
	Parts []Part
}

// commands in match order. citeyear must precede cite so the longer
// name wins.
var commands = []struct {
	name []byte
	kind PartKind
}{
	{[]byte("textit"), PartItalic},
	{[]byte("citeyear"), PartCiteYear},
	{[]byte("cite"), PartCite},
}

// block consumes a command argument: a brace-delimited run of non-'}'
// bytes with the braces stripped, or, when that form does not match, a
// run of non-whitespace bytes.
func block(in []byte) (arg, rest []byte, err error) {
	if len(in) > 0 && in[0] == '{' {
		if i := bytes.IndexByte(in[1:], '}'); i > 0 {
			return in[1 : 1+i], in[2+i:], nil
		}
	}
	i := bytes.IndexAny(in, " \t\r\n")
	if i < 0 {
		i = len(in)
	}
	if i == 0 {
		return nil, nil, &SyntaxError{Expected: "command argument", Rest: in}
	}
	return in[:i], in[i:], nil
}

// command parses one \textit, \citeyear or \cite command. Any other
// command name is a non-match, which ends the enclosing part loop.
func command(in []byte) (Part, []byte, error) {
	rest := space(in)
	if len(rest) == 0 || rest[0] != '\\' {
		return Part{}, nil, &SyntaxError{Expected: `"\"`, Rest: rest}
	}
	rest = rest[1:]
	for _, c := range commands {
		if !bytes.HasPrefix(rest, c.name) {
			continue
		}
		arg, r, err := block(space(rest[len(c.name):]))
		if err != nil {
			return Part{}, nil, err
		}
		return Part{Kind: c.kind, Span: arg}, r, nil
	}
	return Part{}, nil, &SyntaxError{Expected: `\textit, \citeyear or \cite`, Rest: rest}
}

// parseAbstract parses an interleaved sequence of text spans and
// commands. The alternatives are applied zero-or-more times; the loop
// stops, without error, at the first position where neither can advance,
// and the accumulated parts plus the unconsumed remainder are returned.
func parseAbstract(in []byte) (Abstract, []byte) {
	var parts []Part
	rest := in
	for len(rest) > 0 {
		if rest[0] != '\\' {
			i := bytes.IndexByte(rest, '\\')
			if i < 0 {
				i = len(rest)
			}
			parts = append(parts, Part{Kind: PartText, Span: rest[:i]})
			rest = rest[i:]
			continue
		}
		p, r, err := command(rest)
		if err != nil {
			break
		}
		parts = append(parts, p)
		rest = r
	}
	return Abstract{Parts: parts}, rest
}
