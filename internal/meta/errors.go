package meta

import "fmt"

// SyntaxError reports a grammar production that did not match at the
// expected position.
type SyntaxError struct {
	Expected string // token or production that failed to match
	Rest     []byte // unconsumed input at the failure point
}

func (e *SyntaxError) Error() string {
	rest := e.Rest
	if len(rest) > 24 {
		rest = rest[:24]
	}
	return fmt.Sprintf("expected %s at %q", e.Expected, rest)
}
