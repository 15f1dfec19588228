/*
Package pattern defines patterns, primitive combinators, and rule tables.

A Pattern is an immutable named parsing function. Executing a pattern on an input at
some position either fails or yields a Result holding the parsed value and the offset
just after the consumed text. Failure is not an error: ordered choice and repetition
use it as normal control flow.

Combinators never modify their arguments, they wrap them into new patterns:

	digit := pattern.Rng('0', '9')
	number := pattern.Rep(digit, nil, 1, pattern.Unbounded).Then(transform.Merge(""))
	list := pattern.Rep(number, pattern.Txt(","), 0, pattern.Unbounded)

Recursive grammars are built with a Table: Table.Ref returns a placeholder that is bound
to the named rule by Table.Resolve once every rule is registered.

Patterns are safe for concurrent use as long as all attached transforms are.
*/
package pattern

import (
	"unicode/utf8"
)

// Result is a successful match.
type Result struct {
	// Value contains parsed value: a string, a []any, a map[string]any,
	// or anything returned by a transform; nil for absent optional parts.
	Value any

	// End is the offset just after the consumed text.
	End int
}

// ExecFunc matches input at pos. pos is always in range [0, len(input)].
// Returns false if input does not match.
type ExecFunc func(input string, pos int) (Result, bool)

// TransformFunc converts a parsed value. text contains consumed input.
type TransformFunc func(value any, text string) any

// Pattern is a named parsing function.
type Pattern struct {
	name string
	exec ExecFunc
}

// New creates a pattern. name is used for diagnostics only.
func New(name string, exec ExecFunc) *Pattern {
	return &Pattern{name, exec}
}

// String returns grammar-like pattern description.
func (p *Pattern) String() string {
	return p.name
}

// Exec matches a prefix of input[pos:]. Trailing input is allowed.
func (p *Pattern) Exec(input string, pos int) (Result, bool) {
	if pos < 0 || pos > len(input) {
		return Result{}, false
	}
	return p.exec(input, pos)
}

// Match parses whole input and returns parsed value.
// Returns false if input does not match or is not consumed completely.
func (p *Pattern) Match(input string) (any, bool) {
	r, ok := p.exec(input, 0)
	if !ok || r.End != len(input) {
		return nil, false
	}
	return r.Value, true
}

// Parse is the same as Match, but reports failure as llkp.Error with NoMatchError code.
func (p *Pattern) Parse(input string) (any, error) {
	v, ok := p.Match(input)
	if !ok {
		return nil, MakeNoMatchError(p.name)
	}
	return v, nil
}

// Then returns a pattern that applies f to every value parsed by p.
// f is not called if p fails. A panic in f is not recovered.
func (p *Pattern) Then(f TransformFunc) *Pattern {
	exec := p.exec
	return &Pattern{p.name, func(input string, pos int) (Result, bool) {
		r, ok := exec(input, pos)
		if !ok {
			return r, false
		}
		return Result{f(r.Value, input[pos:r.End]), r.End}, true
	}}
}

// Named returns a pattern that behaves like p and has another name.
func (p *Pattern) Named(name string) *Pattern {
	return &Pattern{name, p.exec}
}

func (p *Pattern) definition() {}

// decode returns the code point at pos and its size in bytes, 0 size at the end of input.
// An invalid byte counts as a code point equal to the byte value.
func decode(input string, pos int) (rune, int) {
	if pos >= len(input) {
		return 0, 0
	}
	c, size := utf8.DecodeRuneInString(input[pos:])
	if c == utf8.RuneError && size == 1 {
		c = rune(input[pos])
	}
	return c, size
}
