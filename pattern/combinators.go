package pattern

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Unbounded is the maximum repetition count meaning "no limit".
const Unbounded = -1

// Txt matches text verbatim. Empty text always matches consuming nothing.
func Txt(text string) *Pattern {
	return New(strconv.Quote(text), func(input string, pos int) (Result, bool) {
		if !strings.HasPrefix(input[pos:], text) {
			return Result{}, false
		}
		return Result{text, pos + len(text)}, true
	})
}

// TxtFold matches text ignoring case. Parsed value is the matched input.
// Only case variants of the same byte length are recognized.
func TxtFold(text string) *Pattern {
	return New("%i"+strconv.Quote(text), func(input string, pos int) (Result, bool) {
		end := pos + len(text)
		if end > len(input) || !strings.EqualFold(input[pos:end], text) {
			return Result{}, false
		}
		return Result{input[pos:end], end}, true
	})
}

// Rgx matches re starting exactly at the current position.
func Rgx(re *regexp.Regexp) *Pattern {
	expr := re.String()
	anchored := regexp.MustCompile(`\A(?:` + expr + `)`)
	return New("/"+expr+"/", func(input string, pos int) (Result, bool) {
		loc := anchored.FindStringIndex(input[pos:])
		if loc == nil {
			return Result{}, false
		}
		end := pos + loc[1]
		return Result{input[pos:end], end}, true
	})
}

// RgxString compiles expr and returns Rgx pattern.
func RgxString(expr string) (*Pattern, error) {
	re, e := regexp.Compile(expr)
	if e != nil {
		return nil, MakeWrongRegexpError(expr, e)
	}
	return Rgx(re), nil
}

// Chr matches any single character.
func Chr() *Pattern {
	return anyChar
}

var anyChar = New(".", func(input string, pos int) (Result, bool) {
	_, size := decode(input, pos)
	if size == 0 {
		return Result{}, false
	}
	return Result{input[pos : pos+size], pos + size}, true
})

// Rng matches a single character with code point in range [min, max].
func Rng(min, max rune) *Pattern {
	name := fmt.Sprintf("%%x%X", min)
	if max != min {
		name += fmt.Sprintf("-%X", max)
	}
	return New(name, func(input string, pos int) (Result, bool) {
		c, size := decode(input, pos)
		if size == 0 || c < min || c > max {
			return Result{}, false
		}
		return Result{input[pos : pos+size], pos + size}, true
	})
}

// Nothing never matches.
func Nothing(name string) *Pattern {
	return New(name, func(string, int) (Result, bool) {
		return Result{}, false
	})
}

// Opt always matches. Yields def consuming nothing if p fails.
func Opt(p *Pattern, def any) *Pattern {
	return New(p.name+"?", func(input string, pos int) (Result, bool) {
		r, ok := p.exec(input, pos)
		if !ok {
			return Result{def, pos}, true
		}
		return r, true
	})
}

// Exc matches p unless except matches at the same position.
func Exc(p, except *Pattern) *Pattern {
	return New(p.name+" ~ "+except.name, func(input string, pos int) (Result, bool) {
		if _, ok := except.exec(input, pos); ok {
			return Result{}, false
		}
		return p.exec(input, pos)
	})
}

// Not matches nothing if p fails, fails otherwise.
func Not(p *Pattern) *Pattern {
	return New("!"+p.name, func(input string, pos int) (Result, bool) {
		if _, ok := p.exec(input, pos); ok {
			return Result{}, false
		}
		return Result{nil, pos}, true
	})
}

// And matches nothing if p matches, fails otherwise.
func And(p *Pattern) *Pattern {
	return New("&"+p.name, func(input string, pos int) (Result, bool) {
		if _, ok := p.exec(input, pos); !ok {
			return Result{}, false
		}
		return Result{nil, pos}, true
	})
}

func joinNames(ps []*Pattern, sep string) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.name
	}
	return "(" + strings.Join(names, sep) + ")"
}

// Any returns the result of the first matching pattern.
// Later patterns are not tried even if they could match longer text.
func Any(ps ...*Pattern) *Pattern {
	return New(joinNames(ps, " | "), func(input string, pos int) (Result, bool) {
		for _, p := range ps {
			r, ok := p.exec(input, pos)
			if ok {
				return r, true
			}
		}
		return Result{}, false
	})
}

// Seq matches all patterns one after another and yields a []any of their values.
func Seq(ps ...*Pattern) *Pattern {
	return New(joinNames(ps, " "), func(input string, pos int) (Result, bool) {
		values := make([]any, len(ps))
		for i, p := range ps {
			r, ok := p.exec(input, pos)
			if !ok {
				return Result{}, false
			}
			values[i] = r.Value
			pos = r.End
		}
		return Result{values, pos}, true
	})
}

func repName(p, sep *Pattern, min, max int) string {
	var q string
	switch {
	case min == 0 && max == Unbounded:
		q = "*"
	case min == 1 && max == Unbounded:
		q = "+"
	case max == Unbounded:
		q = fmt.Sprintf("{%d,}", min)
	case min == max:
		q = fmt.Sprintf("{%d}", min)
	default:
		q = fmt.Sprintf("{%d,%d}", min, max)
	}
	if sep == nil {
		return p.name + q
	}
	return p.name + q + ":" + sep.name
}

// Rep matches p as many times as possible, but not more than max times (Unbounded for no limit),
// and yields a []any of parsed values. Fails if less than min repetitions are found.
// If sep is not nil, it must match between repetitions; a separator without
// a following repetition is not consumed. A repetition consuming no input stops
// the loop and is not counted. Repetition never gives back matched items.
func Rep(p, sep *Pattern, min, max int) *Pattern {
	return New(repName(p, sep, min, max), func(input string, pos int) (Result, bool) {
		values := make([]any, 0)
		end := pos
		for max == Unbounded || len(values) < max {
			next := end
			if sep != nil && len(values) > 0 {
				r, ok := sep.exec(input, next)
				if !ok {
					break
				}
				next = r.End
			}

			r, ok := p.exec(input, next)
			if !ok || r.End == end {
				break
			}
			values = append(values, r.Value)
			end = r.End
		}

		if len(values) < min {
			return Result{}, false
		}
		return Result{values, end}, true
	})
}
