package peg

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ava12/llkp/pattern"
	"github.com/ava12/llkp/transform"
)

type compiler struct {
	table *pattern.Table
	err   error
}

func compile(t *pattern.Table, n node) (*pattern.Pattern, error) {
	c := &compiler{table: t}
	p := c.compile(n)
	if c.err != nil {
		return nil, c.err
	}
	return p, nil
}

func compileText(t *pattern.Table, text string) (*pattern.Pattern, error) {
	n, e := parseExpression(text)
	if e != nil {
		return nil, e
	}
	return compile(t, n)
}

func (c *compiler) fail(e error) *pattern.Pattern {
	if c.err == nil {
		c.err = e
	}
	return pattern.Nothing("<error>")
}

func (c *compiler) compileAll(nodes []node) []*pattern.Pattern {
	ps := make([]*pattern.Pattern, len(nodes))
	for i, n := range nodes {
		ps[i] = c.compile(n)
	}
	return ps
}

func (c *compiler) compile(n node) *pattern.Pattern {
	switch n := n.(type) {
	case *text:
		s, e := unescape(n.raw)
		if e != nil {
			return c.fail(e)
		}
		return pattern.Txt(s)

	case *class:
		return c.compileClass(n)

	case *anyChar:
		return pattern.Chr()

	case *ref:
		return c.table.Ref(n.name)

	case *sequence:
		p := pattern.Seq(c.compileAll(n.items)...)
		if n.labels == nil {
			return p
		}

		fields := make(map[string]int)
		for i, label := range n.labels {
			if label != "" {
				fields[label] = i
			}
		}
		return p.Then(transform.Map(fields))

	case *choice:
		return pattern.Any(c.compileAll(n.items)...)

	case *option:
		return pattern.Opt(c.compile(n.item), nil)

	case *repetition:
		var sep *pattern.Pattern
		if n.sep != nil {
			sep = c.compile(n.sep)
		}
		return pattern.Rep(c.compile(n.item), sep, n.min, pattern.Unbounded)

	case *lookahead:
		if n.negative {
			return pattern.Not(c.compile(n.item))
		}
		return pattern.And(c.compile(n.item))

	case *exclusion:
		return pattern.Exc(c.compile(n.item), c.compile(n.except))

	case *selection:
		return c.compile(n.item).Then(transform.Select(n.key))
	}

	panic("peg: unknown node type")
}

// compileClass converts [a-z_] to a choice of ranges, [^...] to any character except ranges.
func (c *compiler) compileClass(n *class) *pattern.Pattern {
	ranges := make([]*pattern.Pattern, 0, len(n.items))
	for _, item := range n.items {
		first, e := unescapeChar(item.first)
		if e != nil {
			return c.fail(e)
		}

		last := first
		if item.last != "" {
			last, e = unescapeChar(item.last)
			if e != nil {
				return c.fail(e)
			}
		}
		if first > last {
			return c.fail(MakeInvalidRangeError(n.source))
		}
		ranges = append(ranges, pattern.Rng(first, last))
	}

	var p *pattern.Pattern
	switch {
	case n.negated && len(ranges) == 0:
		p = pattern.Chr()
	case len(ranges) == 0:
		p = pattern.Nothing(n.source)
	case n.negated:
		p = pattern.Exc(pattern.Chr(), pattern.Any(ranges...))
	case len(ranges) == 1:
		p = ranges[0]
	default:
		p = pattern.Any(ranges...)
	}
	return p.Named(n.source)
}

// unescapeChar decodes a single possibly escaped character.
func unescapeChar(s string) (rune, error) {
	if s[0] == '\\' {
		r, _, e := decodeEscape(s)
		return r, e
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func unescape(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}

	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			i++
			continue
		}

		r, size, e := decodeEscape(s[i:])
		if e != nil {
			return "", e
		}
		b.WriteRune(r)
		i += size
	}
	return b.String(), nil
}

// decodeEscape decodes escape sequence at the start of s, returns the character and sequence length.
// Characters other than n, r, t, x, u, and U stand for themselves.
func decodeEscape(s string) (rune, int, error) {
	digits := 0
	switch s[1] {
	case 'n':
		return '\n', 2, nil
	case 'r':
		return '\r', 2, nil
	case 't':
		return '\t', 2, nil
	case 'x':
		digits = 2
	case 'u':
		digits = 4
	case 'U':
		digits = 8
	default:
		r, size := utf8.DecodeRuneInString(s[1:])
		return r, size + 1, nil
	}

	end := 2 + digits
	if end > len(s) {
		return 0, 0, MakeInvalidEscapeError(s)
	}
	code, e := strconv.ParseUint(s[2:end], 16, 32)
	if e != nil || !utf8.ValidRune(rune(code)) {
		return 0, 0, MakeInvalidEscapeError(s[:end])
	}
	return rune(code), end, nil
}
