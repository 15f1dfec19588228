package abnf

import (
	"unicode/utf8"

	"github.com/ava12/llkp/pattern"
	"github.com/ava12/llkp/transform"
)

type compiler struct {
	table *pattern.Table
	err   error
}

// compile converts node tree to a pattern. Rule references are resolved by t.
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
	switch n.Type() {
	case textNode:
		t := n.(*text)
		if t.fold {
			return pattern.TxtFold(t.value)
		}
		return pattern.Txt(t.value)

	case rangeNode:
		r := n.(*codeRange)
		if r.min > r.max || r.max > utf8.MaxRune {
			return c.fail(MakeInvalidRangeError(r.min, r.max))
		}
		return pattern.Rng(rune(r.min), rune(r.max))

	case regexpNode:
		p, e := pattern.RgxString(n.(*regexpTerm).expr)
		if e != nil {
			return c.fail(e)
		}
		return p

	case anyCharNode:
		return pattern.Chr()

	case refNode:
		return c.table.Ref(n.(*ref).name)

	case sequenceNode:
		s := n.(*sequence)
		p := pattern.Seq(c.compileAll(s.items)...)
		if s.labels == nil {
			return p
		}

		fields := make(map[string]int)
		for i, label := range s.labels {
			if label != "" {
				fields[label] = i
			}
		}
		return p.Then(transform.Map(fields))

	case choiceNode:
		return pattern.Any(c.compileAll(n.(*choice).items)...)

	case optionNode:
		return pattern.Opt(c.compile(n.(*option).item), nil)

	case repetitionNode:
		r := n.(*repetition)
		if r.max != pattern.Unbounded && r.min > r.max {
			return c.fail(MakeInvalidRepeatError(r.min, r.max))
		}

		var sep *pattern.Pattern
		if r.sep != nil {
			sep = c.compile(r.sep)
		}
		p := pattern.Rep(c.compile(r.item), sep, r.min, r.max)
		if r.joined {
			p = p.Then(transform.Join(r.joinKey, r.joinVal))
		}
		return p

	case exclusionNode:
		x := n.(*exclusion)
		return pattern.Exc(c.compile(x.item), c.compile(x.except))

	case selectionNode:
		s := n.(*selection)
		return c.compile(s.item).Then(transform.Select(s.key))
	}

	panic("abnf: unknown node type")
}
