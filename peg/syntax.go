package peg

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ava12/llkp/pattern"
	"github.com/ava12/llkp/source"
	"github.com/ava12/llkp/transform"
)

const (
	exprSpace  = `\s`
	listSpace  = `(?:\s|#[^\r\n]*)`
	identifier = `[a-zA-Z_][a-zA-Z0-9_-]*`
	labelName  = `[a-zA-Z0-9_]+`
	escape     = `\\(?:x[0-9a-fA-F]{2}|u[0-9a-fA-F]{4}|U[0-9a-fA-F]{8}|(?s:.))`
)

var (
	exprSyntax = pattern.Seq(rgx(`\s*`), newSyntax(exprSpace, false)).Then(transform.Select(1))
	listSyntax = newSyntax(listSpace, true)

	spaces    = rgx(`\s*`)
	listGap   = rgx(listSpace + `*`)
	ruleHead  = pattern.Seq(rgx(identifier), rgx(listSpace+`*<-`+listSpace+`*`)).Then(transform.Select(0))
	ruleStart = rgx(identifier + listSpace + `*<-`)
)

func rgx(expr string) *pattern.Pattern {
	return pattern.Rgx(regexp.MustCompile(expr))
}

func key(s string) any {
	n, e := strconv.Atoi(s)
	if e != nil {
		return s
	}
	return n
}

// newSyntax builds PEG meta-grammar. space matches a single separator unit.
// In rule lists a reference never starts the next rule definition.
func newSyntax(space string, ruleList bool) *pattern.Pattern {
	g := pattern.NewTable(nil, nil)
	gap := space + `*`

	quoted := pattern.Any(
		rgx(`"(?:[^"\\]|`+escape+`)*"`),
		rgx(`'(?:[^'\\]|`+escape+`)*'`),
	).Then(func(v any, _ string) any {
		s := v.(string)
		return &text{s[1 : len(s)-1]}
	})

	classChar := pattern.Any(rgx(escape), rgx(`[^\]\\]`))
	classRange := pattern.Seq(classChar, pattern.Opt(pattern.Seq(pattern.Txt("-"), classChar).Then(transform.Select(1)), ""))
	charClass := pattern.Seq(
		rgx(`\[\^?`),
		pattern.Rep(classRange.Then(func(v any, _ string) any {
			items := v.([]any)
			return classItem{items[0].(string), items[1].(string)}
		}), nil, 0, pattern.Unbounded),
		pattern.Txt("]"),
	).Then(func(v any, src string) any {
		items := v.([]any)
		c := &class{source: src, negated: items[0].(string) == "[^"}
		for _, it := range items[1].([]any) {
			c.items = append(c.items, it.(classItem))
		}
		return c
	})

	dot := pattern.Txt(".").Then(func(any, string) any {
		return &anyChar{}
	})

	name := rgx(identifier)
	if ruleList {
		name = pattern.Exc(name, ruleStart)
	}
	reference := name.Then(func(v any, _ string) any {
		return &ref{v.(string)}
	})

	selector := rgx(`\.` + labelName).Then(func(v any, _ string) any {
		return key(v.(string)[1:])
	})

	group := pattern.Seq(rgx(`\(`+gap), g.Ref("choice"), rgx(gap+`\)`), pattern.Opt(selector, nil)).
		Then(func(v any, _ string) any {
			items := v.([]any)
			n := items[1].(node)
			if items[3] == nil {
				return n
			}
			return &selection{n, items[3]}
		})

	primary := pattern.Any(quoted, charClass, dot, reference, group)

	separator := pattern.Seq(rgx(`<`+gap), g.Ref("choice"), rgx(gap+`>`)).Then(transform.Select(1))
	suffix := pattern.Any(
		pattern.Txt("?"),
		pattern.Txt("*"),
		pattern.Txt("+"),
		pattern.Seq(separator, pattern.Any(pattern.Txt("*"), pattern.Txt("+"))),
	)

	suffixed := pattern.Seq(primary, pattern.Opt(suffix, nil)).Then(func(v any, _ string) any {
		items := v.([]any)
		n := items[0].(node)
		switch s := items[1].(type) {
		case string:
			switch s {
			case "?":
				return &option{n}
			case "*":
				return &repetition{item: n}
			default:
				return &repetition{item: n, min: 1}
			}

		case []any:
			r := &repetition{item: n, sep: s[0].(node)}
			if s[1] == "+" {
				r.min = 1
			}
			return r
		}
		return n
	})

	g.Set("prefixed", pattern.Any(
		pattern.Seq(rgx(`[&!]`), g.Ref("prefixed")).Then(func(v any, _ string) any {
			items := v.([]any)
			return &lookahead{items[1].(node), items[0] == "!"}
		}),
		suffixed,
	))

	excepts := pattern.Seq(rgx(gap+`~`+gap), g.Ref("prefixed")).Then(transform.Select(1))
	excluded := pattern.Seq(g.Ref("prefixed"), pattern.Rep(excepts, nil, 0, pattern.Unbounded)).
		Then(func(v any, _ string) any {
			items := v.([]any)
			n := items[0].(node)
			for _, e := range items[1].([]any) {
				n = &exclusion{n, e.(node)}
			}
			return n
		})

	label := rgx(labelName + `:` + gap).Then(func(v any, _ string) any {
		l, _, _ := strings.Cut(v.(string), ":")
		return l
	})

	item := pattern.Seq(pattern.Opt(label, ""), excluded).Then(func(v any, _ string) any {
		items := v.([]any)
		return labeled{items[0].(string), items[1].(node)}
	})

	g.Set("sequence", pattern.Rep(item, rgx(space+`+`), 1, pattern.Unbounded).Then(func(v any, _ string) any {
		items := v.([]any)
		seq := &sequence{items: make([]node, len(items))}
		labels := make([]string, len(items))
		hasLabels := false
		for i, it := range items {
			l := it.(labeled)
			seq.items[i] = l.item
			labels[i] = l.label
			hasLabels = hasLabels || l.label != ""
		}

		if hasLabels {
			seq.labels = labels
		} else if len(items) == 1 {
			return seq.items[0]
		}
		return seq
	}))

	g.Set("choice", pattern.Rep(g.Ref("sequence"), rgx(gap+`/`+gap), 1, pattern.Unbounded).
		Then(func(v any, _ string) any {
			items := v.([]any)
			if len(items) == 1 {
				return items[0]
			}
			c := &choice{make([]node, len(items))}
			for i, it := range items {
				c.items[i] = it.(node)
			}
			return c
		}))

	if e := g.Resolve(); e != nil {
		panic(e)
	}
	p, _ := g.Lookup("choice")
	return p
}

func parseExpression(text string) (node, error) {
	r, ok := exprSyntax.Exec(text, 0)
	if !ok {
		return nil, MakeInvalidGrammarError(text, "")
	}

	tail, _ := spaces.Exec(text, r.End)
	if tail.End < len(text) {
		return nil, MakeInvalidGrammarError(text, text[tail.End:])
	}
	return r.Value.(node), nil
}

// parseRuleList parses "name <- expression" definitions separated by white space and # comments.
func parseRuleList(src *source.Source) ([]ruleDef, error) {
	text := src.Content()
	var defs []ruleDef
	gap, _ := listGap.Exec(text, 0)
	pos := gap.End
	for pos < len(text) {
		head, ok := ruleHead.Exec(text, pos)
		if !ok {
			return nil, invalidRule(src, pos)
		}

		body, ok := listSyntax.Exec(text, head.End)
		if !ok {
			return nil, invalidRule(src, head.End)
		}

		defs = append(defs, ruleDef{head.Value.(string), body.Value.(node)})
		gap, _ = listGap.Exec(text, body.End)
		pos = gap.End
		if pos < len(text) && !strings.ContainsAny(text[body.End:pos], "\r\n") {
			return nil, invalidRule(src, pos)
		}
	}
	return defs, nil
}

func invalidRule(src *source.Source, pos int) error {
	p := src.Pos(pos)
	return MakeInvalidRuleError(p, src.Line(p.Line()))
}
