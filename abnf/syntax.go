package abnf

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ava12/llkp/pattern"
	"github.com/ava12/llkp/source"
	"github.com/ava12/llkp/transform"
)

const (
	// whitespace between elements of a standalone expression
	exprSpace = `\s*`
	// RFC 5234 c-wsp: whitespace and comments, newlines only if followed by indentation
	listSpace = `(?:[ \t]|(?:;[^\r\n]*)?\r?\n[ \t])*`
	ruleName  = `[a-zA-Z][a-zA-Z0-9-]*`
	index     = `[0-9]{1,9}`
)

type repeatSpec struct {
	min, max int
}

type joinSpec struct {
	key, val any
}

type rangeEnd int

var (
	spaces     = rgx(`\s*`)
	exprSyntax = pattern.Seq(spaces, newSyntax(exprSpace)).Then(transform.Select(1))
	listSyntax = newSyntax(listSpace)

	ruleHead  = rgx(ruleName)
	definedAs = pattern.Seq(rgx(listSpace), rgx(`=/?`), rgx(listSpace)).Then(transform.Select(1))
	ruleEnd   = rgx(`[ \t]*(?:;[^\r\n]*)?(?:\r?\n|\z)`)
)

func rgx(expr string) *pattern.Pattern {
	return pattern.Rgx(regexp.MustCompile(expr))
}

// key converts a selector or join key to int index or string name.
func key(s string) any {
	n, e := strconv.Atoi(s)
	if e != nil {
		return s
	}
	return n
}

func unescapeSlashes(s string) string {
	if !strings.Contains(s, `\/`) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			if s[i+1] != '/' {
				b.WriteByte('\\')
			}
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func numVal(prefix, digits string, radix int) *pattern.Pattern {
	num := rgx(digits).Then(transform.ParseInt(radix))
	tail := pattern.Any(
		pattern.Seq(pattern.Txt("-"), num).Then(func(v any, _ string) any {
			return rangeEnd(v.([]any)[1].(int))
		}),
		pattern.Rep(pattern.Seq(pattern.Txt("."), num).Then(transform.Select(1)), nil, 1, pattern.Unbounded),
	)

	return pattern.Seq(pattern.TxtFold(prefix), num, pattern.Opt(tail, nil)).Then(func(v any, _ string) any {
		items := v.([]any)
		first := items[1].(int)
		switch t := items[2].(type) {
		case rangeEnd:
			return &codeRange{first, int(t)}

		case []any:
			codes := make([]int, 0, len(t)+1)
			codes = append(codes, first)
			for _, c := range t {
				codes = append(codes, c.(int))
			}
			return codeString(codes)

		default:
			return &codeRange{first, first}
		}
	})
}

// codeString converts %x41.42.43 notation to text, invalid code points are left
// as single-character ranges to be reported by compiler.
func codeString(codes []int) node {
	runes := make([]rune, len(codes))
	for i, c := range codes {
		if c > utf8.MaxRune || !utf8.ValidRune(rune(c)) {
			items := make([]node, len(codes))
			for j, c := range codes {
				items[j] = &codeRange{c, c}
			}
			return &sequence{items: items}
		}
		runes[i] = rune(c)
	}
	return &text{value: string(runes)}
}

// newSyntax builds ABNF meta-grammar, space separates elements.
// Returns pattern parsing an alternation into a node.
func newSyntax(space string) *pattern.Pattern {
	g := pattern.NewTable(nil, nil)

	quoted := pattern.Any(
		rgx(`"[^"]*"`),
		rgx(`'[^']*'`),
		rgx(`<[^>]*>`),
		rgx(`%[sS]"[^"]*"`),
	).Then(func(v any, _ string) any {
		s := v.(string)
		if s[0] == '%' {
			s = s[2:]
		}
		return &text{value: s[1 : len(s)-1]}
	})

	folded := rgx(`%[iI]"[^"]*"`).Then(func(v any, _ string) any {
		s := v.(string)
		return &text{value: s[3 : len(s)-1], fold: true}
	})

	regex := rgx(`%[rR]/(?:[^\\/]|\\.)*/`).Then(func(v any, _ string) any {
		s := v.(string)
		return &regexpTerm{unescapeSlashes(s[3 : len(s)-1])}
	})

	name := rgx(ruleName).Then(func(v any, _ string) any {
		return &ref{v.(string)}
	})

	selector := rgx(`\.(?:` + index + `|` + ruleName + `)`).Then(func(v any, _ string) any {
		return key(v.(string)[1:])
	})

	group := pattern.Seq(rgx(`\(`+space), g.Ref("alternation"), rgx(space+`\)`), pattern.Opt(selector, nil)).
		Then(func(v any, _ string) any {
			items := v.([]any)
			n := items[1].(node)
			if items[3] == nil {
				return n
			}
			return &selection{n, items[3]}
		})

	optional := pattern.Seq(rgx(`\[`+space), g.Ref("alternation"), rgx(space+`\]`)).
		Then(func(v any, _ string) any {
			return &option{v.([]any)[1].(node)}
		})

	single := pattern.Seq(pattern.Txt("?"), g.Ref("element")).Then(func(v any, _ string) any {
		return &option{v.([]any)[1].(node)}
	})

	dot := pattern.Txt(".").Then(func(any, string) any {
		return &anyChar{}
	})

	g.Set("element", pattern.Any(
		quoted,
		folded,
		regex,
		numVal("%x", `[0-9a-fA-F]{1,8}`, 16),
		numVal("%d", `[0-9]{1,10}`, 10),
		numVal("%b", `[01]{1,32}`, 2),
		name,
		group,
		optional,
		single,
		dot,
	))

	repeat := rgx(`[0-9]{0,9}\*[0-9]{0,9}|[0-9]{1,9}`).Then(func(v any, _ string) any {
		s := v.(string)
		low, high, found := strings.Cut(s, "*")
		if !found {
			n, _ := strconv.Atoi(s)
			return repeatSpec{n, n}
		}

		spec := repeatSpec{0, pattern.Unbounded}
		if low != "" {
			spec.min, _ = strconv.Atoi(low)
		}
		if high != "" {
			spec.max, _ = strconv.Atoi(high)
		}
		return spec
	})

	separator := pattern.Seq(rgx(`\{`+space), g.Ref("alternation"), rgx(space+`\}`+space)).
		Then(transform.Select(1))

	join := rgx(`@(?:` + index + `|` + ruleName + `):(?:` + index + `|` + ruleName + `)`).
		Then(func(v any, _ string) any {
			k, val, _ := strings.Cut(v.(string)[1:], ":")
			return joinSpec{key(k), key(val)}
		})

	repeated := pattern.Seq(repeat, pattern.Opt(separator, nil), g.Ref("element"), pattern.Opt(join, nil)).
		Then(func(v any, _ string) any {
			items := v.([]any)
			spec := items[0].(repeatSpec)
			n := &repetition{item: items[2].(node), min: spec.min, max: spec.max}
			if items[1] != nil {
				n.sep = items[1].(node)
			}
			if j, ok := items[3].(joinSpec); ok {
				n.joined = true
				n.joinKey = j.key
				n.joinVal = j.val
			}
			return n
		})

	g.Set("repetition", pattern.Any(repeated, g.Ref("element")))

	excepts := pattern.Seq(rgx(space+`~`+space), g.Ref("repetition")).Then(transform.Select(1))
	excluded := pattern.Seq(g.Ref("repetition"), pattern.Rep(excepts, nil, 0, pattern.Unbounded)).
		Then(func(v any, _ string) any {
			items := v.([]any)
			n := items[0].(node)
			for _, e := range items[1].([]any) {
				n = &exclusion{n, e.(node)}
			}
			return n
		})

	label := rgx(ruleName + `:` + space).Then(func(v any, _ string) any {
		l, _, _ := strings.Cut(v.(string), ":")
		return l
	})

	item := pattern.Seq(pattern.Opt(label, ""), excluded).Then(func(v any, _ string) any {
		items := v.([]any)
		return labeled{items[0].(string), items[1].(node)}
	})

	g.Set("concatenation", pattern.Rep(item, rgx(space), 1, pattern.Unbounded).Then(func(v any, _ string) any {
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

	g.Set("alternation", pattern.Rep(g.Ref("concatenation"), rgx(space+`/`+space), 1, pattern.Unbounded).
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
	p, _ := g.Lookup("alternation")
	return p
}

// parseExpression converts grammar text to a node.
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

// parseRuleList converts RFC 5234 rule list to rule definitions in source order.
func parseRuleList(src *source.Source) ([]ruleDef, error) {
	text := src.Content()
	var defs []ruleDef
	pos := 0
	for pos < len(text) {
		if r, ok := ruleEnd.Exec(text, pos); ok && r.End > pos {
			pos = r.End
			continue
		}

		def, end, ok := parseRule(text, pos)
		if !ok {
			p := src.Pos(end)
			return nil, MakeInvalidRuleError(p, src.Line(p.Line()))
		}

		defs = append(defs, def)
		pos = end
	}
	return defs, nil
}

// parseRule parses a rule at pos. Returns the offset after the rule or
// the offset of unparsable text on failure.
func parseRule(text string, pos int) (ruleDef, int, bool) {
	name, ok := ruleHead.Exec(text, pos)
	if !ok {
		return ruleDef{}, pos, false
	}

	op, ok := definedAs.Exec(text, name.End)
	if !ok {
		return ruleDef{}, name.End, false
	}

	body, ok := listSyntax.Exec(text, op.End)
	if !ok {
		return ruleDef{}, op.End, false
	}

	end, ok := ruleEnd.Exec(text, body.End)
	if !ok {
		return ruleDef{}, body.End, false
	}

	return ruleDef{
		name:        name.Value.(string),
		incremental: op.Value.(string) == "=/",
		body:        body.Value.(node),
		pos:         pos,
	}, end.End, true
}
