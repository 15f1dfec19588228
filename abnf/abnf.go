/*
Package abnf compiles grammars written in ABNF (RFC 5234) into patterns.

Supported syntax, from the tightest binding:

	"text" 'text' <text>   case-sensitive literal
	%s"text" %i"text"      case-sensitive and case-insensitive literals
	%x41 %x30-39 %x41.42   character, character range, character sequence (also %d and %b)
	%r/regex/              regular expression, \/ stands for a slash
	name                   rule reference, core rules (ALPHA, DIGIT, etc.) are always available
	( ... ) ( ... ).1      group, group element selection by index or label
	[ ... ] ?element       optional part
	.                      any character
	n*m{sep}element@k:v    repetition with optional separator and key-value map folding
	a ~ b                  a unless b matches at the same position
	label:element          labeled element, concatenation yields a map of labeled values
	a b                    concatenation
	a / b                  ordered alternation

Grammar text produces a pattern yielding strings for literals, []any for
concatenations and repetitions, and nil for missing optional parts.
*/
package abnf

import (
	"github.com/ava12/llkp"
	"github.com/ava12/llkp/pattern"
	"github.com/ava12/llkp/source"
)

// NewTable creates an empty rule table compiling ABNF text with core rules reserved.
func NewTable() *pattern.Table {
	return pattern.NewTable(compileText, coreRules)
}

// New compiles start definition with a set of rules.
func New(def pattern.Definition, rules ...pattern.RuleSet) (*pattern.Pattern, error) {
	return NewTable().Assemble(def, rules)
}

// Compile compiles ABNF grammar text with a set of rules.
func Compile(text string, rules ...pattern.RuleSet) (*pattern.Pattern, error) {
	return New(pattern.Text(text), rules...)
}

type ruleList struct {
	name, text string
}

// RuleList returns a rule set defined by RFC 5234 rule list:
//
//	rule = elements ; comment
//	rule =/ more elements
//	     / continuation line
func RuleList(text string) pattern.RuleSet {
	return ruleList{"", text}
}

// NamedRuleList is the same as RuleList, name is used in error messages.
func NamedRuleList(name, text string) pattern.RuleSet {
	return ruleList{name, text}
}

func (rl ruleList) Register(t *pattern.Table) error {
	src := source.New(rl.name, rl.text)
	defs, e := parseRuleList(src)
	if e != nil {
		t.Fail(e)
		return e
	}

	bodies := make(map[string]node)
	var order []string
	for _, def := range defs {
		prev, found := bodies[def.name]
		switch {
		case def.incremental && !found:
			e = MakeIncrementalRuleError(src.Pos(def.pos), def.name)
		case !def.incremental && found:
			e = llkp.FormatErrorPos(src.Pos(def.pos), pattern.RuleDefinedError, "rule %q already defined", def.name)
		case def.incremental:
			bodies[def.name] = appendChoice(prev, def.body)
			continue
		default:
			bodies[def.name] = def.body
			order = append(order, def.name)
			continue
		}
		t.Fail(e)
		return e
	}

	for _, name := range order {
		p, e := compile(t, bodies[name])
		if e == nil {
			e = t.Define(name, p)
		}
		if e != nil {
			t.Fail(e)
			return e
		}
	}
	return t.Err()
}

// appendChoice adds alternatives of an incremental rule.
func appendChoice(n, alt node) node {
	var items []node
	for _, x := range []node{n, alt} {
		if c, ok := x.(*choice); ok {
			items = append(items, c.items...)
		} else {
			items = append(items, x)
		}
	}
	return &choice{items}
}
