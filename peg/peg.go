/*
Package peg compiles grammars written in PEG notation into patterns.

Supported syntax, from the tightest binding:

	"text" 'text'         literal, escapes: \n \r \t \xHH \uHHHH \UHHHHHHHH, other escaped characters stand for themselves
	[a-z_] [^"\\]         character class and negated character class
	.                     any character
	name                  rule reference
	( ... ) ( ... ).x     group, group element selection by index or label
	e? e* e+ e<sep>* e<sep>+   option and repetitions, optionally with separator
	&e !e                 positive and negative lookahead, consume nothing
	a ~ b                 a unless b matches at the same position
	label:e               labeled element, sequence yields a map of labeled values
	a b                   sequence, elements are separated by white space
	a / b                 ordered choice

There are no predefined rules.
*/
package peg

import (
	"github.com/ava12/llkp/pattern"
	"github.com/ava12/llkp/source"
)

// NewTable creates an empty rule table compiling PEG text.
func NewTable() *pattern.Table {
	return pattern.NewTable(compileText, nil)
}

// New compiles start definition with a set of rules.
func New(def pattern.Definition, rules ...pattern.RuleSet) (*pattern.Pattern, error) {
	return NewTable().Assemble(def, rules)
}

// Compile compiles PEG grammar text with a set of rules.
func Compile(text string, rules ...pattern.RuleSet) (*pattern.Pattern, error) {
	return New(pattern.Text(text), rules...)
}

type ruleList struct {
	name, text string
}

// RuleList returns a rule set defined by a list of "name <- expression" rules.
// A rule may span several lines, # starts a comment.
func RuleList(text string) pattern.RuleSet {
	return ruleList{"", text}
}

// NamedRuleList is the same as RuleList, name is used in error messages.
func NamedRuleList(name, text string) pattern.RuleSet {
	return ruleList{name, text}
}

func (rl ruleList) Register(t *pattern.Table) error {
	defs, e := parseRuleList(source.New(rl.name, rl.text))
	if e != nil {
		t.Fail(e)
		return e
	}

	for _, def := range defs {
		p, e := compile(t, def.body)
		if e == nil {
			e = t.Define(def.name, p)
		}
		if e != nil {
			t.Fail(e)
			return e
		}
	}
	return t.Err()
}
