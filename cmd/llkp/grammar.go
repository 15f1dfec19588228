package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ava12/llkp/abnf"
	"github.com/ava12/llkp/pattern"
	"github.com/ava12/llkp/peg"
	"github.com/ava12/llkp/rulefile"
)

type grammarParams struct {
	syntax string
	rules  []string
	start  string
}

type syntax struct {
	newTable func() *pattern.Table
	ruleList func(name, text string) pattern.RuleSet
}

var syntaxes = map[string]syntax{
	"abnf": {abnf.NewTable, abnf.NamedRuleList},
	"peg":  {peg.NewTable, peg.NamedRuleList},
}

func (p *grammarParams) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&p.syntax, "syntax", "s", "abnf", "grammar syntax: abnf or peg")
	fs.StringSliceVarP(&p.rules, "rules", "r", nil, "rule file (.abnf, .peg, .yaml, .yml, or .json), may be repeated")
	fs.StringVarP(&p.start, "start", "e", "", "start expression, usually a rule name")
}

func (p *grammarParams) validate() error {
	if _, found := syntaxes[p.syntax]; !found {
		return fmt.Errorf("unknown syntax %q, expecting abnf or peg", p.syntax)
	}
	if p.start == "" {
		return fmt.Errorf("no start expression specified")
	}
	return nil
}

// compile builds start expression with all rule files, extra rule sets are registered last.
func (p *grammarParams) compile(extra ...pattern.RuleSet) (*pattern.Pattern, *pattern.Table, error) {
	s := syntaxes[p.syntax]
	sets := make([]pattern.RuleSet, 0, len(p.rules)+len(extra))
	for _, name := range p.rules {
		rs, e := loadRules(name, s)
		if e != nil {
			return nil, nil, e
		}
		sets = append(sets, rs)
	}

	t := s.newTable()
	start, e := t.Assemble(pattern.Text(p.start), append(sets, extra...))
	if e != nil {
		return nil, nil, e
	}
	return start, t, nil
}

// loadRules picks rule file format by extension. Rule lists in unknown files use grammar syntax.
func loadRules(name string, s syntax) (pattern.RuleSet, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".yaml" || ext == ".yml" || ext == ".json" {
		rules, e := rulefile.Load(name)
		if e != nil {
			return nil, e
		}
		return rules, nil
	}

	data, e := os.ReadFile(name)
	if e != nil {
		return nil, e
	}

	switch ext {
	case ".abnf":
		return abnf.NamedRuleList(name, string(data)), nil
	case ".peg":
		return peg.NamedRuleList(name, string(data)), nil
	default:
		return s.ruleList(name, string(data)), nil
	}
}
