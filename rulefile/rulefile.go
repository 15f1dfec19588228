/*
Package rulefile loads named rules from YAML or JSON documents.

A document is a mapping of rule names to definitions:

	number: '1*DIGIT'          # grammar text
	word:
	  regexp: '[a-z]+'         # regular expression
	comma:
	  text: '","'              # grammar text, explicit form

Grammar text is compiled by the table the rules are registered in.
*/
package rulefile

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ava12/llkp"
	"github.com/ava12/llkp/pattern"
)

// Error codes emitted by rulefile.
const (
	// file cannot be read
	ReadError = llkp.RuleFileErrors + iota
	// document is not valid YAML or JSON
	SyntaxError
	// document is not a mapping or a definition has wrong form
	WrongRuleError
)

// Parse converts YAML or JSON document to rules.
func Parse(data []byte) (pattern.RuleMap, error) {
	return parse("", data)
}

// Load reads and parses a rule file.
func Load(path string) (pattern.RuleMap, error) {
	data, e := os.ReadFile(path)
	if e != nil {
		return nil, llkp.FormatError(ReadError, "cannot read rule file: %s", e.Error())
	}
	return parse(path, data)
}

func parse(name string, data []byte) (pattern.RuleMap, error) {
	var doc yaml.Node
	if e := yaml.Unmarshal(data, &doc); e != nil {
		msg := "invalid rule file: " + e.Error()
		if name != "" {
			msg = "invalid rule file " + name + ": " + e.Error()
		}
		return nil, llkp.NewError(SyntaxError, msg, "", 0, 0)
	}

	rules := pattern.RuleMap{}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return rules, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, wrongRule(name, root, "rule file must contain a mapping of rule names to definitions")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nil, wrongRule(name, key, "rule name must be a non-empty string")
		}
		if _, found := rules[key.Value]; found {
			return nil, wrongRule(name, key, "rule %q defined twice", key.Value)
		}

		def, e := definition(name, key.Value, value)
		if e != nil {
			return nil, e
		}
		rules[key.Value] = def
	}
	return rules, nil
}

func definition(fileName, ruleName string, n *yaml.Node) (pattern.Definition, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return pattern.Text(n.Value), nil

	case yaml.MappingNode:
		if len(n.Content) != 2 || n.Content[1].Kind != yaml.ScalarNode {
			break
		}

		switch n.Content[0].Value {
		case "text":
			return pattern.Text(n.Content[1].Value), nil
		case "regexp":
			return pattern.Regexp(n.Content[1].Value), nil
		}
	}

	return nil, wrongRule(fileName, n, "rule %q must be a string, {text: string}, or {regexp: string}", ruleName)
}

func wrongRule(name string, n *yaml.Node, msg string, params ...any) *llkp.Error {
	return llkp.FormatErrorPos(nodePos{name, n}, WrongRuleError, msg, params...)
}

type nodePos struct {
	name string
	node *yaml.Node
}

func (p nodePos) SourceName() string {
	return p.name
}

func (p nodePos) Line() int {
	return p.node.Line
}

func (p nodePos) Col() int {
	return p.node.Column
}
