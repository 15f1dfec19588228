package pattern

import (
	"sort"
)

// Definition is a rule definition: Text, Regexp, Func, or *Pattern.
type Definition interface {
	definition()
}

// Text is grammar text compiled by the table's front-end.
type Text string

// Regexp is a regular expression source, the rule matches it at the current position.
type Regexp string

// Func is a raw matching function.
type Func ExecFunc

func (Text) definition()   {}
func (Regexp) definition() {}
func (Func) definition()   {}

// CompileFunc compiles grammar text, references to other rules must be obtained with t.Ref.
type CompileFunc func(t *Table, text string) (*Pattern, error)

// Decorator wraps a named rule when references are bound.
type Decorator func(name string, p *Pattern) *Pattern

// RuleSet registers rules in a table.
type RuleSet interface {
	Register(t *Table) error
}

// RuleMap is a literal rule set, rules are registered in name order.
type RuleMap map[string]Definition

// Register defines every rule of m.
func (m RuleMap) Register(t *Table) error {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t.Define(name, m[name])
	}
	return t.Err()
}

// RuleFunc registers rules programmatically. Errors are collected by the table.
type RuleFunc func(t *Table)

// Register calls f.
func (f RuleFunc) Register(t *Table) error {
	f(t)
	return t.Err()
}

type cell struct {
	target *Pattern
}

// Table maps rule names to patterns.
// A table is filled and resolved once and is read-only after that,
// it is not safe for concurrent modification.
//
// Table methods that build patterns record the first error,
// which is then returned by Err and Resolve.
type Table struct {
	compile    CompileFunc
	reserved   map[string]*Pattern
	rules      map[string]*Pattern
	refs       map[string]*Pattern
	cells      map[string]*cell
	decorators []Decorator
	err        error
}

// NewTable creates empty table. compile may be nil if no Text definitions are used.
// Reserved rules are referenced directly and cannot be redefined.
func NewTable(compile CompileFunc, reserved map[string]*Pattern) *Table {
	return &Table{
		compile:  compile,
		reserved: reserved,
		rules:    make(map[string]*Pattern),
		refs:     make(map[string]*Pattern),
		cells:    make(map[string]*cell),
	}
}

// Err returns the first recorded error.
func (t *Table) Err() error {
	return t.err
}

// Fail records an error unless there is one already.
func (t *Table) Fail(e error) {
	if t.err == nil {
		t.err = e
	}
}

// Decorate adds a decorator applied to every referenced rule by Resolve.
func (t *Table) Decorate(d Decorator) {
	t.decorators = append(t.decorators, d)
}

// Ref returns a pattern executing named rule. The rule may be defined later,
// but must be defined before Resolve.
func (t *Table) Ref(name string) *Pattern {
	if p, found := t.reserved[name]; found {
		return p
	}

	p := t.refs[name]
	if p != nil {
		return p
	}

	c := &cell{}
	t.cells[name] = c
	p = New(name, func(input string, pos int) (Result, bool) {
		if c.target == nil {
			panic("pattern: unresolved rule " + name)
		}
		return c.target.exec(input, pos)
	})
	t.refs[name] = p
	return p
}

// Build converts a definition to a pattern. name is used for Func definitions and errors.
func (t *Table) Build(def Definition, name string) (*Pattern, error) {
	switch d := def.(type) {
	case Text:
		if t.compile == nil {
			return nil, MakeNoCompilerError(string(d))
		}
		return t.compile(t, string(d))

	case Regexp:
		return RgxString(string(d))

	case Func:
		if d == nil {
			return nil, MakeWrongDefinitionError(name)
		}
		if name == "" {
			name = "<func>"
		}
		return New(name, ExecFunc(d)), nil

	case *Pattern:
		if d == nil {
			return nil, MakeWrongDefinitionError(name)
		}
		return d, nil

	default:
		return nil, MakeWrongDefinitionError(name)
	}
}

// Rule builds an anonymous pattern. On error the error is recorded and a never matching pattern is returned.
func (t *Table) Rule(def Definition) *Pattern {
	p, e := t.Build(def, "")
	if e != nil {
		t.Fail(e)
		return Nothing("<error>")
	}
	return p
}

// Define builds and registers named rule.
// Errors are also recorded in the table.
func (t *Table) Define(name string, def Definition) error {
	p, e := t.Build(def, name)
	if e == nil {
		e = t.Set(name, p)
	}
	if e != nil {
		t.Fail(e)
	}
	return e
}

// Set registers a compiled pattern as named rule.
func (t *Table) Set(name string, p *Pattern) error {
	if _, found := t.reserved[name]; found {
		return MakeReservedRuleError(name)
	}
	if _, found := t.rules[name]; found {
		return MakeRuleDefinedError(name)
	}
	if p == nil {
		return MakeWrongDefinitionError(name)
	}

	t.rules[name] = p
	return nil
}

// Lookup returns registered rule.
func (t *Table) Lookup(name string) (*Pattern, bool) {
	p, found := t.rules[name]
	if !found {
		p, found = t.reserved[name]
	}
	return p, found
}

// Names returns sorted names of registered rules.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.rules))
	for name := range t.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve binds all references to their rules.
// Returns the first recorded error or the list of referenced but undefined rules.
func (t *Table) Resolve() error {
	if t.err != nil {
		return t.err
	}

	var undefined []string
	for name, c := range t.cells {
		if c.target != nil {
			continue
		}

		p := t.rules[name]
		if p == nil {
			undefined = append(undefined, name)
			continue
		}

		for _, d := range t.decorators {
			p = d(name, p)
		}
		c.target = p
	}

	if len(undefined) > 0 {
		sort.Strings(undefined)
		known := t.Names()
		for name := range t.reserved {
			known = append(known, name)
		}
		t.err = MakeUndefinedRuleError(undefined, known)
		return t.err
	}

	return nil
}

// Assemble registers rule sets, builds start definition, and resolves references.
func (t *Table) Assemble(start Definition, rules []RuleSet) (*Pattern, error) {
	for _, rs := range rules {
		if rs == nil {
			continue
		}
		if e := rs.Register(t); e != nil {
			return nil, e
		}
	}

	p, e := t.Build(start, "")
	if e == nil {
		e = t.Resolve()
	}
	if e != nil {
		return nil, e
	}
	return p, nil
}
