package pattern

import (
	"strings"

	"github.com/ava12/llkp"
	"github.com/ava12/llkp/internal/suggest"
)

// Error codes emitted by pattern.
const (
	// input does not match a pattern (Pattern.Parse only)
	NoMatchError = llkp.PatternErrors + iota
	// a rule name is registered twice
	RuleDefinedError
	// a rule name is reserved by a grammar front-end
	ReservedRuleError
	// referenced rules are not defined
	UndefinedRuleError
	// a regular expression cannot be compiled
	WrongRegexpError
	// a definition is nil or of unknown kind
	WrongDefinitionError
	// a table cannot compile grammar text
	NoCompilerError
)

const maxNameLen = 60

func shorten(name string) string {
	if len(name) <= maxNameLen {
		return name
	}
	return name[:maxNameLen] + "..."
}

func MakeNoMatchError(name string) *llkp.Error {
	return llkp.FormatError(NoMatchError, "input does not match %s", shorten(name))
}

func MakeRuleDefinedError(name string) *llkp.Error {
	return llkp.FormatError(RuleDefinedError, "rule %q already defined", name)
}

func MakeReservedRuleError(name string) *llkp.Error {
	return llkp.FormatError(ReservedRuleError, "cannot redefine reserved rule %q", name)
}

// MakeUndefinedRuleError reports missing names, known names are used for hints.
func MakeUndefinedRuleError(names, known []string) *llkp.Error {
	items := make([]string, len(names))
	for i, name := range names {
		items[i] = name
		hints := suggest.Closest(name, known)
		if len(hints) > 0 {
			items[i] += " (did you mean " + strings.Join(hints, " or ") + "?)"
		}
	}
	return llkp.FormatError(UndefinedRuleError, "undefined rules: %s", strings.Join(items, ", "))
}

func MakeWrongRegexpError(expr string, e error) *llkp.Error {
	return llkp.FormatError(WrongRegexpError, "incorrect RegExp /%s/ (%s)", expr, e.Error())
}

func MakeWrongDefinitionError(name string) *llkp.Error {
	if name == "" {
		return llkp.FormatError(WrongDefinitionError, "empty definition")
	}
	return llkp.FormatError(WrongDefinitionError, "empty definition for rule %q", name)
}

func MakeNoCompilerError(text string) *llkp.Error {
	return llkp.FormatError(NoCompilerError, "no grammar compiler for text %q", shorten(text))
}
