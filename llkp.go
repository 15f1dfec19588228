/*
Package llkp is a parser combinator library with ABNF and PEG front-ends.

Consists of subpackages:
  - pattern: patterns (parsing functions), primitive combinators, and rule tables with lazy references;
  - transform: result-shaping functions used with Pattern.Then;
  - abnf: compiles grammars written in ABNF (RFC 5234 with extensions) into patterns;
  - peg: compiles grammars written in PEG notation into patterns;
  - debug: tracing decorators for patterns and rule tables;
  - rulefile: loads rule tables from YAML or JSON files;
  - source: source text with line and column lookup;
  - cmd/llkp: console utility parsing input with a grammar.

Typical usage is:

1. Describe a grammar as a start expression and a set of named rules.
Each rule is either grammar text, a regular expression, a matching function, or an already compiled pattern.

2. Compile the grammar using abnf.New or peg.New. All grammar errors are reported at this step.

3. Attach transforms to rules to shape results (select, merge, join, parse numbers, etc.).

4. Use Pattern.Match to parse a whole input or Pattern.Exec to match a prefix at a given position.
*/
package llkp

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	PatternErrors  = 1   // used by pattern
	AbnfErrors     = 101 // used by abnf
	PegErrors      = 201 // used by peg
	RuleFileErrors = 301 // used by rulefile
)

// Error is the error type used by llkp subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source text or 0.
	Line int

	// Col contains column number in source text or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos implements this interface.
type SourcePos interface {
	// SourceName returns source name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if line != 0 && col != 0 {
		if name == "" {
			msg += fmt.Sprintf(" at line %d col %d", line, col)
		} else {
			msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
		}
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// ErrorCode returns the code of e if it is an *Error, 0 otherwise.
func ErrorCode(e error) int {
	ee, valid := e.(*Error)
	if !valid || ee == nil {
		return 0
	}
	return ee.Code
}
