package peg

import (
	"github.com/ava12/llkp"
)

// Error codes emitted by peg.
const (
	// grammar text cannot be parsed
	InvalidGrammarError = llkp.PegErrors + iota
	// character class range bounds are reversed
	InvalidRangeError
	// escape sequence denotes an invalid code point
	InvalidEscapeError
	// rule list cannot be parsed
	InvalidRuleError
)

const maxTextLen = 60

func shorten(text string) string {
	if len(text) <= maxTextLen {
		return text
	}
	return text[:maxTextLen] + "..."
}

func MakeInvalidGrammarError(text, rest string) *llkp.Error {
	if rest == "" || rest == text {
		return llkp.FormatError(InvalidGrammarError, "invalid PEG grammar %q", shorten(text))
	}
	return llkp.FormatError(InvalidGrammarError, "invalid PEG grammar %q: cannot parse %q", shorten(text), shorten(rest))
}

func MakeInvalidRangeError(class string) *llkp.Error {
	return llkp.FormatError(InvalidRangeError, "invalid range in character class %s", class)
}

func MakeInvalidEscapeError(seq string) *llkp.Error {
	return llkp.FormatError(InvalidEscapeError, "invalid escape sequence %s", seq)
}

func MakeInvalidRuleError(pos llkp.SourcePos, line string) *llkp.Error {
	return llkp.FormatErrorPos(pos, InvalidRuleError, "invalid PEG rule %q", shorten(line))
}
