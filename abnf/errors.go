package abnf

import (
	"github.com/ava12/llkp"
)

// Error codes emitted by abnf.
const (
	// grammar text cannot be parsed
	InvalidGrammarError = llkp.AbnfErrors + iota
	// character range bounds are reversed or out of Unicode range
	InvalidRangeError
	// rule list line cannot be parsed
	InvalidRuleError
	// incremental alternative for a rule not defined earlier in the list
	IncrementalRuleError
	// repetition minimum exceeds maximum
	InvalidRepeatError
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
		return llkp.FormatError(InvalidGrammarError, "invalid ABNF grammar %q", shorten(text))
	}
	return llkp.FormatError(InvalidGrammarError, "invalid ABNF grammar %q: cannot parse %q", shorten(text), shorten(rest))
}

func MakeInvalidRangeError(min, max int) *llkp.Error {
	return llkp.FormatError(InvalidRangeError, "invalid character range %%x%X-%X", min, max)
}

func MakeInvalidRuleError(pos llkp.SourcePos, line string) *llkp.Error {
	return llkp.FormatErrorPos(pos, InvalidRuleError, "invalid ABNF rule %q", shorten(line))
}

func MakeIncrementalRuleError(pos llkp.SourcePos, name string) *llkp.Error {
	return llkp.FormatErrorPos(pos, IncrementalRuleError, "rule %q is not defined before =/", name)
}

func MakeInvalidRepeatError(min, max int) *llkp.Error {
	return llkp.FormatError(InvalidRepeatError, "invalid repetition %d*%d", min, max)
}
