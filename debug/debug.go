// Package debug traces pattern execution using logrus.
package debug

import (
	"strconv"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/ava12/llkp/pattern"
)

// ExcerptLen is the maximum number of characters of input logged at each call.
const ExcerptLen = 20

// depth is shared by all watched patterns so nested calls of different rules are visible.
var depth atomic.Int32

func excerpt(input string, pos int) string {
	rest := input[pos:]
	n := 0
	for i := range rest {
		if n == ExcerptLen {
			rest = rest[:i]
			break
		}
		n++
	}
	return strconv.Quote(rest)
}

// Watch returns a pattern that behaves like p and logs every execution at debug level:
// "enter" before, then "match" or "fail" after. alias replaces pattern name in log if not empty.
func Watch(p *pattern.Pattern, log logrus.FieldLogger, alias string) *pattern.Pattern {
	name := alias
	if name == "" {
		name = p.String()
	}

	return pattern.New(name, func(input string, pos int) (pattern.Result, bool) {
		d := depth.Add(1)
		defer depth.Add(-1)

		entry := log.WithFields(logrus.Fields{
			"rule":  name,
			"depth": int(d),
			"pos":   pos,
			"input": excerpt(input, pos),
		})
		entry.Debug("enter")

		r, ok := p.Exec(input, pos)
		if ok {
			entry.WithFields(logrus.Fields{"end": r.End, "value": r.Value}).Debug("match")
		} else {
			entry.Debug("fail")
		}
		return r, ok
	})
}

// Trace returns a rule set making the table watch every referenced rule.
func Trace(log logrus.FieldLogger) pattern.RuleSet {
	return pattern.RuleFunc(func(t *pattern.Table) {
		t.Decorate(func(name string, p *pattern.Pattern) *pattern.Pattern {
			return Watch(p, log, name)
		})
	})
}
