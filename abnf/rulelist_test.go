package abnf

import (
	"testing"

	"github.com/ava12/llkp"
	"github.com/ava12/llkp/internal/test"
	"github.com/ava12/llkp/pattern"
)

const uriRules = `
; simplified RFC 3986 URI reference
uri         = scheme:[(scheme-name ":").0] auth:[("//" authority).1]
              path:path query:[("?" query).1] hash:[("#" fragment).1]
scheme-name = %r/[a-zA-Z][a-zA-Z0-9+.-]*/
authority   = user:[(userinfo "@").0] host:host port:[(":" port).1]
userinfo    = %r/[^@\/?#]*/
host        = %r/[^:\/?#]*/
port        = %r/[0-9]*/
path        = %r/[^?#]*/
query       = %r/[^#]*/
fragment    = %r/.*/  ; up to the end
`

func TestRuleListURI(t *testing.T) {
	p, e := New(pattern.Text("uri"), NamedRuleList("uri.abnf", uriRules))
	test.Assert(t, e == nil, "unexpected error: %v", e)

	test.ExpectMatches(t, p, samples{
		"https://lync.contoso.com:443/ucwa/me?context=123": map[string]any{
			"scheme": "https",
			"auth":   map[string]any{"user": nil, "host": "lync.contoso.com", "port": "443"},
			"path":   "/ucwa/me",
			"query":  "context=123",
			"hash":   nil,
		},
		"?message=how are you?": map[string]any{
			"scheme": nil,
			"auth":   nil,
			"path":   "",
			"query":  "message=how are you?",
			"hash":   nil,
		},
		"ftp://user@host/a#b": map[string]any{
			"scheme": "ftp",
			"auth":   map[string]any{"user": "user", "host": "host", "port": nil},
			"path":   "/a",
			"query":  nil,
			"hash":   "b",
		},
	})
}

func TestRuleListIncremental(t *testing.T) {
	rules := RuleList(`greeting = "hello" / "hi"
greeting =/ "hey"
         / "yo" ; more
name     = 1*ALPHA

phrase   = greeting 1*WSP name
`)
	p, e := New(pattern.Text("phrase"), rules)
	test.Assert(t, e == nil, "unexpected error: %v", e)
	test.ExpectMatches(t, p, samples{
		"hi bob":  []any{"hi", []any{" "}, []any{"b", "o", "b"}},
		"yo  al":  []any{"yo", []any{" ", " "}, []any{"a", "l"}},
		"hey":     fail,
		"howdy x": fail,
	})
}

func TestRuleListMixedWithRuleMap(t *testing.T) {
	p, e := Compile("list", RuleList("list = 1*{sep}item\r\n"), pattern.RuleMap{
		"sep":  pattern.Regexp(`\s*,\s*`),
		"item": pattern.Regexp(`\w+`),
	})
	test.Assert(t, e == nil, "unexpected error: %v", e)
	test.ExpectMatches(t, p, samples{
		"a, b ,c": []any{"a", "b", "c"},
		"a,":      fail,
	})
}

func TestRuleListErrors(t *testing.T) {
	_, e := Compile("a", NamedRuleList("bad.abnf", "a = \"x\"\nb = (\n"))
	test.ExpectErrorCode(t, InvalidRuleError, e)
	ee := e.(*llkp.Error)
	test.ExpectInt(t, 2, ee.Line)
	test.ExpectInt(t, 5, ee.Col)
	test.ExpectValue(t, "bad.abnf", ee.SourceName)

	_, e = Compile("a", RuleList("  a = \"x\"\n"))
	test.ExpectErrorCode(t, InvalidRuleError, e)

	_, e = Compile("x", RuleList("x =/ \"a\"\n"))
	test.ExpectErrorCode(t, IncrementalRuleError, e)

	_, e = Compile("x", RuleList("x = \"a\"\nx = \"b\"\n"))
	test.ExpectErrorCode(t, pattern.RuleDefinedError, e)
	test.ExpectInt(t, 2, e.(*llkp.Error).Line)

	_, e = Compile("ALPHA", RuleList("ALPHA = \"a\"\n"))
	test.ExpectErrorCode(t, pattern.ReservedRuleError, e)

	_, e = Compile("x", RuleList("x = y\n"))
	test.ExpectErrorCode(t, pattern.UndefinedRuleError, e)
}

func TestScenarios(t *testing.T) {
	test.ExpectMatches(t, mustCompile(t, `1*DIGIT`), samples{
		"123": []any{"1", "2", "3"},
		"":    fail,
	})

	test.ExpectMatches(t, mustCompile(t, `*x`, pattern.RuleMap{"x": pattern.Text(`"a" / "b"`)}), samples{
		"abab": []any{"a", "b", "a", "b"},
		"abc":  fail,
	})

	test.ExpectMatches(t, mustCompile(t, `%x30-39`), samples{
		"5": "5",
		"q": fail,
	})

	test.ExpectMatches(t, mustCompile(t, `. ~ "X"`), samples{
		"X": fail,
		"Y": "Y",
	})
}
