package pattern

import (
	"regexp"
	"testing"

	"github.com/ava12/llkp/internal/test"
)

type samples = test.Samples

var fail = test.Fail

func TestTxt(t *testing.T) {
	test.ExpectMatches(t, Txt(""), samples{
		"":  "",
		" ": fail,
	})
	test.ExpectMatches(t, Txt("abc"), samples{
		"abc":  "abc",
		"ab":   fail,
		"abcd": fail,
		"":     fail,
	})
	test.ExpectMatches(t, TxtFold("abc"), samples{
		"abc": "abc",
		"AbC": "AbC",
		"abd": fail,
		"ab":  fail,
	})
}

func TestTxtPartial(t *testing.T) {
	p := Txt("bc")
	r, ok := p.Exec("abcd", 1)
	test.Assert(t, ok, "expecting match at 1")
	test.ExpectInt(t, 3, r.End)
	test.ExpectValue(t, "bc", r.Value)

	_, ok = p.Exec("abcd", 0)
	test.ExpectBool(t, false, ok)
	_, ok = p.Exec("abcd", 5)
	test.ExpectBool(t, false, ok)
	_, ok = p.Exec("abcd", -1)
	test.ExpectBool(t, false, ok)
}

func TestRgxIsAnchored(t *testing.T) {
	p := Rgx(regexp.MustCompile(`\d+`))
	test.ExpectMatches(t, p, samples{
		"123":  "123",
		"a123": fail,
		"":     fail,
	})

	_, ok := p.Exec("ab12", 0)
	test.ExpectBool(t, false, ok)
	r, ok := p.Exec("ab12", 2)
	test.Assert(t, ok, "expecting match at 2")
	test.ExpectInt(t, 4, r.End)

	alt := Rgx(regexp.MustCompile(`a|b`))
	r, ok = alt.Exec("xb", 1)
	test.Assert(t, ok && r.End == 2, "alternation inside regexp must stay anchored, got %v", r)
	_, ok = alt.Exec("xcb", 1)
	test.ExpectBool(t, false, ok)
}

func TestRgxString(t *testing.T) {
	_, e := RgxString("(foo")
	test.ExpectErrorCode(t, WrongRegexpError, e)

	p, e := RgxString(`[a-z]+`)
	test.Assert(t, e == nil, "unexpected error: %v", e)
	test.ExpectValue(t, "/[a-z]+/", p.String())
}

func TestChrAndRng(t *testing.T) {
	test.ExpectMatches(t, Chr(), samples{
		"1":      "1",
		".":      ".",
		"㉅": "㉅",
		"":       fail,
		"12":     fail,
	})
	test.ExpectMatches(t, Rng('0', '9'), samples{
		"0": "0",
		"5": "5",
		"9": "9",
		"a": fail,
		"@": fail,
		"":  fail,
	})
	test.ExpectMatches(t, Rng(0x80, 0xFF), samples{
		"\xff":   "\xff",
		"é": "é",
		"Ā": fail,
	})
	test.ExpectValue(t, "%x30-39", Rng('0', '9').String())
	test.ExpectValue(t, "%x41", Rng('A', 'A').String())
}

func TestOptNeverFails(t *testing.T) {
	p := Opt(Txt("a"), "none")
	test.ExpectMatches(t, p, samples{
		"a": "a",
		"":  "none",
		"b": fail,
	})

	r, ok := p.Exec("bbb", 1)
	test.Assert(t, ok, "optional must not fail")
	test.ExpectInt(t, 1, r.End)
	test.ExpectValue(t, "none", r.Value)
}

func TestExcChecksSamePosition(t *testing.T) {
	p := Exc(Chr(), Txt("X"))
	test.ExpectMatches(t, p, samples{
		"X": fail,
		"Y": "Y",
		"":  fail,
	})

	// except is matched against input at pos, not against the text matched by pattern
	q := Exc(Txt("a"), Txt("ab"))
	test.ExpectMatches(t, Seq(q, Txt("c")), samples{
		"ac": []any{"a", "c"},
	})
	_, ok := q.Exec("ab", 0)
	test.ExpectBool(t, false, ok)
}

func TestLookahead(t *testing.T) {
	digit := Rng('0', '9')
	test.ExpectMatches(t, Seq(And(Txt("5")), digit), samples{
		"5": []any{nil, "5"},
		"4": fail,
	})
	test.ExpectMatches(t, Seq(Not(Txt("5")), digit), samples{
		"5": fail,
		"4": []any{nil, "4"},
	})

	r, ok := Not(Txt("5")).Exec("4", 0)
	test.Assert(t, ok && r.End == 0 && r.Value == nil, "unexpected lookahead result %v", r)
}

func TestAnyFirstMatchWins(t *testing.T) {
	short := Txt("a")
	long := Txt("ab")
	p := Any(short, long)

	r, ok := p.Exec("ab", 0)
	test.Assert(t, ok, "expecting match")
	test.ExpectInt(t, 1, r.End)
	_, ok = p.Match("ab")
	test.ExpectBool(t, false, ok)

	test.ExpectMatches(t, Any(Txt("q"), Txt("w"), Txt("r")), samples{
		"q": "q",
		"w": "w",
		"r": "r",
		"t": fail,
		"":  fail,
	})
	test.ExpectMatches(t, Any(), samples{"": fail})
}

func TestSeq(t *testing.T) {
	test.ExpectMatches(t, Seq(Txt("abc"), Txt("123"), Txt("xyz")), samples{
		"abc123xyz":   []any{"abc", "123", "xyz"},
		"abc123xy9":   fail,
		"abc 123 xyz": fail,
	})
	test.ExpectMatches(t, Seq(Txt("123"), Txt(""), Txt("")), samples{
		"123":  []any{"123", "", ""},
		"123 ": fail,
	})
	test.ExpectMatches(t, Seq(), samples{
		"":  []any{},
		"a": fail,
	})
}

func TestRep(t *testing.T) {
	digit := Rng('0', '9')
	test.ExpectMatches(t, Rep(digit, nil, 1, Unbounded), samples{
		"123": []any{"1", "2", "3"},
		"":    fail,
		"12a": fail,
	})
	test.ExpectMatches(t, Rep(Chr(), nil, 2, 4), samples{
		"":      fail,
		"1":     fail,
		"12":    []any{"1", "2"},
		"1234":  []any{"1", "2", "3", "4"},
		"12345": fail,
	})
	test.ExpectMatches(t, Rep(Chr(), nil, 0, 0), samples{
		"":  []any{},
		"a": fail,
	})
	test.ExpectMatches(t, Rep(digit, Txt(";"), 0, Unbounded), samples{
		"1;2;3": []any{"1", "2", "3"},
		"1":     []any{"1"},
		"":      []any{},
		"1;":    fail,
		";1":    fail,
	})

	r, ok := Rep(digit, Txt(";"), 0, Unbounded).Exec("1;2;x", 0)
	test.Assert(t, ok, "expecting match")
	test.ExpectInt(t, 3, r.End)
}

func TestRepIsGreedy(t *testing.T) {
	// greedy repetition never gives back a matched item
	p := Seq(Rep(Rng('0', '9'), nil, 0, Unbounded), Txt("9"))
	test.ExpectMatches(t, p, samples{
		"129": fail,
	})

	r, ok := Rep(Txt("a"), nil, 0, 2).Exec("aaaa", 0)
	test.Assert(t, ok, "expecting match")
	test.ExpectInt(t, 2, r.End)
}

func TestRepStopsOnEmptyMatch(t *testing.T) {
	p := Rep(Opt(Txt("a"), nil), nil, 0, Unbounded)
	test.ExpectMatches(t, p, samples{
		"":    []any{},
		"aaa": []any{"a", "a", "a"},
	})
}

func TestThen(t *testing.T) {
	calls := 0
	p := Rep(Rng('0', '9'), nil, 1, Unbounded).Then(func(v any, text string) any {
		calls++
		return text + "!"
	})

	test.ExpectMatches(t, p, samples{"123": "123!"})
	test.ExpectInt(t, 1, calls)

	_, ok := p.Match("abc")
	test.ExpectBool(t, false, ok)
	test.ExpectInt(t, 1, calls)

	r, ok := p.Exec("ab12cd", 2)
	test.Assert(t, ok, "expecting match")
	test.ExpectValue(t, "12!", r.Value)
}

func TestThenPanicPropagates(t *testing.T) {
	p := Txt("a").Then(func(any, string) any {
		panic("broken transform")
	})

	defer func() {
		test.ExpectValue(t, "broken transform", recover())
	}()
	p.Match("a")
	t.Fatal("panic expected")
}

func TestParse(t *testing.T) {
	p := Txt("abc")
	v, e := p.Parse("abc")
	test.Assert(t, e == nil, "unexpected error: %v", e)
	test.ExpectValue(t, "abc", v)

	_, e = p.Parse("abd")
	test.ExpectErrorCode(t, NoMatchError, e)
}

func TestExecIsRepeatable(t *testing.T) {
	p := Seq(Rep(Rng('a', 'z'), Txt(","), 1, Unbounded), Opt(Txt("!"), nil))
	input := "a,b,c!"
	first, ok1 := p.Exec(input, 0)
	second, ok2 := p.Exec(input, 0)
	test.Assert(t, ok1 && ok2, "expecting matches")
	test.ExpectValue(t, first, second)
}

func TestNames(t *testing.T) {
	samples := map[string]*Pattern{
		`"a\"b"`:            Txt(`a"b`),
		`("a" | "b")`:       Any(Txt("a"), Txt("b")),
		`("a" "b")`:         Seq(Txt("a"), Txt("b")),
		`"a"?`:              Opt(Txt("a"), nil),
		`"a"*`:              Rep(Txt("a"), nil, 0, Unbounded),
		`"a"+:","`:          Rep(Txt("a"), Txt(","), 1, Unbounded),
		`"a"{2,3}`:          Rep(Txt("a"), nil, 2, 3),
		`"a"{2}`:            Rep(Txt("a"), nil, 2, 2),
		`"a"{2,}`:           Rep(Txt("a"), nil, 2, Unbounded),
		`. ~ "X"`:           Exc(Chr(), Txt("X")),
		`!"a"`:              Not(Txt("a")),
		`&"a"`:              And(Txt("a")),
		`%i"a"`:             TxtFold("a"),
		`"a"`:               Txt("a").Then(func(v any, _ string) any { return v }),
		`renamed`:           Txt("a").Named("renamed"),
	}

	for expected, p := range samples {
		test.ExpectValue(t, expected, p.String())
	}
}
