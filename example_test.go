package llkp_test

import (
	"fmt"

	"github.com/ava12/llkp/abnf"
	"github.com/ava12/llkp/pattern"
	"github.com/ava12/llkp/peg"
	"github.com/ava12/llkp/transform"
)

func Example() {
	input := `foo = hello
bar = world
[sec]
baz =
[sec.subsec]
qux = !
`
	grammar := `
config  = *(section / value / LF)
section = "[" sec-name "]" LF
value   = name *WSP "=" *WSP ?text LF
`
	result := make(map[string]string)
	prefix := ""
	rules := pattern.RuleFunc(func(t *pattern.Table) {
		t.Define("name", pattern.Regexp(`[a-z]+`))
		t.Define("text", pattern.Regexp(`[^\n]+`))
		t.Define("sec-name", t.Rule(pattern.Regexp(`[a-z]+(?:\.[a-z]+)*`)).Then(func(v any, _ string) any {
			prefix = v.(string) + "."
			return v
		}))
	})

	configPattern, e := abnf.New(pattern.Text("config"), abnf.RuleList(grammar), rules, pattern.RuleFunc(func(t *pattern.Table) {
		t.Decorate(func(name string, p *pattern.Pattern) *pattern.Pattern {
			if name != "value" {
				return p
			}
			return p.Then(func(v any, _ string) any {
				value, _ := transform.Pick(v, 4).(string)
				result[prefix+transform.Pick(v, 0).(string)] = value
				return v
			})
		})
	}))
	if e != nil {
		fmt.Println(e)
		return
	}

	if _, e = configPattern.Parse(input); e != nil {
		fmt.Println(e)
		return
	}

	fmt.Println(len(result))
	fmt.Println(result["foo"], result["bar"], result["sec.baz"], result["sec.subsec.qux"])
	// Output:
	// 4
	// hello world  !
}

func Example_peg() {
	number, e := peg.Compile(`"-"? [0-9]+`)
	if e != nil {
		fmt.Println(e)
		return
	}

	number = number.Then(transform.ParseInt(10))
	list, e := peg.New(pattern.Text(`("[" number<"," " "*>* "]").1`), pattern.RuleMap{"number": number})
	if e != nil {
		fmt.Println(e)
		return
	}

	v, ok := list.Match("[1, -2,3]")
	fmt.Println(v, ok)
	_, ok = list.Match("[1,]")
	fmt.Println(ok)
	// Output:
	// [1 -2 3] true
	// false
}
