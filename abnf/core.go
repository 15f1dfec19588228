package abnf

import (
	"sort"

	"github.com/ava12/llkp/pattern"
)

// RFC 5234 appendix B.1, HEXDIG also accepts lowercase letters.
const coreRuleList = `
ALPHA  = %x41-5A / %x61-7A   ; A-Z / a-z
BIT    = "0" / "1"
CHAR   = %x01-7F
CR     = %x0D
CRLF   = CR LF
CTL    = %x00-1F / %x7F
DIGIT  = %x30-39             ; 0-9
DQUOTE = %x22
HEXDIG = DIGIT / %x41-46 / %x61-66
HTAB   = %x09
LF     = %x0A
LWSP   = *(WSP / CRLF WSP)
OCTET  = %x00-FF
SP     = %x20
VCHAR  = %x21-7E
WSP    = SP / HTAB
`

var coreRules map[string]*pattern.Pattern

func init() {
	t := pattern.NewTable(compileText, nil)
	e := RuleList(coreRuleList).Register(t)
	if e == nil {
		e = t.Resolve()
	}
	if e != nil {
		panic(e)
	}

	coreRules = make(map[string]*pattern.Pattern)
	for _, name := range t.Names() {
		p, _ := t.Lookup(name)
		coreRules[name] = p.Named(name)
	}
}

// CoreRules returns sorted names of reserved core rules.
func CoreRules() []string {
	names := make([]string, 0, len(coreRules))
	for name := range coreRules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
