package test

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ava12/llkp"
)

func fatalf(t *testing.T, message string, params ...any) {
	t.Helper()
	if len(params) > 0 {
		message = fmt.Sprintf(message, params...)
	}
	_, thisFile, _, _ := runtime.Caller(0)
	file := thisFile
	line := 0
	for i := 2; file == thisFile; i++ {
		_, file, line, _ = runtime.Caller(i)
	}
	t.Fatalf("%s at %s:%d", message, file, line)
}

func Assert(t *testing.T, cond bool, message string, params ...any) {
	t.Helper()
	if !cond {
		fatalf(t, message, params...)
	}
}

func Expect(t *testing.T, cond bool, expected, got any) {
	t.Helper()
	if !cond {
		fatalf(t, "expecting %v, got %v", expected, got)
	}
}

func ExpectBool(t *testing.T, expected, got bool) {
	t.Helper()
	Expect(t, expected == got, expected, got)
}

func ExpectInt(t *testing.T, expected, got int) {
	t.Helper()
	Expect(t, expected == got, expected, got)
}

// ExpectValue compares result trees deeply.
func ExpectValue(t *testing.T, expected, got any) {
	t.Helper()
	if diff := cmp.Diff(expected, got); diff != "" {
		fatalf(t, "unexpected value (-want +got):\n%s", diff)
	}
}

func ExpectErrorCode(t *testing.T, expected int, e error) {
	t.Helper()
	if e != nil {
		ee, valid := e.(*llkp.Error)
		if valid && ee.Code == expected {
			return
		}
	}

	fatalf(t, "expecting error code %d, got %v", expected, e)
}

// Matcher is implemented by *pattern.Pattern.
type Matcher interface {
	Match(input string) (any, bool)
}

type failure struct{}

// Fail is a sample result meaning "no match".
var Fail = failure{}

// Samples maps inputs to expected full-match results, Fail means no match.
type Samples map[string]any

// ExpectMatches checks every sample against p.
func ExpectMatches(t *testing.T, p Matcher, samples Samples) {
	t.Helper()
	for input, expected := range samples {
		got, ok := p.Match(input)
		if expected == Fail {
			if ok {
				t.Errorf("%v: input %q: expecting no match, got %#v", p, input, got)
			}
			continue
		}

		if !ok {
			t.Errorf("%v: input %q: expecting %#v, got no match", p, input, expected)
			continue
		}
		if diff := cmp.Diff(expected, got); diff != "" {
			t.Errorf("%v: input %q: unexpected value (-want +got):\n%s", p, input, diff)
		}
	}
}
