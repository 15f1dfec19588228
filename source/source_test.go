package source

import (
	"testing"
)

type result struct {
	pos, line, col int
}

func TestSourceLineCol(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 1, 1},
			{100, 1, 1},
			{-5, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{100, 2, 1},
		},
		"0\n2\n4\n6789abcde\ng\ni\n": {
			{4, 3, 1},
			{5, 3, 2},
			{6, 4, 1},
			{7, 4, 2},
			{14, 4, 9},
			{19, 6, 2},
			{20, 7, 1},
			{9, 4, 4},
			{5, 3, 2},
		},
		"㉅㉅x\ny": {
			{6, 1, 3},
			{7, 1, 4},
			{8, 2, 1},
		},
	}

	for text, results := range samples {
		source := New("", text)
		for _, res := range results {
			l, c := source.LineCol(res.pos)
			if l != res.line || c != res.col {
				t.Errorf("sample %q: expected %v, got line: %d, col: %d", text, res, l, c)
			}
		}
	}
}

func TestSourceLine(t *testing.T) {
	source := New("lines", "foo\r\nbar\n\nbaz")
	samples := map[int]string{
		0: "",
		1: "foo",
		2: "bar",
		3: "",
		4: "baz",
		5: "",
	}

	for n, expected := range samples {
		got := source.Line(n)
		if got != expected {
			t.Errorf("line %d: expected %q, got %q", n, expected, got)
		}
	}
}

func TestSourcePos(t *testing.T) {
	source := New("name", "hello\nworld")
	p := source.Pos(8)
	if p.SourceName() != "name" || p.Pos() != 8 || p.Line() != 2 || p.Col() != 3 {
		t.Errorf("unexpected position: %q %d %d:%d", p.SourceName(), p.Pos(), p.Line(), p.Col())
	}
	if p.Source() != source {
		t.Error("position must refer to its source")
	}

	var empty Pos
	if empty.SourceName() != "" {
		t.Errorf("expecting empty name, got %q", empty.SourceName())
	}
}
