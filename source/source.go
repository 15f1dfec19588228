/*
Package source defines named source text with line and column lookup.
Grammar compilers use it to report the position of malformed rule definitions.
*/
package source

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Source holds named text and offsets of its line starts.
type Source struct {
	name       string
	content    string
	lineStarts []int
}

// New creates a source for given content.
func New(name, content string) *Source {
	s := &Source{name: name, content: content}
	lineCnt := strings.Count(content, "\n") + 1
	s.lineStarts = make([]int, 1, lineCnt)
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}

	return s
}

// Name returns source name.
func (s *Source) Name() string {
	return s.name
}

// Content returns source text.
func (s *Source) Content() string {
	return s.content
}

// Len returns text length in bytes.
func (s *Source) Len() int {
	return len(s.content)
}

// LineCol returns 1-based line and column numbers (in code points) for byte offset pos.
// pos is clamped to the text bounds.
func (s *Source) LineCol(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.content) {
		pos = len(s.content)
	}

	lineIndex := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > pos
	}) - 1
	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCountInString(s.content[lineStart:pos]) + 1
}

// Line returns the text of 1-based line number n without line terminator,
// empty string if there is no such line.
func (s *Source) Line(n int) string {
	if n <= 0 || n > len(s.lineStarts) {
		return ""
	}

	start := s.lineStarts[n-1]
	end := len(s.content)
	if n < len(s.lineStarts) {
		end = s.lineStarts[n] - 1
	}
	return strings.TrimRight(s.content[start:end], "\r")
}

// Pos returns position information for byte offset pos.
func (s *Source) Pos(pos int) Pos {
	line, col := s.LineCol(pos)
	return Pos{s, pos, line, col}
}

// Pos is a position in source text, implements llkp.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col int
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.name
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}
