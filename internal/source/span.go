package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) inside one file.
// Line and Col locate Start (both 1-based, Col counted in runes); they are
// filled by the lexer so that downstream consumers need no FileSet to report
// positions.
type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
	Line  uint32
	Col   uint32
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

// Pos returns the start position of the span.
func (s Span) Pos() LineCol {
	return LineCol{Line: s.Line, Col: s.Col}
}

func (s Span) String() string {
	if s.Line == 0 {
		return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
	}
	return fmt.Sprintf("%d:%d-%d@%d:%d", s.File, s.Start, s.End, s.Line, s.Col)
}

// Cover returns the smallest span that contains both s and other.
// The line/column of the earlier start wins.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
		s.Line = other.Line
		s.Col = other.Col
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Contains reports whether other lies entirely inside s.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && other.Start >= s.Start && other.End <= s.End
}
