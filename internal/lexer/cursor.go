package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"formulang/internal/source"
)

// Cursor представляет собой позицию в файле.
// Line/Col ведутся инкрементально, поэтому SpanFrom стоит O(1).
type Cursor struct {
	File    *source.File
	Off     uint32
	limit   uint32
	line    uint32
	col     uint32 // в рунах, 1-based
	runeEnd uint32 // конец последней начатой руны
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, limit: limit, line: 1, col: 1}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.Off >= c.limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Peek2 читает текущий и следующий байт, если есть, иначе возвращает 0, 0, false
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.limit {
		return 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	switch {
	case b == '\n':
		c.line++
		c.col = 1
		c.runeEnd = c.Off + 1
	case c.Off >= c.runeEnd:
		// битые байты считаются по одному, как в utf8.RuneCount
		size := 1
		if b >= utf8.RuneSelf {
			_, size = utf8.DecodeRune(c.File.Content[c.Off:])
		}
		c.runeEnd = c.Off + uint32(size) //nolint:gosec // size <= utf8.UTFMax
		c.col++
	}
	c.Off++
	return b
}

// Advance съедает n байт.
func (c *Cursor) Advance(n int) {
	for ; n > 0 && !c.EOF(); n-- {
		c.Bump()
	}
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.File.Content[c.Off] != b {
		return false
	}
	c.Bump()
	return true
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark struct {
	off  uint32
	line uint32
	col  uint32
}

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark{off: c.Off, line: c.line, col: c.col}
}

// SpanFrom получает Span для фрагмента, начиная с метки.
// Line/Col относятся к началу фрагмента.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.File.ID,
		Start: m.off,
		End:   c.Off,
		Line:  m.line,
		Col:   m.col,
	}
}

// Text returns the source bytes between the mark and the cursor.
func (c *Cursor) Text(m Mark) string {
	return string(c.File.Content[m.off:c.Off])
}
