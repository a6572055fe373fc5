package driver

import (
	"encoding/binary"
	"fmt"

	"fortio.org/safecast"

	"formulang/internal/parser"
)

// Config carries the knobs shared by every entry point.
type Config struct {
	MaxDiagnostics   int // 0 — без ограничения
	MaxDepth         int // 0 — parser.DefaultMaxDepth
	StrictSemicolons bool
}

func (c Config) parserOptions() (parser.Options, error) {
	maxErrors, err := safecast.Conv[uint](max(c.MaxDiagnostics, 0))
	if err != nil {
		return parser.Options{}, fmt.Errorf("max diagnostics: %w", err)
	}
	return parser.Options{
		MaxErrors:        maxErrors,
		MaxDepth:         c.MaxDepth,
		StrictSemicolons: c.StrictSemicolons,
	}, nil
}

// fingerprint is mixed into cache keys: the same file checked with other
// limits may produce other diagnostics.
func (c Config) fingerprint() []byte {
	buf := make([]byte, 0, 17)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(int64(c.MaxDiagnostics)))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(int64(c.MaxDepth)))
	if c.StrictSemicolons {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	return buf
}
