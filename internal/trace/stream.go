package trace

import (
	"bufio"
	"io"
	"sync"
)

// StreamTracer writes every event as it arrives. Output is buffered;
// Flush or Close pushes it to the underlying writer.
type StreamTracer struct {
	mu     sync.Mutex
	buf    *bufio.Writer
	closer io.Closer // nil, если писатель не наш (stderr, буфер теста)
	level  Level
	format Format
}

// NewStreamTracer writes to w without taking ownership of it.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{buf: bufio.NewWriter(w), level: level, format: format}
}

// newOwnedStreamTracer closes wc on Close.
func newOwnedStreamTracer(wc io.WriteCloser, level Level, format Format) *StreamTracer {
	t := NewStreamTracer(wc, level, format)
	t.closer = wc
	return t
}

func (t *StreamTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	data := FormatEvent(ev, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	// ошибки записи трассы не должны ломать разбор
	_, _ = t.buf.Write(data) //nolint:errcheck
	// heartbeat должен быть виден сразу, иначе зависание не заметить
	if ev.Kind == KindHeartbeat {
		_ = t.buf.Flush() //nolint:errcheck
	}
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.Flush()
}

func (t *StreamTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.buf.Flush()
	if t.closer != nil {
		if cerr := t.closer.Close(); err == nil {
			err = cerr
		}
		t.closer = nil
	}
	return err
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
