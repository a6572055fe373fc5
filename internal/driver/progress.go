package driver

import "time"

// Stage describes a step of checking one source.
type Stage string

const (
	StageLoad  Stage = "load"
	StageParse Stage = "parse"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the source is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the source is being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the source was parsed without errors.
	StatusDone Status = "done"
	// StatusCached indicates diagnostics were restored from the disk cache.
	StatusCached Status = "cached"
	// StatusError indicates the source produced error diagnostics or failed to load.
	StatusError Status = "error"
)

// Event reports progress for a source (or for the whole run when Path is empty).
type Event struct {
	Path    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe
// for concurrent use: workers report from their own goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) { f(evt) }

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
