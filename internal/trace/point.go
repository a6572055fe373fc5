package trace

import "time"

// PointEvent builds an instant event; nothing is allocated when the tracer
// would drop it.
type PointEvent struct {
	tracer Tracer
	ev     *Event
}

// Point prepares an instant event. Call Emit to record it.
func Point(t Tracer, scope Scope, name, detail string) *PointEvent {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return nil
	}
	return &PointEvent{
		tracer: t,
		ev: &Event{
			Time:   time.Now(),
			Kind:   KindPoint,
			Scope:  scope,
			Name:   name,
			Detail: detail,
		},
	}
}

// WithExtra adds a key-value pair to the event.
func (p *PointEvent) WithExtra(key, value string) *PointEvent {
	if p == nil {
		return nil
	}
	if p.ev.Extra == nil {
		p.ev.Extra = make(map[string]string)
	}
	p.ev.Extra[key] = value
	return p
}

// Emit records the event.
func (p *PointEvent) Emit() {
	if p == nil {
		return
	}
	p.ev.Seq = NextSeq()
	p.tracer.Emit(p.ev)
}
