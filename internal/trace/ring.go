package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the most recent events in memory so that a failed parse
// can be explained after the fact without streaming every span.
type RingTracer struct {
	mu      sync.Mutex
	buf     []Event
	written uint64
	level   Level
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = DefaultRingSize
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

// Emit stores ev, overwriting the oldest event once the ring is full.
// Heartbeats are kept at every level so a dump shows whether a run stalled.
func (t *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	slot := &t.buf[t.written%uint64(len(t.buf))]
	*slot = *ev
	slot.Seq = NextSeq()
	t.written++
	t.mu.Unlock()
}

// Snapshot copies the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	size := uint64(len(t.buf))
	if t.written <= size {
		return append([]Event(nil), t.buf[:t.written]...)
	}
	oldest := t.written % size
	out := make([]Event, 0, size)
	out = append(out, t.buf[oldest:]...)
	return append(out, t.buf[:oldest]...)
}

// Dropped is the number of events that were overwritten.
func (t *RingTracer) Dropped() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if size := uint64(len(t.buf)); t.written > size {
		return t.written - size
	}
	return 0
}

// Dump writes the stored events to w, oldest first.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	events := t.Snapshot()
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
