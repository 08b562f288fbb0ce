package trace

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// Heartbeat emits a driver-scope event at a fixed interval while a command
// runs. In a trace of a directory run, heartbeats that keep coming with no
// file span ending between them point at the file the parser is stuck on.
type Heartbeat struct {
	cancel context.CancelFunc
	done   chan struct{}
	beats  atomic.Uint64
}

// StartHeartbeat starts beating until ctx is done or Stop is called. Beats
// are parented to the span current in ctx. It returns nil when tracing is
// off or interval is not positive.
func StartHeartbeat(ctx context.Context, tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	h := &Heartbeat{cancel: cancel, done: make(chan struct{})}
	go h.run(ctx, tracer, interval, CurrentSpan(ctx).SpanID)
	return h
}

func (h *Heartbeat) run(ctx context.Context, tracer Tracer, interval time.Duration, parent uint64) {
	defer close(h.done)
	start := time.Now()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	gid := GoroutineID()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n := h.beats.Add(1)
			tracer.Emit(&Event{
				Time:     now,
				Kind:     KindHeartbeat,
				Scope:    ScopeDriver,
				ParentID: parent,
				GID:      gid,
				Name:     "heartbeat",
				Detail:   fmt.Sprintf("#%d at %s", n, now.Sub(start).Round(time.Millisecond)),
			})
		}
	}
}

// Beats is the number of heartbeats emitted so far.
func (h *Heartbeat) Beats() uint64 {
	if h == nil {
		return 0
	}
	return h.beats.Load()
}

// Stop ends the heartbeat and waits for its goroutine. It is safe to call
// more than once and on a nil Heartbeat.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.cancel()
	<-h.done
}
