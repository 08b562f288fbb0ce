package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestLevelScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopeFile, true},
		{LevelPhase, ScopeStmt, false},
		{LevelDetail, ScopeStmt, true},
		{LevelDetail, ScopeExpr, false},
		{LevelDebug, ScopeExpr, true},
	}
	for _, tt := range tests {
		t.Run(tt.level.String()+"/"+tt.scope.String(), func(t *testing.T) {
			if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
				t.Fatalf("ShouldEmit = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLevelAndMode(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Fatalf("ParseMode = %v, %v", m, err)
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat = %v, %v", f, err)
	}
}

func TestStreamTracerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)
	s := Begin(tr, ScopeStmt, "stmt:IfStatement", 0)
	Begin(tr, ScopeExpr, "expr", s.ID()).End("")
	s.WithExtra("end", "12").WithExtra("start", "0").End("ok")

	out := buf.String()
	if strings.Count(out, "\n") != 2 {
		t.Fatalf("expected begin and end only, got:\n%s", out)
	}
	if !strings.Contains(out, "stmt:IfStatement (ok) {end=12, start=0}") {
		t.Fatalf("unexpected end line:\n%s", out)
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d"} {
		tr.Emit(&Event{Kind: KindPoint, Scope: ScopeFile, Name: name})
	}
	snap := tr.Snapshot()
	if len(snap) != 3 || snap[0].Name != "b" || snap[2].Name != "d" {
		t.Fatalf("snapshot %+v", snap)
	}
	var buf bytes.Buffer
	if err := tr.Dump(&buf, FormatNDJSON); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), `"name":`) != 3 {
		t.Fatalf("dump:\n%s", buf.String())
	}
}

func TestMultiTracerFansOut(t *testing.T) {
	a := NewRingTracer(8, LevelPhase)
	b := NewRingTracer(8, LevelPhase)
	m := NewMultiTracer(LevelPhase, a, b)
	Begin(m, ScopeFile, "parse", 0).End("")
	if len(a.Snapshot()) != 2 || len(b.Snapshot()) != 2 {
		t.Fatalf("a=%d b=%d", len(a.Snapshot()), len(b.Snapshot()))
	}
}

func TestNopAndContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("missing tracer must be Nop")
	}
	s := Begin(Nop, ScopeFile, "parse", 0)
	if s.End("") != 0 || s.ID() != 0 {
		t.Fatal("nop span must be inert")
	}
	ring := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Fatal("tracer not found in context")
	}
}

func TestNewOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
}

func TestBeginContextNests(t *testing.T) {
	ring := NewRingTracer(8, LevelPhase)
	ctx := WithTracer(context.Background(), ring)
	outer, ctx := BeginContext(ctx, ScopeDriver, "driver")
	if CurrentSpan(ctx).SpanID != outer.ID() || outer.ID() == 0 {
		t.Fatalf("current span = %+v, outer = %d", CurrentSpan(ctx), outer.ID())
	}
	inner, _ := BeginContext(ctx, ScopeFile, "file")
	inner.End("")
	outer.End("")
	snap := ring.Snapshot()
	if len(snap) != 4 || snap[1].ParentID != outer.ID() || snap[1].GID != snap[0].GID {
		t.Fatalf("events = %+v", snap)
	}

	quiet, qctx := BeginContext(context.Background(), ScopeFile, "off")
	if quiet.ID() != 0 || CurrentSpan(qctx).SpanID != 0 {
		t.Fatal("a disabled span must not become current")
	}
}

func TestMultiTracerRing(t *testing.T) {
	ring := NewRingTracer(4, LevelPhase)
	var buf bytes.Buffer
	m := NewMultiTracer(LevelPhase, NewStreamTracer(&buf, LevelPhase, FormatText), ring)
	if m.Ring() != ring {
		t.Fatal("Ring() must find the ring tracer")
	}
	if NewMultiTracer(LevelPhase).Ring() != nil {
		t.Fatal("no ring expected")
	}
}

func TestRingTracerDropped(t *testing.T) {
	tr := NewRingTracer(2, LevelPhase)
	if tr.Dropped() != 0 || len(tr.Snapshot()) != 0 {
		t.Fatal("fresh ring must be empty")
	}
	for range 5 {
		tr.Emit(&Event{Kind: KindPoint, Scope: ScopeFile})
	}
	tr.Emit(&Event{Kind: KindPoint, Scope: ScopeExpr})
	if tr.Dropped() != 3 {
		t.Fatalf("Dropped = %d, want 3", tr.Dropped())
	}
	snap := tr.Snapshot()
	if len(snap) != 2 || snap[0].Seq >= snap[1].Seq {
		t.Fatalf("snapshot out of order: %+v", snap)
	}
}

func TestNewComposesSinks(t *testing.T) {
	var buf bytes.Buffer
	tests := []struct {
		mode StorageMode
		ring bool
	}{
		{ModeStream, false},
		{ModeRing, true},
		{ModeBoth, true},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			tr, err := New(Config{Level: LevelPhase, Mode: tt.mode, Output: &buf})
			if err != nil {
				t.Fatal(err)
			}
			var ring *RingTracer
			switch tr := tr.(type) {
			case *RingTracer:
				ring = tr
			case *MultiTracer:
				ring = tr.Ring()
			}
			if (ring != nil) != tt.ring {
				t.Fatalf("tracer %T, ring = %v", tr, ring)
			}
		})
	}
	if _, err := New(Config{Level: LevelPhase}); err == nil {
		t.Fatal("missing mode must be rejected")
	}
}

func TestFormatForPath(t *testing.T) {
	for path, want := range map[string]Format{
		"":               FormatText,
		"-":              FormatText,
		"run.ndjson":     FormatNDJSON,
		"out/trace.json": FormatNDJSON,
		"trace.log":      FormatText,
		"dir.json/trace": FormatText,
	} {
		if got := formatForPath(path); got != want {
			t.Errorf("formatForPath(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestHeartbeat(t *testing.T) {
	if StartHeartbeat(context.Background(), Nop, time.Millisecond) != nil {
		t.Fatal("no heartbeat without tracing")
	}
	var stopped *Heartbeat
	stopped.Stop()

	ring := NewRingTracer(DefaultRingSize, LevelError)
	ctx := WithTracer(context.Background(), ring)
	run, ctx := BeginContext(ctx, ScopeDriver, "parse dir")
	h := StartHeartbeat(ctx, ring, time.Millisecond)
	deadline := time.Now().Add(5 * time.Second)
	for h.Beats() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	run.End("")

	beats := 0
	for _, ev := range ring.Snapshot() {
		if ev.Kind != KindHeartbeat {
			continue
		}
		beats++
		if ev.ParentID != run.ID() || !strings.HasPrefix(ev.Detail, "#") {
			t.Fatalf("heartbeat %+v", ev)
		}
	}
	if beats < 2 || uint64(beats) != h.Beats() {
		t.Fatalf("recorded %d heartbeats, counter says %d", beats, h.Beats())
	}
}
