package driver

import (
	"time"

	"esparse/internal/diag"
	"esparse/internal/observ"
)

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
	// PhaseDone is sent once per file by ParseDir after its last phase, or
	// instead of any phase when the summary came from the cache.
	PhaseDone
)

// PhaseEvent describes a timing phase boundary.
type PhaseEvent struct {
	Name    string
	Path    string
	Status  PhaseStatus
	Elapsed time.Duration
	// Failed is set on PhaseDone when the file has errors.
	Failed bool
	Cached bool
}

// PhaseObserver receives phase events emitted by Parse and ParseDir.
type PhaseObserver func(PhaseEvent)

// phases times the steps of one file and forwards them to the observer.
type phases struct {
	timer    *observ.Timer
	observer PhaseObserver
	timings  bool
	path     string
}

func newPhases(opts Options, path string) *phases {
	return &phases{timer: observ.NewTimer(), observer: opts.Observer, timings: opts.Timings, path: path}
}

func (p *phases) run(name string, fn func() string) {
	if p.observer != nil {
		p.observer(PhaseEvent{Name: name, Path: p.path, Status: PhaseStart})
	}
	idx := p.timer.Begin(name)
	note := fn()
	p.timer.End(idx, note)
	if p.observer != nil {
		p.observer(PhaseEvent{Name: name, Path: p.path, Status: PhaseEnd, Elapsed: p.timer.Duration(idx)})
	}
}

// finish returns the timing report and records it in bag when timings are on.
func (p *phases) finish(bag *diag.Bag) *observ.Report {
	if !p.timings {
		return nil
	}
	report := p.timer.Report()
	appendTimingDiagnostic(bag, timingPayload{
		Kind:    "parse",
		Path:    p.path,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	})
	return &report
}
