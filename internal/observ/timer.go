package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase records the duration and note of one driver step.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the phases of one file. It is not safe for concurrent use.
type Timer struct {
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 4)} }

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Duration returns the recorded duration of a finished phase.
func (t *Timer) Duration(idx int) time.Duration {
	if idx < 0 || idx >= len(t.phases) {
		return 0
	}
	return t.phases[idx].Dur
}

// Summary returns a human-readable table of all tracked phases.
func (t *Timer) Summary() string {
	return t.Report().Summary()
}

// PhaseReport is the serialisable form of one phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report aggregates the phases of a timer.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report returns the phases and the total in milliseconds.
func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{
		Phases: make([]PhaseReport, len(t.phases)),
	}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// Summary renders r as an aligned table.
func (r Report) Summary() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-20s %7.2f ms\n", "total", r.TotalMS)
	return b.String()
}

// Merge sums reports phase by phase, keeping the order in which phase
// names first appear. Notes are dropped.
func Merge(reports ...Report) Report {
	var out Report
	index := make(map[string]int)
	for _, r := range reports {
		out.TotalMS += r.TotalMS
		for _, p := range r.Phases {
			i, ok := index[p.Name]
			if !ok {
				i = len(out.Phases)
				index[p.Name] = i
				out.Phases = append(out.Phases, PhaseReport{Name: p.Name})
			}
			out.Phases[i].DurationMS += p.DurationMS
		}
	}
	return out
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
