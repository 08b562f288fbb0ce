package dialect

// Hint is a small piece of evidence suggesting a particular dialect. It is
// not a diagnostic by itself.
type Hint struct {
	Dialect Kind
	Score   int
	Reason  string
	// Start and End are byte offsets of the tokens that gave the hint.
	Start, End int
}

// Evidence aggregates the hints of one file.
type Evidence struct {
	hints []Hint
}

// NewEvidence creates an empty Evidence.
func NewEvidence() *Evidence {
	return &Evidence{hints: make([]Hint, 0, 16)}
}

// Add appends a hint.
func (e *Evidence) Add(h Hint) {
	if e == nil {
		return
	}
	e.hints = append(e.hints, h)
}

// Hints returns the collected hints in the order they were added.
func (e *Evidence) Hints() []Hint {
	if e == nil {
		return nil
	}
	return e.hints
}

// Strongest returns the highest scoring hint for k.
func (e *Evidence) Strongest(k Kind) (Hint, bool) {
	var best Hint
	found := false
	for _, h := range e.Hints() {
		if h.Dialect == k && (!found || h.Score > best.Score) {
			best, found = h, true
		}
	}
	return best, found
}
