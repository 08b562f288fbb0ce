package ast

// Extra holds per-node metadata that most consumers never look at.
type Extra struct {
	Raw           string `json:"raw,omitempty"`
	RawValue      any    `json:"rawValue,omitempty"`
	Parenthesized bool   `json:"parenthesized,omitempty"`
	ParenStart    int    `json:"parenStart,omitempty"`
	// TrailingComma is the offset of a trailing comma, 0 when there is none.
	TrailingComma int `json:"trailingComma,omitempty"`
}

// Extras is a side-table keyed by node identity.
type Extras struct {
	m map[Node]*Extra
	// undo records prior map entries while a Mark is open.
	undo  []extraUndo
	marks int
}

type extraUndo struct {
	n    Node
	prev *Extra
}

func NewExtras() *Extras {
	return &Extras{m: make(map[Node]*Extra)}
}

// Get returns the extra of n or nil.
func (x *Extras) Get(n Node) *Extra {
	if x == nil || n == nil {
		return nil
	}
	return x.m[n]
}

// Ensure returns the extra of n, creating it if needed.
func (x *Extras) Ensure(n Node) *Extra {
	e, ok := x.m[n]
	if !ok {
		e = &Extra{}
		x.set(n, e)
	}
	return e
}

// Move re-keys the extra of from onto to, used when a node is reinterpreted.
func (x *Extras) Move(from, to Node) {
	if e, ok := x.m[from]; ok {
		x.set(from, nil)
		x.set(to, e)
	}
}

func (x *Extras) set(n Node, e *Extra) {
	if x.marks > 0 {
		x.undo = append(x.undo, extraUndo{n: n, prev: x.m[n]})
	}
	if e == nil {
		delete(x.m, n)
		return
	}
	x.m[n] = e
}

// Mark opens a checkpoint that a later Rollback returns the table to.
// Every Mark must be closed by Rollback or Release.
func (x *Extras) Mark() int {
	x.marks++
	return len(x.undo)
}

// Rollback drops every entry added or moved since the mark.
func (x *Extras) Rollback(mark int) {
	for i := len(x.undo) - 1; i >= mark; i-- {
		u := x.undo[i]
		if u.prev == nil {
			delete(x.m, u.n)
		} else {
			x.m[u.n] = u.prev
		}
	}
	x.undo = x.undo[:mark]
	x.Release()
}

// Release closes the mark and keeps its changes.
func (x *Extras) Release() {
	x.marks--
	if x.marks == 0 {
		x.undo = x.undo[:0]
	}
}

func (x *Extras) Parenthesized(n Node) bool {
	e := x.Get(n)
	return e != nil && e.Parenthesized
}

func (x *Extras) Len() int {
	if x == nil {
		return 0
	}
	return len(x.m)
}
