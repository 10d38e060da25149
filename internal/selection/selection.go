// Package selection decides which row of a reloaded list carries the cursor.
package selection

type hintKind int

const (
	atIndex hintKind = iota + 1
	atOrder
)

// Hint asks the next reload of a scope to select a specific row.
type Hint struct {
	kind  hintKind
	value int
}

// AtOrder selects the row whose persisted order is o, wherever the display sort puts it.
func AtOrder(o int) Hint { return Hint{kind: atOrder, value: o} }

// AtIndex selects display row i.
func AtIndex(i int) Hint { return Hint{kind: atIndex, value: i} }

// Tracker keeps per-scope hints and remembered cursor rows across reloads.
// Scopes are opaque keys: one for the workspace list, one per workspace for tasks.
type Tracker struct {
	hints      map[string]Hint
	remembered map[string]int
}

func New() *Tracker {
	return &Tracker{
		hints:      map[string]Hint{},
		remembered: map[string]int{},
	}
}

// Hint records h for the next reload of scope, replacing any earlier hint.
func (t *Tracker) Hint(scope string, h Hint) {
	t.hints[scope] = h
}

func (t *Tracker) HasHint(scope string) bool {
	_, ok := t.hints[scope]
	return ok
}

// Remember records a cursor row chosen by direct navigation.
func (t *Tracker) Remember(scope string, index int) {
	if index < 0 {
		delete(t.remembered, scope)
		return
	}
	t.remembered[scope] = index
}

// Forget drops everything known about scope (e.g. a deleted workspace).
func (t *Tracker) Forget(scope string) {
	delete(t.hints, scope)
	delete(t.remembered, scope)
}

// Resolve picks the cursor row for a freshly loaded scope. orders holds the persisted
// order of each display row. ok is false when the list is empty.
//
// A pending hint wins and is consumed; then the remembered row; then row 0.
func (t *Tracker) Resolve(scope string, orders []int) (index int, ok bool) {
	n := len(orders)
	h, hinted := t.hints[scope]
	delete(t.hints, scope)

	if n == 0 {
		return -1, false
	}

	switch {
	case hinted && h.kind == atOrder:
		index = clamp(h.value, n)
		for i, o := range orders {
			if o == h.value {
				index = i
				break
			}
		}
	case hinted:
		index = clamp(h.value, n)
	default:
		if r, found := t.remembered[scope]; found {
			index = clamp(r, n)
		}
	}
	t.remembered[scope] = index
	return index, true
}

// Snapshot returns a copy of the remembered rows, for persisting between sessions.
func (t *Tracker) Snapshot() map[string]int {
	out := make(map[string]int, len(t.remembered))
	for k, v := range t.remembered {
		out[k] = v
	}
	return out
}

// Restore seeds remembered rows from a previous session.
func (t *Tracker) Restore(m map[string]int) {
	for k, v := range m {
		if v >= 0 {
			t.remembered[k] = v
		}
	}
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
