package keymap

import "github.com/mmed-hajnasr/do-me/internal/action"

// PendingTicks is how many ticks a partial chord waits for its next key.
const PendingTicks = 4

// state is Idle (nil buffer) or Pending (buffer plus ticks left).
type state struct {
	buf       Sequence
	ticksLeft int
}

func (s state) idle() bool { return len(s.buf) == 0 }

// Matcher resolves key presses into actions using a Keymap.
//
// On each key the buffer is extended and looked up in the global bindings, then in
// the bindings of the current mode. An exact match is emitted at once; if the buffer
// also starts a longer chord the matcher stays pending so that chord remains
// reachable. A buffer that is neither bound nor a prefix is dropped and the last key
// is tried on its own. A pending chord that sees no key for PendingTicks ticks is
// discarded without emitting anything.
type Matcher struct {
	keys  *Keymap
	state state
}

func NewMatcher(k *Keymap) *Matcher {
	if k == nil {
		k = New()
	}
	return &Matcher{keys: k}
}

func (m *Matcher) Keymap() *Keymap { return m.keys }

// Key feeds one key press observed in mode.
func (m *Matcher) Key(mode Mode, key string) (action.Action, bool) {
	buf := append(append(Sequence(nil), m.state.buf...), key)

	a, ok := m.lookup(mode, buf)
	if m.isPrefix(mode, buf) {
		m.state = state{buf: buf, ticksLeft: PendingTicks}
		return a, ok
	}
	if ok {
		m.Reset()
		return a, true
	}
	if len(buf) > 1 {
		m.Reset()
		return m.Key(mode, key)
	}
	m.Reset()
	return nil, false
}

// Tick advances the pending deadline. It reports whether a pending chord expired.
func (m *Matcher) Tick() bool {
	if m.state.idle() {
		return false
	}
	m.state.ticksLeft--
	if m.state.ticksLeft <= 0 {
		m.Reset()
		return true
	}
	return false
}

// Reset returns to Idle, discarding any pending chord.
func (m *Matcher) Reset() {
	m.state = state{}
}

// Pending returns the buffered keys of an incomplete chord.
func (m *Matcher) Pending() Sequence {
	return append(Sequence(nil), m.state.buf...)
}

func (m *Matcher) lookup(mode Mode, seq Sequence) (action.Action, bool) {
	if a, ok := m.keys.Lookup(Global, seq); ok {
		return a, true
	}
	if mode == Global || mode == Insert {
		return nil, false
	}
	return m.keys.Lookup(mode, seq)
}

func (m *Matcher) isPrefix(mode Mode, seq Sequence) bool {
	if m.keys.IsPrefix(Global, seq) {
		return true
	}
	if mode == Global || mode == Insert {
		return false
	}
	return m.keys.IsPrefix(mode, seq)
}
