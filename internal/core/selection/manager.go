package selection

import (
	"github.com/bmatcuk/doublestar/v4"
)

// Manager owns the set of active selections for one interactive session.
// It is passed explicitly to the components that need it rather than living
// in package state, so it can be exercised in isolation.
//
// The set holds no duplicates under Selection.Equal. All mutations are
// synchronous; the manager is not safe for concurrent use.
type Manager struct {
	items []Selection
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Toggle inserts the selection, or removes the structurally equal one that
// is already present. Inputs are assumed well-formed by construction; no
// operation fails.
func (m *Manager) Toggle(sel Selection) {
	for i, existing := range m.items {
		if existing.Equal(sel) {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return
		}
	}
	sel.Address = sel.Address.Clone()
	m.items = append(m.items, sel)
}

// Contains reports whether a structurally equal selection is active.
func (m *Manager) Contains(sel Selection) bool {
	for _, existing := range m.items {
		if existing.Equal(sel) {
			return true
		}
	}
	return false
}

// Len returns the number of active selections.
func (m *Manager) Len() int {
	return len(m.items)
}

// Items returns the active selections in insertion order. The slice is a
// copy; mutating it does not affect the manager.
func (m *Manager) Items() []Selection {
	out := make([]Selection, len(m.items))
	copy(out, m.items)
	return out
}

// ClearAll empties the set.
func (m *Manager) ClearAll() {
	m.items = nil
}

// ClearForProofState removes every selection belonging to the proof node.
func (m *Manager) ClearForProofState(proofNodeID int) {
	kept := m.items[:0]
	for _, sel := range m.items {
		if sel.ProofNodeID != proofNodeID {
			kept = append(kept, sel)
		}
	}
	m.items = kept
}

// ClearMatching removes selections whose location label matches the glob
// pattern, e.g. "h*" for every hypothesis labelled h1, h2, ...
// An invalid pattern matches nothing.
func (m *Manager) ClearMatching(labelGlob string) int {
	kept := m.items[:0]
	removed := 0
	for _, sel := range m.items {
		match, err := doublestar.Match(labelGlob, sel.Location.Label)
		if err == nil && match {
			removed++
			continue
		}
		kept = append(kept, sel)
	}
	m.items = kept
	return removed
}
