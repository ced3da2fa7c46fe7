package filter

import "sync"

// Manager owns the committed filter snapshot for one operator session and a
// staging area for edits. Edits accumulate via Stage and only become the
// committed snapshot on Apply or Clear; subscribers (the report orchestrator)
// are notified synchronously with the new snapshot.
type Manager struct {
	mu          sync.Mutex
	committed   Criteria
	staged      Criteria
	defaultSize int
	subscribers []func(Criteria)
}

// NewManager creates a Manager with the canonical empty snapshot committed.
func NewManager(perPage int) *Manager {
	empty := Empty(perPage)
	return &Manager{
		committed:   empty,
		staged:      empty,
		defaultSize: empty.PerPage,
	}
}

// Subscribe registers a callback invoked synchronously on every commit.
func (m *Manager) Subscribe(fn func(Criteria)) {
	m.mu.Lock()
	m.subscribers = append(m.subscribers, fn)
	m.mu.Unlock()
}

// Snapshot returns the committed snapshot.
func (m *Manager) Snapshot() Criteria {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.committed
}

// Staged returns the staged (not yet committed) snapshot.
func (m *Manager) Staged() Criteria {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.staged
}

// Stage merges a partial edit into the staging area without triggering
// any fetches. Keystroke-level edits land here.
func (m *Manager) Stage(u Update) Criteria {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staged = m.staged.Apply(u)
	return m.staged
}

// Apply commits the staged edits and notifies subscribers.
func (m *Manager) Apply() Criteria {
	m.mu.Lock()
	m.committed = m.staged
	snapshot := m.committed
	subs := append([]func(Criteria){}, m.subscribers...)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
	return snapshot
}

// Clear resets both staged and committed state to the canonical empty
// snapshot and notifies subscribers. This is a hard reset, not a merge.
func (m *Manager) Clear() Criteria {
	m.mu.Lock()
	empty := Empty(m.defaultSize)
	m.committed = empty
	m.staged = empty
	subs := append([]func(Criteria){}, m.subscribers...)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(empty)
	}
	return empty
}
