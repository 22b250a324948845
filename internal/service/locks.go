package service

import "sync"

// conversationLocks serializes turns within a single conversation. Entries
// are refcounted and removed once the last holder releases, so the map stays
// proportional to the number of conversations currently in flight.
type conversationLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newConversationLocks() conversationLocks {
	return conversationLocks{entries: make(map[string]*lockEntry)}
}

func (l *conversationLocks) acquire(id string) *lockEntry {
	l.mu.Lock()
	entry, ok := l.entries[id]
	if !ok {
		entry = &lockEntry{}
		l.entries[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return entry
}

func (l *conversationLocks) release(id string, entry *lockEntry) {
	entry.mu.Unlock()

	l.mu.Lock()
	entry.refs--
	if entry.refs == 0 {
		delete(l.entries, id)
	}
	l.mu.Unlock()
}
