package event

import (
	"slices"
	"sort"
)

// listenerEntry one registration
type listenerEntry struct {
	id       uint64 // monotonically increasing, doubles as the tie-break sequence
	listener Listener
	priority int // the larger the number, the earlier it runs
	once     bool
}

// listenerQueue listeners of one event type, kept sorted by (priority desc, id asc)
type listenerQueue struct {
	entries []listenerEntry
}

// insert places the entry after every entry with priority >= its own,
// so equal priorities run in attach order
func (q *listenerQueue) insert(entry listenerEntry) {
	i := sort.Search(len(q.entries), func(i int) bool {
		return q.entries[i].priority < entry.priority
	})
	q.entries = slices.Insert(q.entries, i, entry)
}

// remove deletes the entry with the given id, reports whether it was present
func (q *listenerQueue) remove(id uint64) bool {
	for i, e := range q.entries {
		if e.id == id {
			q.entries = slices.Delete(q.entries, i, i+1)
			return true
		}
	}
	return false
}

// snapshot copy safe to iterate without holding the registry lock
func (q *listenerQueue) snapshot() []listenerEntry {
	return slices.Clone(q.entries)
}

func (q *listenerQueue) len() int {
	return len(q.entries)
}
