package errcode

import (
	"fmt"
	"sort"
	"sync"
)

// Entry one registered code
type Entry struct {
	Code   int
	Module string
	MsgKey string
	Msg    string
}

// Registry rejects two different errors claiming the same code
type Registry struct {
	mu      sync.RWMutex
	entries map[int]Entry
}

var defaultRegistry = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{entries: map[int]Entry{}}
}

// Register records err in the process wide registry and returns it,
// so sentinels can be declared as var ErrX = errcode.Register(errcode.New(...))
func Register(err *LayeredError) *LayeredError {
	return defaultRegistry.Register(err)
}

// Registered lists the process wide registry sorted by code
func Registered() []Entry {
	return defaultRegistry.Entries()
}

// Register panics when the code already belongs to another module or message key
func (r *Registry) Register(err *LayeredError) *LayeredError {
	entry := Entry{Code: err.Code(), Module: err.Module(), MsgKey: err.MsgKey(), Msg: err.Message()}

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.entries[entry.Code]; ok {
		if prev.Module != entry.Module || prev.MsgKey != entry.MsgKey {
			panic(fmt.Sprintf("error code %d already registered as %s:%s, cannot register %s:%s",
				entry.Code, prev.Module, prev.MsgKey, entry.Module, entry.MsgKey))
		}
		return err
	}
	r.entries[entry.Code] = entry
	return err
}

// Lookup returns the entry registered under code
func (r *Registry) Lookup(code int) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[code]
	return e, ok
}

// Entries sorted by code
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
