package errcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	r.Register(New(31, 1, "config", "error.config.load_failed", "load failed"))
	r.Register(New(30, 1, "event", "error.event.invalid_event_type", "invalid event type"))

	entries := r.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Code: 300001, Module: "event", MsgKey: "error.event.invalid_event_type", Msg: "invalid event type"}, entries[0])
	assert.Equal(t, 310001, entries[1].Code)

	e, ok := r.Lookup(310001)
	assert.True(t, ok)
	assert.Equal(t, "config", e.Module)

	_, ok = r.Lookup(999999)
	assert.False(t, ok)
}

func TestRegistry_Register_Idempotent(t *testing.T) {
	r := NewRegistry()
	first := New(30, 1, "event", "error.event.invalid_event_type", "a")

	assert.Same(t, first, r.Register(first))
	r.Register(New(30, 1, "event", "error.event.invalid_event_type", "b"))

	assert.Len(t, r.Entries(), 1)
}

func TestRegistry_Register_Conflict(t *testing.T) {
	r := NewRegistry()
	r.Register(New(30, 1, "event", "error.event.invalid_event_type", "a"))

	assert.Panics(t, func() {
		r.Register(New(30, 1, "event", "error.event.other", "b"))
	})
	assert.Panics(t, func() {
		r.Register(New(30, 1, "config", "error.event.invalid_event_type", "b"))
	})
}

func TestRegistry_EntriesReturnsCopy(t *testing.T) {
	r := NewRegistry()
	r.Register(New(30, 1, "event", "error.event.invalid_event_type", "invalid event type"))

	entries := r.Entries()
	entries[0].Msg = "mutated"

	e, _ := r.Lookup(300001)
	assert.Equal(t, "invalid event type", e.Msg)
}
