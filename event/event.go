// Package event implements an in-process, priority-ordered event manager.
//
// Listeners are attached to a named event type with an integer priority.
// Dispatch builds a fresh Event and hands it to every listener of that type,
// highest priority first, until all ran or one stopped propagation.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Event one occurrence of a named event and its in-flight processing state
// An Event is owned by the dispatch that created it and is never reused
type Event struct {
	id         string
	eventType  string
	subject    any
	data       any
	cancelable bool
	occurredAt time.Time

	stopped   bool
	result    any
	hasResult bool
}

// EventOption configures a new Event
type EventOption func(*Event)

// WithCancelable sets whether listeners may stop propagation (default true)
func WithCancelable(cancelable bool) EventOption {
	return func(e *Event) {
		e.cancelable = cancelable
	}
}

// NewEvent creates an event, not stopped and without result
func NewEvent(eventType string, subject, data any, opts ...EventOption) *Event {
	e := &Event{
		id:         uuid.NewString(),
		eventType:  eventType,
		subject:    subject,
		data:       data,
		cancelable: true,
		occurredAt: time.Now(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ID unique identifier of this occurrence
func (e *Event) ID() string {
	return e.id
}

// Type event type name (such as "user.created")
func (e *Event) Type() string {
	return e.eventType
}

// Subject the object the event concerns, may be nil
func (e *Event) Subject() any {
	return e.subject
}

// Data opaque payload, may be nil
func (e *Event) Data() any {
	return e.data
}

func (e *Event) Cancelable() bool {
	return e.cancelable
}

func (e *Event) OccurredAt() time.Time {
	return e.occurredAt
}

// SetResult overwrites the result, results are never merged
func (e *Event) SetResult(v any) {
	e.result = v
	e.hasResult = true
}

// Result last value returned by a listener, nil when absent
func (e *Event) Result() any {
	return e.result
}

// HasResult reports whether any listener stored a result (including nil)
func (e *Event) HasResult() bool {
	return e.hasResult
}

// StopPropagation prevents the remaining listeners of the current dispatch from running
// Idempotent; returns ErrNotCancelable and leaves the event untouched when it is not cancelable
func (e *Event) StopPropagation() error {
	if !e.cancelable {
		return ErrNotCancelable
	}
	e.stopped = true
	return nil
}

func (e *Event) IsImmediatePropagationStopped() bool {
	return e.stopped
}
