package event

import "context"

// Listener object-style listener
// The event type is available through e.Type(), one listener can serve several types
//
// Returning an error stops the dispatch and is reported to the caller.
// Returning ErrStopPropagation stops propagation but is not considered an error;
// the returned value is still stored as the event result.
type Listener interface {
	Handle(ctx context.Context, e *Event) (any, error)
}

// ListenerFunc function-style listener, called with (event, subject, data)
type ListenerFunc func(ctx context.Context, e *Event, subject, data any) (any, error)

// Handle implements Listener
func (f ListenerFunc) Handle(ctx context.Context, e *Event) (any, error) {
	return f(ctx, e, e.Subject(), e.Data())
}

// validListener rejects shapes that can never be invoked
func validListener(l Listener) bool {
	if l == nil {
		return false
	}
	if f, ok := l.(ListenerFunc); ok && f == nil {
		return false
	}
	return true
}
