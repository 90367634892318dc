package event

import (
	"errors"

	"github.com/KOMKZ/go-yogan-eventmanager/errcode"
)

// ErrStopPropagation stops event propagation (not considered an error)
// When a listener returns this error, subsequent listeners do not execute and Dispatch returns nil
var ErrStopPropagation = errors.New("stop propagation")

// ErrNotCancelable returned by Event.StopPropagation on an event dispatched as non-cancelable
var ErrNotCancelable = errors.New("event is not cancelable")

const moduleCode = 30

var (
	ErrInvalidEventType = errcode.Register(errcode.New(moduleCode, 1, "event",
		"error.event.invalid_event_type", "event type must not be empty"))

	ErrInvalidListener = errcode.Register(errcode.New(moduleCode, 2, "event",
		"error.event.invalid_listener", "listener must be a non-nil Listener or ListenerFunc"))

	// ErrListenerFailed wraps the error returned by a listener
	ErrListenerFailed = errcode.Register(errcode.New(moduleCode, 3, "event",
		"error.event.listener_failed", "listener failed"))

	ErrListenerPanic = errcode.Register(errcode.New(moduleCode, 4, "event",
		"error.event.listener_panic", "listener panicked"))

	ErrInvalidConfig = errcode.Register(errcode.New(moduleCode, 5, "event",
		"error.event.invalid_config", "invalid event configuration"))
)
