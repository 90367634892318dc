// Package errcode provides numbered errors shared by the event manager packages.
//
// A code is MMBBBB: a two digit module code followed by a four digit business code,
// so New(30, 1, ...) yields 300001.
package errcode

import "fmt"

// LayeredError a numbered error with a message key, context data and an optional cause
//
// Values are immutable: WithMsgf, WithData and Wrap return copies,
// so package level sentinels can be decorated freely.
type LayeredError struct {
	module string
	code   int
	msgKey string // i18n key, e.g. "error.event.invalid_listener"
	msg    string
	data   map[string]interface{}
	cause  error
}

func New(moduleCode, businessCode int, module, msgKey, msg string) *LayeredError {
	return &LayeredError{
		module: module,
		code:   moduleCode*10000 + businessCode,
		msgKey: msgKey,
		msg:    msg,
		data:   map[string]interface{}{},
	}
}

func (e *LayeredError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *LayeredError) Code() int                    { return e.code }
func (e *LayeredError) Module() string               { return e.module }
func (e *LayeredError) MsgKey() string               { return e.msgKey }
func (e *LayeredError) Message() string              { return e.msg }
func (e *LayeredError) Data() map[string]interface{} { return e.data }
func (e *LayeredError) Unwrap() error                { return e.cause }

// Is matches any error carrying the same code, so decorated copies still match their sentinel
func (e *LayeredError) Is(target error) bool {
	t, ok := target.(*LayeredError)
	return ok && t.code == e.code
}

func (e *LayeredError) WithMsgf(format string, args ...interface{}) *LayeredError {
	c := e.clone()
	c.msg = fmt.Sprintf(format, args...)
	return c
}

func (e *LayeredError) WithData(key string, value interface{}) *LayeredError {
	c := e.clone()
	c.data[key] = value
	return c
}

// Wrap attaches cause; a nil cause returns e unchanged
func (e *LayeredError) Wrap(cause error) *LayeredError {
	if cause == nil {
		return e
	}
	c := e.clone()
	c.cause = cause
	return c
}

func (e *LayeredError) clone() *LayeredError {
	c := *e
	c.data = make(map[string]interface{}, len(e.data)+1)
	for k, v := range e.data {
		c.data[k] = v
	}
	return &c
}
