package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/KOMKZ/go-yogan-eventmanager/config"
	"github.com/KOMKZ/go-yogan-eventmanager/event"
)

// listenerSpec one entry of the "listeners" configuration list
//
//	listeners:
//	  - event: user.created
//	    name: audit
//	    priority: 100
//	    result: audited
//	    stop: false
type listenerSpec struct {
	Event    string      `mapstructure:"event"`
	Name     string      `mapstructure:"name"`
	Priority *int        `mapstructure:"priority"` // manager default when absent
	Result   interface{} `mapstructure:"result"`
	Stop     bool        `mapstructure:"stop"` // return ErrStopPropagation
	Once     bool        `mapstructure:"once"`
	Fail     string      `mapstructure:"fail"` // return an error with this message
}

func loadListenerSpecs(loader *config.Loader) ([]listenerSpec, error) {
	if !loader.IsSet("listeners") {
		return nil, nil
	}
	var specs []listenerSpec
	if err := loader.Unmarshal("listeners", &specs); err != nil {
		return nil, fmt.Errorf("parse listeners failed: %w", err)
	}
	return specs, nil
}

// Validate rejects entries the manager could never dispatch to
func (s listenerSpec) Validate() error {
	if s.Event == "" {
		return fmt.Errorf("listener %q: event is required", s.displayName())
	}
	if s.Stop && s.Fail != "" {
		return fmt.Errorf("listener %q: stop and fail are exclusive", s.displayName())
	}
	return nil
}

func (s listenerSpec) displayName() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.Event != "":
		return s.Event
	default:
		return "unnamed"
	}
}

func (s listenerSpec) attachOptions() []event.AttachOption {
	var opts []event.AttachOption
	if s.Priority != nil {
		opts = append(opts, event.WithPriority(*s.Priority))
	}
	if s.Once {
		opts = append(opts, event.WithOnce())
	}
	return opts
}

func (s listenerSpec) listener(out io.Writer) event.Listener {
	return &configuredListener{spec: s, out: out}
}

// configuredListener reports each call and answers with the configured behavior
type configuredListener struct {
	spec listenerSpec
	out  io.Writer
}

func (l *configuredListener) Handle(ctx context.Context, e *event.Event) (any, error) {
	fmt.Fprintf(l.out, "-> %s (%s)\n", l.spec.displayName(), e.Type())

	switch {
	case l.spec.Fail != "":
		return nil, errors.New(l.spec.Fail)
	case l.spec.Stop:
		return l.spec.Result, event.ErrStopPropagation
	default:
		return l.spec.Result, nil
	}
}
