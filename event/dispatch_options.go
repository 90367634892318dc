package event

// dispatchOptions dispatch options
type dispatchOptions struct {
	cancelable bool
}

// DispatchOption function for dispatch options
type DispatchOption func(*dispatchOptions)

func defaultDispatchOptions() dispatchOptions {
	return dispatchOptions{cancelable: true}
}

// WithNonCancelable dispatches an event whose propagation cannot be stopped
// Event.StopPropagation returns ErrNotCancelable and every listener runs
func WithNonCancelable() DispatchOption {
	return func(o *dispatchOptions) {
		o.cancelable = false
	}
}
