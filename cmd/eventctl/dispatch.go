package main

import (
	"fmt"
	"strings"

	"github.com/KOMKZ/go-yogan-eventmanager/event"
	"github.com/spf13/cobra"
)

type dispatchOptions struct {
	subject       string
	data          []string
	repeat        int
	nonCancelable bool
}

func newDispatchCmd(root *rootOptions) *cobra.Command {
	opts := &dispatchOptions{}

	cmd := &cobra.Command{
		Use:   "dispatch <event-type>",
		Short: "Dispatch one event and print its outcome",
		Example: `  eventctl dispatch user.created --subject u-42 --data name=alice
  eventctl dispatch order.paid --trace --metrics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDispatch(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.subject, "subject", "s", "", "event subject")
	cmd.Flags().StringArrayVarP(&opts.data, "data", "d", nil, "event data as key=value (repeatable)")
	cmd.Flags().IntVarP(&opts.repeat, "repeat", "n", 1, "number of dispatches")
	cmd.Flags().BoolVar(&opts.nonCancelable, "non-cancelable", false, "listeners cannot stop propagation")

	return cmd
}

func runDispatch(cmd *cobra.Command, root *rootOptions, opts *dispatchOptions, eventType string) error {
	if opts.repeat < 1 {
		return fmt.Errorf("--repeat must be at least 1, got %d", opts.repeat)
	}

	data, err := dispatchData(opts.data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	a, err := newApp(root, out)
	if err != nil {
		return err
	}
	defer a.close()

	var dispatchOpts []event.DispatchOption
	if opts.nonCancelable {
		dispatchOpts = append(dispatchOpts, event.WithNonCancelable())
	}

	var subject any
	if opts.subject != "" {
		subject = opts.subject
	}

	for i := 0; i < opts.repeat; i++ {
		e, err := a.manager.Dispatch(cmd.Context(), eventType, subject, data, dispatchOpts...)
		printEvent(cmd, e)
		if err != nil {
			return err
		}
	}
	return nil
}

func printEvent(cmd *cobra.Command, e *event.Event) {
	if e == nil {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "event:   %s\n", e.Type())
	fmt.Fprintf(out, "id:      %s\n", e.ID())
	if e.Data() != nil {
		fmt.Fprintf(out, "data:    %v\n", e.Data())
	}
	if e.HasResult() {
		fmt.Fprintf(out, "result:  %v\n", e.Result())
	} else {
		fmt.Fprintln(out, "result:  <none>")
	}
	fmt.Fprintf(out, "stopped: %t\n", e.IsImmediatePropagationStopped())
}

// dispatchData event payload, a nil interface when no pairs were given
func dispatchData(pairs []string) (any, error) {
	data, err := parseData(pairs)
	if err != nil || data == nil {
		return nil, err
	}
	return data, nil
}

// parseData turns key=value pairs into a map, nil when empty
func parseData(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	data := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --data %q, expected key=value", pair)
		}
		data[key] = value
	}
	return data, nil
}
