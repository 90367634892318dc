package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListenersCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "listeners",
		Short: "List the configured listeners per event type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(root, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.close()

			types := a.manager.EventTypes()
			if len(types) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No listeners configured")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "EVENT\tLISTENERS")
			for _, eventType := range types {
				fmt.Fprintf(w, "%s\t%d\n", eventType, a.manager.ListenerCount(eventType))
			}
			return w.Flush()
		},
	}
}
