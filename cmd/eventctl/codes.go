package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/KOMKZ/go-yogan-eventmanager/errcode"
	"github.com/spf13/cobra"
)

func newCodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List the error codes reported by the event manager",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tMODULE\tKEY\tMESSAGE")
			for _, e := range errcode.Registered() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.Code, e.Module, e.MsgKey, e.Msg)
			}
			return w.Flush()
		},
	}
}
