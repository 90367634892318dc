// Command eventctl loads listeners from configuration and dispatches events
// through an EventManager, optionally exporting traces and metrics to stdout.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
