// Command closetctl is the operator CLI for ClosetCompare: size lookups,
// catalog syncs and recommendations against the local product store.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
