// Command affectctl is a cobra CLI that opens the same state store affectd
// runs against, performs exactly one state-manager operation, prints the
// resulting snapshot as JSON, and exits.
package main

import (
	"fmt"
	"os"

	"github.com/affectengine/affectengine/cmd/affectctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
