// Command selectable generates ordered, table-qualified selection code
// for record types marked with the selectable:record directive.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "selectable:", err)
		var usage *usageError
		if errors.As(err, &usage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
