// Command catalogctl inspects catalog files offline: grouping, filtering,
// pricing and media selection run exactly as the catalog service runs them.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
