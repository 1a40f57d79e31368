// Command confirmflow runs the built-in confirmation flows on the device or
// in a terminal simulator.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
