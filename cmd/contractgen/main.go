// Command contractgen generates agricultural contract PDFs from the command
// line, either from flags merged onto the built-in sample contract or
// through an interactive form.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
