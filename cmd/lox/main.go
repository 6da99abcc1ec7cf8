// Command lox is the CLI front end: it scans, parses, resolves, and
// evaluates Lox programs.
package main

import (
	"fmt"
	"os"

	"github.com/loxrun/lox/cmd/lox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
