package main

import (
	"os"

	"github.com/dshills/grabchars/pkg/cli"
)

// main stays a single call so the exit status, which is the primary
// result channel for scripts, flows through exactly one os.Exit.
func main() {
	os.Exit(cli.Execute())
}
