// Command goctr encrypts, decrypts and verifies files with AES in counter mode.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/goctr/internal/commands"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "unknown"

func main() {
	if err := commands.NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		os.Exit(1)
	}
}
