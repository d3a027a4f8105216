// Command sportiq is the entry point for the SportIQ sports intelligence
// chatbot. It provides a CLI interface (via Cobra) and an optional HTTP
// server for programmatic use.
package main

import (
	"fmt"
	"os"

	"github.com/sportiq/sportiq-go/cmd/sportiq/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
