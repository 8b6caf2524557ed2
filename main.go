// ABOUTME: Entry point for the rolodex contact manager
// ABOUTME: Hands the command line to the cobra command tree
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/harperreed/rolodex/cli"
)

const version = "0.1.0"

func main() {
	if err := cli.Execute(context.Background(), version, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
