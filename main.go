// ABOUTME: Entry point for the biblioteca CLI
// ABOUTME: Terminal client for the university library service

package main

import (
	"fmt"
	"os"

	"github.com/ufxlib/biblioteca-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
