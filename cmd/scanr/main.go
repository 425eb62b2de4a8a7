package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/blueman82/scanr/internal/cmd"
)

// Exit codes follow the grep convention: 0 when at least one line was
// selected, 1 when none were, 2 on usage or pattern errors.
func main() {
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, cmd.ErrNoMatch) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "scanr: %v\n", err)
		os.Exit(2)
	}
}
