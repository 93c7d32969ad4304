package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/arthur-debert/prompter/cmd/prompter"
	"github.com/arthur-debert/prompter/pkg/style"
)

func main() {
	rootCmd := prompter.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, prompter.ErrAlreadyUpToDate) {
			os.Exit(2)
		}
		// validate already printed its problem list to stderr
		if errors.Is(err, prompter.ErrValidationFailed) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, style.Fail(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
