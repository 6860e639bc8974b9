// Command validate checks the embedded game script: stage graph shape,
// snake_case IDs, attribute names, outcome kinds and accent colors.
// It is a developer tool, not part of the player surface.
package main

import (
	"fmt"
	"os"

	"github.com/jwebster45206/isekai-sim/pkg/script"
)

func main() {
	scr, err := script.Default()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load embedded script: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Validating %q (%d stages)...\n", scr.Name, len(scr.Stages))

	validator := &script.Validator{}
	if err := validator.Validate(scr); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Script is valid!")
}
