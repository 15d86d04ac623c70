package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

func main() {
	// fang prints the error, all that's left is the exit code.
	if err := fang.Execute(context.Background(), newRootCommand()); err != nil {
		os.Exit(1)
	}
}
