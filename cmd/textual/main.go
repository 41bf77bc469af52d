package main

import (
	"github.com/go-gum/textual/internal/cli/commands"
	"os"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
