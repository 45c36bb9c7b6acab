package main

import (
	"fmt"
	"os"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
