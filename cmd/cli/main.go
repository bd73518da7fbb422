package main

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/fieldshift/internal/client/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
