package main

import (
	"fmt"
	"os"

	"github.com/kilianp07/eventplan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "eventplan:", err)
		os.Exit(1)
	}
}
