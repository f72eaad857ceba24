package main

import (
	"os"

	"github.com/mazadly/boardgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
