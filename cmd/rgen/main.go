package main

import (
	"os"

	"github.com/noopejs/go-rgen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
