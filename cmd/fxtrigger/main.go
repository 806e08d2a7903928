package main

import (
	"os"

	"github.com/rustyeddy/fxtrigger/cmd/fxtrigger/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
