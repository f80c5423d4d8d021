package main

import (
	"os"

	"github.com/msomdec/wish-tracker/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
