package main

import (
	"os"

	"github.com/triagekit/triagekit/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
