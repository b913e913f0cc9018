package main

import (
	"os"

	"github.com/vitalvas/forthecity/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
