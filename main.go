package main

import (
	"os"

	"github.com/kvesta/mdyml/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
