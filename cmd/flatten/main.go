package main

import (
	"os"

	"github.com/danieljhkim/flatten/internal/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)

	// cli.Execute has already reported the error on stderr
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
