// Package main provides the querydef command.
package main

import (
	"os"

	"github.com/leapstack-labs/querydef/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
