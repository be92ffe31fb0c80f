package main

import (
	"os"

	"github.com/repovalidate/repovalidate/internal/adapters/inbound/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
