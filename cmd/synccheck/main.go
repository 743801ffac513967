package main

import (
	"os"

	"github.com/hamed0406/synccheck/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
