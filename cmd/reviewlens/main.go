package main

import (
	"os"

	"github.com/reviewlens/reviewlens/pkg/cli"
)

func main() {
	os.Exit(cli.Run())
}
