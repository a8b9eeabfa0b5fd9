package main

import (
	"os"

	"sst-facil/orcamento/internal/app/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
