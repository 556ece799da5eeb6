package main

import (
	"os"

	"github.com/ledgerlight-dev/ledgerlight/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
