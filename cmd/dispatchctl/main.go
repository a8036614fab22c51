package main

import (
	"os"

	"github.com/pbelx/ibm-hackathon/cmd/dispatchctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
