package main

import (
	"os"

	"github.com/grovetools/conductor/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
