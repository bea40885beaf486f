package main

import (
	"os"

	"github.com/tmaxwell/go-cscript/cmd/cscript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
