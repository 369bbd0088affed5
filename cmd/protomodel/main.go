package main

import (
	"os"

	"github.com/carlosnayan/protomodel/cmd/protomodel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
