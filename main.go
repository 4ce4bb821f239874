package main

import (
	"os"

	"github.com/taylorp5/dealwise/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
