package main

import (
	"os"

	"github.com/hpkotak/termuxbud/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
