package main

import (
	"os"

	"github.com/csesa/portal-client/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
