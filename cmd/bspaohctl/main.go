package main

import (
	"os"

	"github.com/Victor-armando18/service-bspaoh/cmd/bspaohctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
