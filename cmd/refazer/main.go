package main

import (
	"os"

	"github.com/marcioaug/Refazer-sub001/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
