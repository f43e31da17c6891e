package main

import (
	"os"

	"github.com/ucimeto/ucimeto/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
