package main

import (
	"os"

	"github.com/riverfjs/htmllite-go/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
