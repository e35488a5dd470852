package main

import (
	"fmt"
	"os"

	"tasklist/internal/cli"
)

func main() {
	cmd := cli.NewRootCmd()
	cmd.SilenceErrors = true
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
