package main

import (
	"os"

	"alcyxob/workout-tracker/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
