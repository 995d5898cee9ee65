// Package main is the entry point for the hjarta-config CLI.
package main

import (
	"fmt"
	"os"

	"github.com/0xalexb/hjarta-config/cmd/hjarta-config/commands"

	"github.com/fatih/color"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		os.Exit(1)
	}
}
