// Package main is the entry point for the csvlate CLI application.
// It translates product-catalog CSV exports through the DeepL API.
package main

import (
	"csvlate/cli/cmd"
)

// main is the entry point for the csvlate CLI application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
