// Package main provides the freeform CLI.
package main

import "github.com/mesh-intelligence/freeform/internal/cli"

func main() {
	cli.Execute()
}
