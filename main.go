// main package for chisel command-line tool
// Package main is the entry point for the chisel CLI.
package main

import "chisel.dev/pkg/chisel/cmd"

func main() {
	cmd.Execute()
}
