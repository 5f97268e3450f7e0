// Package main is the entry point for the mpt CLI.
package main

import "github.com/donaldgifford/meli-product-tracker/cmd/mpt/cmd"

func main() {
	cmd.Execute()
}
